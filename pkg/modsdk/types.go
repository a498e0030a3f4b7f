package modsdk

// ============================================================================
// Page data
// ============================================================================

// Flash is a one-shot notice shown on the next page.
type Flash struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// AuthPageResponse is the data behind the login and register pages.
type AuthPageResponse struct {
	Flash *Flash `json:"flash,omitempty"`
}

// AccountInfo is the public view of an account. The password hash is never
// part of any response.
type AccountInfo struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	IsAdmin   bool   `json:"is_admin"`
	CreatedAt string `json:"created_at"`
}

// IndexResponse is the data behind the suggestion listing page.
type IndexResponse struct {
	Account     AccountInfo      `json:"account"`
	Suggestions []SuggestionItem `json:"suggestions"`
	Flash       *Flash           `json:"flash,omitempty"`
}

// AdminPanelResponse lists every account, newest first.
type AdminPanelResponse struct {
	Accounts []AccountInfo `json:"accounts"`
}

// ============================================================================
// Suggestions
// ============================================================================

// SubmitSuggestionRequest is the body of POST /suggest.
type SubmitSuggestionRequest struct {
	ModName     string `json:"mod_name"`
	ModURL      string `json:"mod_url"`
	Description string `json:"description,omitempty"`
}

// SuggestionSummary is the short form returned right after submission.
type SuggestionSummary struct {
	ID      string `json:"id"`
	ModName string `json:"mod_name"`
	Source  string `json:"source"`
	Status  string `json:"status"`
}

// SubmitSuggestionResponse is returned by POST /suggest.
type SubmitSuggestionResponse struct {
	Message    string            `json:"message"`
	Suggestion SuggestionSummary `json:"suggestion"`
}

// SubmittedDateLayout is the format of SuggestionItem.SubmittedDate (UTC).
const SubmittedDateLayout = "2006-01-02 15:04"

// SuggestionItem is one element of GET /api/suggestions.
type SuggestionItem struct {
	ID              string  `json:"id"`
	ModName         string  `json:"mod_name"`
	ModURL          string  `json:"mod_url"`
	Source          string  `json:"source"`
	Description     string  `json:"description"`
	Status          string  `json:"status"`
	RejectionReason *string `json:"rejection_reason"`
	SubmittedDate   string  `json:"submitted_date"`
	Author          string  `json:"author"`
}

// RejectRequest is the optional body of POST /admin/reject/{id}.
type RejectRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// ============================================================================
// Accounts
// ============================================================================

// ToggleAdminResponse is returned by POST /admin/users/toggle-admin/{id}.
type ToggleAdminResponse struct {
	Message string `json:"message"`
	IsAdmin bool   `json:"is_admin"`
}

// ResetPasswordRequest is the body of POST /admin/users/reset-password/{id}.
type ResetPasswordRequest struct {
	Password string `json:"password"`
}

// ============================================================================
// Misc
// ============================================================================

// MessageResponse is the body of most successful mutations.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the state of each dependency in /readyz.
type HealthChecks struct {
	Database string `json:"database"`
}
