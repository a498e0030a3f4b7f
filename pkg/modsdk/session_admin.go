package modsdk

import (
	"context"
	"net/http"
)

// Admin operations. They all fail with ErrorCodeForbidden for non-admins.

// AdminPanel lists every account.
func (s *Session) AdminPanel(ctx context.Context) (*AdminPanelResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/admin/panel", nil)
	if err != nil {
		return nil, err
	}

	var out AdminPanelResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ApproveSuggestion approves a suggestion.
func (s *Session) ApproveSuggestion(ctx context.Context, id string) (*MessageResponse, error) {
	return s.message(ctx, http.MethodPost, "/admin/approve/"+id, nil)
}

// RejectSuggestion rejects a suggestion. An empty reason lets the server
// pick its default.
func (s *Session) RejectSuggestion(ctx context.Context, id, reason string) (*MessageResponse, error) {
	if reason == "" {
		return s.message(ctx, http.MethodPost, "/admin/reject/"+id, nil)
	}
	return s.message(ctx, http.MethodPost, "/admin/reject/"+id, RejectRequest{Reason: &reason})
}

// DeleteSuggestion removes a suggestion.
func (s *Session) DeleteSuggestion(ctx context.Context, id string) (*MessageResponse, error) {
	return s.message(ctx, http.MethodDelete, "/admin/delete/"+id, nil)
}

// DeleteUser removes an account and its suggestions.
func (s *Session) DeleteUser(ctx context.Context, id string) (*MessageResponse, error) {
	return s.message(ctx, http.MethodDelete, "/admin/users/delete/"+id, nil)
}

// ToggleAdmin flips the admin flag of an account.
func (s *Session) ToggleAdmin(ctx context.Context, id string) (*ToggleAdminResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/admin/users/toggle-admin/"+id, nil)
	if err != nil {
		return nil, err
	}

	var out ToggleAdminResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResetPassword sets a new password for an account.
func (s *Session) ResetPassword(ctx context.Context, id, password string) (*MessageResponse, error) {
	return s.message(ctx, http.MethodPost, "/admin/users/reset-password/"+id, ResetPasswordRequest{Password: password})
}

func (s *Session) message(ctx context.Context, method, path string, payload any) (*MessageResponse, error) {
	resp, err := s.doAuthRequest(ctx, method, path, payload)
	if err != nil {
		return nil, err
	}

	var out MessageResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
