package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/aussiebroadwan/modsuggest/internal/modsuggest/domain"
	"github.com/aussiebroadwan/modsuggest/internal/modsuggest/service"
	"github.com/aussiebroadwan/modsuggest/pkg/httpx"
	"github.com/aussiebroadwan/modsuggest/pkg/modsdk"
)

// SuggestionsHandler serves the listing page, submission and the JSON list.
type SuggestionsHandler struct {
	Suggestions *service.SuggestionService
}

// HandleIndex handles GET /
//
//	@Summary		Listing page
//	@Description	The logged in account and every suggestion, newest first. Redirects to /login without a session.
//	@Tags			Suggestions
//	@Produce		json
//	@Security		SessionCookie
//	@Success		200	{object}	modsdk.IndexResponse
//	@Failure		303	"Redirect to /login"
//	@Failure		500	{object}	httpx.ErrorBody
//	@Router			/ [get].
func (h *SuggestionsHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	acct, _ := accountFrom(r.Context())

	views, err := h.Suggestions.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, modsdk.IndexResponse{
		Account:     accountInfo(acct),
		Suggestions: suggestionItems(views),
		Flash:       pendingFlash(w, r),
	})
}

// HandleSubmit handles POST /suggest
//
//	@Summary		Submit a suggestion
//	@Description	Files a pending suggestion. The source is derived from the URL.
//	@Tags			Suggestions
//	@Accept			json
//	@Produce		json
//	@Security		SessionCookie
//	@Param			request	body		modsdk.SubmitSuggestionRequest	true	"Suggestion"
//	@Success		200		{object}	modsdk.SubmitSuggestionResponse
//	@Failure		400		{object}	httpx.ErrorBody	"mod_name or mod_url missing"
//	@Failure		401		{object}	httpx.ErrorBody
//	@Failure		500		{object}	httpx.ErrorBody
//	@Router			/suggest [post].
func (h *SuggestionsHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	acct, _ := accountFrom(r.Context())

	var req modsdk.SubmitSuggestionRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil && !errors.Is(err, httpx.ErrEmptyBody) {
		writeBadJSON(w)
		return
	}

	sg, err := h.Suggestions.Submit(r.Context(), acct, service.SubmitInput{
		ModName:     req.ModName,
		ModURL:      req.ModURL,
		Description: req.Description,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, modsdk.SubmitSuggestionResponse{
		Message: "Mod suggestion submitted successfully",
		Suggestion: modsdk.SuggestionSummary{
			ID:      sg.ID,
			ModName: sg.ModName,
			Source:  string(sg.Source),
			Status:  string(sg.Status),
		},
	})
}

// HandleList handles GET /api/suggestions
//
//	@Summary		List suggestions
//	@Description	Every suggestion, newest first, with its author's username.
//	@Tags			Suggestions
//	@Produce		json
//	@Security		SessionCookie
//	@Success		200	{array}		modsdk.SuggestionItem
//	@Failure		401	{object}	httpx.ErrorBody
//	@Failure		500	{object}	httpx.ErrorBody
//	@Router			/api/suggestions [get].
func (h *SuggestionsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	views, err := h.Suggestions.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, suggestionItems(views))
}

func suggestionItems(views []domain.SuggestionView) []modsdk.SuggestionItem {
	items := make([]modsdk.SuggestionItem, len(views))
	for i, v := range views {
		var reason *string
		if v.RejectionReason != "" {
			reason = &v.RejectionReason
		}
		items[i] = modsdk.SuggestionItem{
			ID:              v.ID,
			ModName:         v.ModName,
			ModURL:          v.ModURL,
			Source:          string(v.Source),
			Description:     v.Description,
			Status:          string(v.Status),
			RejectionReason: reason,
			SubmittedDate:   v.SubmittedAt.UTC().Format(modsdk.SubmittedDateLayout),
			Author:          v.AuthorUsername,
		}
	}
	return items
}

func accountInfo(a domain.Account) modsdk.AccountInfo {
	return modsdk.AccountInfo{
		ID:        a.ID,
		Username:  a.Username,
		IsAdmin:   a.IsAdmin,
		CreatedAt: a.CreatedAt.UTC().Format(time.RFC3339),
	}
}
