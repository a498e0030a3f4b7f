package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/modsuggest/internal/modsuggest/service"
	"github.com/aussiebroadwan/modsuggest/pkg/httpx"
	"github.com/aussiebroadwan/modsuggest/pkg/modsdk"
)

// ReviewHandler serves the admin suggestion review endpoints.
type ReviewHandler struct {
	Suggestions *service.SuggestionService
}

// HandleApprove handles POST /admin/approve/{id}
//
//	@Summary		Approve a suggestion
//	@Description	Sets the status to approved and clears any rejection reason, whatever the current status.
//	@Tags			Review
//	@Produce		json
//	@Security		SessionCookie
//	@Param			id	path		string	true	"Suggestion ID (ULID)"
//	@Success		200	{object}	modsdk.MessageResponse
//	@Failure		401	{object}	httpx.ErrorBody
//	@Failure		403	{object}	httpx.ErrorBody
//	@Failure		404	{object}	httpx.ErrorBody
//	@Failure		500	{object}	httpx.ErrorBody
//	@Router			/admin/approve/{id} [post].
func (h *ReviewHandler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	acct, _ := accountFrom(r.Context())

	if _, err := h.Suggestions.Approve(r.Context(), acct, r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, modsdk.MessageResponse{Message: "Mod approved successfully"})
}

// HandleReject handles POST /admin/reject/{id}
//
//	@Summary		Reject a suggestion
//	@Description	Sets the status to rejected. The body is optional; without a reason "No reason provided" is stored.
//	@Tags			Review
//	@Accept			json
//	@Produce		json
//	@Security		SessionCookie
//	@Param			id		path		string					true	"Suggestion ID (ULID)"
//	@Param			request	body		modsdk.RejectRequest	false	"Rejection reason"
//	@Success		200		{object}	modsdk.MessageResponse
//	@Failure		400		{object}	httpx.ErrorBody	"malformed JSON"
//	@Failure		401		{object}	httpx.ErrorBody
//	@Failure		403		{object}	httpx.ErrorBody
//	@Failure		404		{object}	httpx.ErrorBody
//	@Failure		500		{object}	httpx.ErrorBody
//	@Router			/admin/reject/{id} [post].
func (h *ReviewHandler) HandleReject(w http.ResponseWriter, r *http.Request) {
	acct, _ := accountFrom(r.Context())

	var req modsdk.RejectRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil && !errors.Is(err, httpx.ErrEmptyBody) {
		writeBadJSON(w)
		return
	}

	if _, err := h.Suggestions.Reject(r.Context(), acct, r.PathValue("id"), req.Reason); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, modsdk.MessageResponse{Message: "Mod rejected successfully"})
}

// HandleDelete handles DELETE /admin/delete/{id}
//
//	@Summary		Delete a suggestion
//	@Tags			Review
//	@Produce		json
//	@Security		SessionCookie
//	@Param			id	path		string	true	"Suggestion ID (ULID)"
//	@Success		200	{object}	modsdk.MessageResponse
//	@Failure		401	{object}	httpx.ErrorBody
//	@Failure		403	{object}	httpx.ErrorBody
//	@Failure		404	{object}	httpx.ErrorBody
//	@Failure		500	{object}	httpx.ErrorBody
//	@Router			/admin/delete/{id} [delete].
func (h *ReviewHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	acct, _ := accountFrom(r.Context())

	if err := h.Suggestions.Delete(r.Context(), acct, r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, modsdk.MessageResponse{Message: "Mod deleted successfully"})
}
