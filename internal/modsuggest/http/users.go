package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/modsuggest/internal/modsuggest/service"
	"github.com/aussiebroadwan/modsuggest/pkg/httpx"
	"github.com/aussiebroadwan/modsuggest/pkg/modsdk"
)

// UsersHandler serves the admin panel and account administration.
type UsersHandler struct {
	Accounts *service.AccountService
}

// HandlePanel handles GET /admin/panel
//
//	@Summary		Admin panel
//	@Description	Every account, newest first. Redirects to /login without a session.
//	@Tags			Users
//	@Produce		json
//	@Security		SessionCookie
//	@Success		200	{object}	modsdk.AdminPanelResponse
//	@Failure		303	"Redirect to /login"
//	@Failure		403	{object}	httpx.ErrorBody
//	@Failure		500	{object}	httpx.ErrorBody
//	@Router			/admin/panel [get].
func (h *UsersHandler) HandlePanel(w http.ResponseWriter, r *http.Request) {
	acct, _ := accountFrom(r.Context())

	accts, err := h.Accounts.List(r.Context(), acct)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := modsdk.AdminPanelResponse{Accounts: make([]modsdk.AccountInfo, len(accts))}
	for i, a := range accts {
		out.Accounts[i] = accountInfo(a)
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleDelete handles DELETE /admin/users/delete/{id}
//
//	@Summary		Delete an account
//	@Description	Removes the account together with all of its suggestions. Admins cannot delete themselves.
//	@Tags			Users
//	@Produce		json
//	@Security		SessionCookie
//	@Param			id	path		string	true	"Account ID (ULID)"
//	@Success		200	{object}	modsdk.MessageResponse
//	@Failure		400	{object}	httpx.ErrorBody	"self_action"
//	@Failure		401	{object}	httpx.ErrorBody
//	@Failure		403	{object}	httpx.ErrorBody
//	@Failure		404	{object}	httpx.ErrorBody
//	@Failure		500	{object}	httpx.ErrorBody
//	@Router			/admin/users/delete/{id} [delete].
func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	acct, _ := accountFrom(r.Context())

	if err := h.Accounts.Delete(r.Context(), acct, r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, modsdk.MessageResponse{Message: "User deleted successfully"})
}

// HandleToggleAdmin handles POST /admin/users/toggle-admin/{id}
//
//	@Summary		Toggle admin
//	@Description	Promotes or demotes an account. Admins cannot change their own flag.
//	@Tags			Users
//	@Produce		json
//	@Security		SessionCookie
//	@Param			id	path		string	true	"Account ID (ULID)"
//	@Success		200	{object}	modsdk.ToggleAdminResponse
//	@Failure		400	{object}	httpx.ErrorBody	"self_action"
//	@Failure		401	{object}	httpx.ErrorBody
//	@Failure		403	{object}	httpx.ErrorBody
//	@Failure		404	{object}	httpx.ErrorBody
//	@Failure		500	{object}	httpx.ErrorBody
//	@Router			/admin/users/toggle-admin/{id} [post].
func (h *UsersHandler) HandleToggleAdmin(w http.ResponseWriter, r *http.Request) {
	acct, _ := accountFrom(r.Context())

	target, err := h.Accounts.ToggleAdmin(r.Context(), acct, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	role := "user"
	if target.IsAdmin {
		role = "admin"
	}
	httpx.WriteJSON(w, http.StatusOK, modsdk.ToggleAdminResponse{
		Message: "User changed to " + role,
		IsAdmin: target.IsAdmin,
	})
}

// HandleResetPassword handles POST /admin/users/reset-password/{id}
//
//	@Summary		Reset password
//	@Description	Sets a new password (at least 3 characters). Existing sessions of the account stay valid.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Security		SessionCookie
//	@Param			id		path		string						true	"Account ID (ULID)"
//	@Param			request	body		modsdk.ResetPasswordRequest	true	"New password"
//	@Success		200		{object}	modsdk.MessageResponse
//	@Failure		400		{object}	httpx.ErrorBody	"validation_error"
//	@Failure		401		{object}	httpx.ErrorBody
//	@Failure		403		{object}	httpx.ErrorBody
//	@Failure		404		{object}	httpx.ErrorBody
//	@Failure		500		{object}	httpx.ErrorBody
//	@Router			/admin/users/reset-password/{id} [post].
func (h *UsersHandler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	acct, _ := accountFrom(r.Context())

	var req modsdk.ResetPasswordRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil && !errors.Is(err, httpx.ErrEmptyBody) {
		writeBadJSON(w)
		return
	}

	if err := h.Accounts.ResetPassword(r.Context(), acct, r.PathValue("id"), req.Password); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, modsdk.MessageResponse{Message: "Password reset successfully"})
}
