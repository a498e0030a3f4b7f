package http

import (
	"net/http"

	"github.com/aussiebroadwan/modsuggest/internal/modsuggest/service"
	"github.com/aussiebroadwan/modsuggest/pkg/flash"
	"github.com/aussiebroadwan/modsuggest/pkg/httpx"
	"github.com/aussiebroadwan/modsuggest/pkg/modsdk"
	"github.com/aussiebroadwan/modsuggest/pkg/slogx"
)

// AuthHandler serves the login, registration and logout flows.
type AuthHandler struct {
	Identity *service.IdentityService
	Cookie   httpx.Cookie
}

// HandleLoginPage handles GET /login
//
//	@Summary		Login page
//	@Description	Returns the data for the login page, including a pending flash notice.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	modsdk.AuthPageResponse
//	@Router			/login [get].
func (h *AuthHandler) HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, authPage(w, r))
}

// HandleRegisterPage handles GET /register
//
//	@Summary		Registration page
//	@Description	Returns the data for the registration page, including a pending flash notice.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	modsdk.AuthPageResponse
//	@Router			/register [get].
func (h *AuthHandler) HandleRegisterPage(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, authPage(w, r))
}

// HandleLogin handles POST /login
//
//	@Summary		Log in
//	@Description	Verifies the credentials and sets the session cookie. Failures redirect back to /login
//	@Description	with an error flash and never reveal whether the username exists.
//	@Tags			Auth
//	@Accept			x-www-form-urlencoded
//	@Param			username	formData	string	true	"Username"
//	@Param			password	formData	string	true	"Password"
//	@Success		303			"Redirect to / with session cookie"
//	@Failure		303			"Redirect to /login with error flash"
//	@Router			/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	res, err := h.Identity.Login(r.Context(), r.PostFormValue("username"), r.PostFormValue("password"))
	if err != nil {
		redirectWithError(w, r, "/login", err)
		return
	}

	h.Cookie.Write(w, r, res.Token, res.ExpiresAt)
	httpx.SeeOther(w, r, "/")
}

// HandleRegister handles POST /register
//
//	@Summary		Register
//	@Description	Creates a non-admin account. Success redirects to /login, a taken username back to /register.
//	@Tags			Auth
//	@Accept			x-www-form-urlencoded
//	@Param			username	formData	string	true	"Username"
//	@Param			password	formData	string	true	"Password"
//	@Success		303			"Redirect to /login with success flash"
//	@Failure		303			"Redirect to /register with error flash"
//	@Router			/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	_, err := h.Identity.Register(r.Context(), r.PostFormValue("username"), r.PostFormValue("password"))
	if err != nil {
		redirectWithError(w, r, "/register", err)
		return
	}

	flash.Write(w, r, flash.Success("Registration successful! Please log in."))
	httpx.SeeOther(w, r, "/login")
}

// HandleLogout handles GET /logout
//
//	@Summary		Log out
//	@Description	Ends the session and clears the cookie.
//	@Tags			Auth
//	@Security		SessionCookie
//	@Success		303	"Redirect to /login"
//	@Router			/logout [get].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	token, _ := h.Cookie.Read(r)
	if err := h.Identity.Logout(r.Context(), token); err != nil {
		// the cookie is cleared regardless, the row expires on its own
		slogx.FromContext(r.Context()).Warn("logout failed", "error", err)
	}

	h.Cookie.Clear(w, r)
	httpx.SeeOther(w, r, "/login")
}

func authPage(w http.ResponseWriter, r *http.Request) modsdk.AuthPageResponse {
	return modsdk.AuthPageResponse{Flash: pendingFlash(w, r)}
}

func pendingFlash(w http.ResponseWriter, r *http.Request) *modsdk.Flash {
	n, ok := flash.ReadAndClear(w, r)
	if !ok {
		return nil
	}
	return &modsdk.Flash{Kind: string(n.Kind), Message: n.Message}
}
