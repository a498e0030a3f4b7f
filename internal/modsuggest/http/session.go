package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/modsuggest/internal/modsuggest/service"
	"github.com/aussiebroadwan/modsuggest/pkg/httpx"
	"github.com/aussiebroadwan/modsuggest/pkg/slogx"
)

// onUnauthenticated selects what a protected route does without a valid
// session.
type onUnauthenticated int

const (
	// redirectToLogin is for pages a browser navigates to.
	redirectToLogin onUnauthenticated = iota
	// respond401 is for JSON endpoints called from scripts.
	respond401
)

// requireSession resolves the session cookie to an account and stores it in
// the request context. The request logger gains an account_id attribute.
func (rt *Router) requireSession(mode onUnauthenticated) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, _ := rt.sessionCookie.Read(r)

			acct, err := rt.Identity.RequireAuth(r.Context(), token)
			if err != nil {
				if !errors.Is(err, service.ErrUnauthenticated) {
					writeServiceError(w, r, err)
					return
				}
				if token != "" {
					rt.sessionCookie.Clear(w, r)
				}
				if mode == redirectToLogin {
					httpx.SeeOther(w, r, "/login")
					return
				}
				writeServiceError(w, r, err)
				return
			}

			ctx := slogx.With(withAccount(r.Context(), acct), "account_id", acct.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// requireAdmin must run after requireSession.
func requireAdmin() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			acct, _ := accountFrom(r.Context())
			if err := service.RequireAdmin(acct); err != nil {
				writeServiceError(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
