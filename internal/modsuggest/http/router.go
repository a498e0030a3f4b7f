package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/modsuggest/internal/modsuggest/service"
	"github.com/aussiebroadwan/modsuggest/internal/modsuggest/store"
	"github.com/aussiebroadwan/modsuggest/pkg/httpx"
	"github.com/aussiebroadwan/modsuggest/pkg/modsdk"
	"github.com/aussiebroadwan/modsuggest/pkg/slogx"

	_ "github.com/aussiebroadwan/modsuggest/api/modsuggest" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion  string
	startTime     time.Time
	logger        *slog.Logger
	sessionCookie httpx.Cookie

	store       store.Store
	Identity    *service.IdentityService
	Suggestions *service.SuggestionService
	Accounts    *service.AccountService
}

// NewRouter builds a router. Services are assigned by the caller before
// ApplyRoutes.
func NewRouter(st store.Store, buildVersion string, secureCookies bool, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		sessionCookie: httpx.Cookie{
			Name:        modsdk.SessionCookieName,
			ForceSecure: secureCookies,
		},
		store: st,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.Recover(),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerSuggestions()
	r.registerAdmin()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Mod Suggestions API
//	@version		0.1.0
//	@description	Players suggest mods from CurseForge, Modrinth or elsewhere; admins review them and manage accounts.
//	@description
//	@description	Authentication is a session cookie set by POST /login. Page routes redirect to /login without it,
//	@description	JSON routes answer 401.
//
//	@contact.name	AussieBroadWAN Team
//	@contact.url	https://github.com/aussiebroadwan/modsuggest
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
//
//	@securityDefinitions.apikey	SessionCookie
//	@in							cookie
//	@name						modsuggest_session
//	@description				Session token issued at login.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		Identity: r.Identity,
		Cookie:   r.sessionCookie,
	}

	r.Mux.HandleFunc("GET /login", h.HandleLoginPage)
	r.Mux.HandleFunc("POST /login", h.HandleLogin)
	r.Mux.HandleFunc("GET /register", h.HandleRegisterPage)
	r.Mux.HandleFunc("POST /register", h.HandleRegister)

	r.Mux.Handle("GET /logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			r.requireSession(redirectToLogin),
		),
	)
}

func (r *Router) registerSuggestions() {
	h := &SuggestionsHandler{Suggestions: r.Suggestions}

	// exact match, otherwise "/" would catch every unknown GET
	r.Mux.Handle("GET /{$}",
		httpx.Chain(http.HandlerFunc(h.HandleIndex),
			r.requireSession(redirectToLogin),
		),
	)
	r.Mux.Handle("POST /suggest",
		httpx.Chain(http.HandlerFunc(h.HandleSubmit),
			r.requireSession(respond401),
		),
	)
	r.Mux.Handle("GET /api/suggestions",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			r.requireSession(respond401),
		),
	)
}

func (r *Router) registerAdmin() {
	review := &ReviewHandler{Suggestions: r.Suggestions}
	users := &UsersHandler{Accounts: r.Accounts}

	admin := func(h http.HandlerFunc, mode onUnauthenticated) http.Handler {
		return httpx.Chain(h, r.requireSession(mode), requireAdmin())
	}

	r.Mux.Handle("GET /admin/panel", admin(users.HandlePanel, redirectToLogin))

	r.Mux.Handle("POST /admin/approve/{id}", admin(review.HandleApprove, respond401))
	r.Mux.Handle("POST /admin/reject/{id}", admin(review.HandleReject, respond401))
	r.Mux.Handle("DELETE /admin/delete/{id}", admin(review.HandleDelete, respond401))

	r.Mux.Handle("DELETE /admin/users/delete/{id}", admin(users.HandleDelete, respond401))
	r.Mux.Handle("POST /admin/users/toggle-admin/{id}", admin(users.HandleToggleAdmin, respond401))
	r.Mux.Handle("POST /admin/users/reset-password/{id}", admin(users.HandleResetPassword, respond401))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
