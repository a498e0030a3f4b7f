package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/modsuggest/internal/modsuggest/http"
	"github.com/aussiebroadwan/modsuggest/internal/modsuggest/service"
	"github.com/aussiebroadwan/modsuggest/internal/modsuggest/store/drivers/sqlite"
	"github.com/aussiebroadwan/modsuggest/pkg/cryptox"
	"github.com/aussiebroadwan/modsuggest/pkg/jwtx"
	"github.com/aussiebroadwan/modsuggest/pkg/slogx"
)

// BuildVersion is overridden at build time with -ldflags "-X ...".
var BuildVersion = "v0.1.0"

// Application owns the process-wide dependencies of the mod suggestion service.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db     *sqlite.Store
	signer *jwtx.EdDSASigner

	identityService     *service.IdentityService
	suggestionService   *service.SuggestionService
	accountService      *service.AccountService
	housekeepingService *service.HousekeepingService

	server  *http.Server
	router  *httpapi.Router
	running bool
}

// New opens the database, applies migrations, seeds the first admin and
// wires the HTTP server. It does not start listening.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg:    cfg,
		logger: newLogger(cfg),
	}

	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	if err := app.seedAdmin(); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	if err := app.initKeys(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Migrate prepares the database the same way New does and exits without
// serving.
func Migrate(cfg Config) error {
	app := &Application{cfg: cfg, logger: newLogger(cfg)}
	cryptox.SetPepperPath(cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return err
	}
	defer func() { _ = app.db.Close() }()

	return app.seedAdmin()
}

func newLogger(cfg Config) *slog.Logger {
	return slogx.New(slogx.Config{
		Service: "modsuggest",
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})
}

// Handler exposes the routed handler with its middleware chain.
func (app *Application) Handler() http.Handler { return app.router }

// Run serves until SIGINT/SIGTERM or a listener failure.
func (app *Application) Run() error {
	app.housekeepingService.Start()
	app.running = true

	app.logger.Info("modsuggest starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			_ = app.Shutdown()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown drains in-flight requests, stops background work and closes
// the database.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down modsuggest...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if app.running {
		app.housekeepingService.Stop()
		app.running = false
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("modsuggest stopped")
	return nil
}

func (app *Application) initDatabase() error {
	db, err := sqlite.NewStore(sqlite.FileDSN(app.cfg.DatabaseFile))
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied", "file", app.cfg.DatabaseFile)
	return nil
}

func (app *Application) seedAdmin() error {
	boot := &service.BootstrapService{
		Store:    app.db,
		Username: app.cfg.AdminUsername,
		Password: app.cfg.AdminPassword,
	}

	ctx := slogx.WithContext(context.Background(), app.logger)
	if _, err := boot.EnsureDefaultAdmin(ctx); err != nil {
		return fmt.Errorf("failed to seed admin account: %w", err)
	}
	return nil
}

func (app *Application) initKeys() error {
	pemKey, err := cryptox.LoadOrGenerateEd25519Key(app.cfg.SessionKeyFile)
	if err != nil {
		return fmt.Errorf("failed to load session key: %w", err)
	}

	signer, err := jwtx.NewSignerEdDSA(pemKey)
	if err != nil {
		return fmt.Errorf("failed to parse session key: %w", err)
	}
	app.signer = signer
	return nil
}

func (app *Application) initServices() {
	app.identityService = &service.IdentityService{
		Store:      app.db,
		Signer:     app.signer,
		Verifier:   jwtx.NewVerifierEdDSA(app.signer.PublicKey(), app.cfg.Issuer),
		Issuer:     app.cfg.Issuer,
		SessionTTL: app.cfg.SessionTTL,
	}
	app.suggestionService = &service.SuggestionService{Store: app.db}
	app.accountService = &service.AccountService{Store: app.db}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(app.db, BuildVersion, app.cfg.SecureCookies, app.logger)
	router.Identity = app.identityService
	router.Suggestions = app.suggestionService
	router.Accounts = app.accountService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
