package app

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/lumenpay/sandbox/internal/sandbox/http"
	"github.com/lumenpay/sandbox/internal/sandbox/service"
	"github.com/lumenpay/sandbox/internal/sandbox/store"
	"github.com/lumenpay/sandbox/internal/sandbox/store/drivers/sqlite"
	"github.com/lumenpay/sandbox/pkg/jwtx"
	"github.com/lumenpay/sandbox/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application encapsulates the sandbox API with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db     store.Store
	tokens *jwtx.Codec

	authService        *service.AuthService
	ledgerService      *service.LedgerService
	transactionService *service.TransactionService
	invoiceService     *service.InvoiceService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized: the session
// store is opened and migrated, the mock dataset seeded, a previously stored
// session restored and the HTTP surface wired.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "sandbox-api",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	secret, err := app.resolveJWTSecret()
	if err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.tokens = jwtx.NewCodec(secret, cfg.Issuer, jwtx.DefaultTokenTTL)

	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("sandbox api starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
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

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down sandbox api...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("sandbox api stopped")
	return nil
}

// initDatabase opens the session store and applies migrations.
func (app *Application) initDatabase() error {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// resolveJWTSecret returns the configured secret, or a random per-process one
// outside prod. A random secret invalidates stored tokens on restart, which
// for the presence-only session check is harmless.
func (app *Application) resolveJWTSecret() ([]byte, error) {
	if app.cfg.JWTSecret != "" {
		return []byte(app.cfg.JWTSecret), nil
	}
	if app.cfg.Env == "prod" {
		return nil, fmt.Errorf("SANDBOX_JWT_SECRET is required in prod")
	}

	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("failed to generate session secret: %w", err)
	}
	app.logger.Warn("SANDBOX_JWT_SECRET not set, using a random per-process secret")
	return secret, nil
}

// initServices seeds the mock dataset and wires the business services around
// one shared fixed-window limiter, so account reads, transfers, transaction
// listings and invoices all draw from the same budget.
func (app *Application) initServices() error {
	creds, err := service.SeedCredentials()
	if err != nil {
		return fmt.Errorf("failed to seed credentials: %w", err)
	}

	limit := app.cfg.RateLimit
	if limit <= 0 {
		limit = service.DefaultRateLimit
	}
	window := app.cfg.RateWindow
	if window <= 0 {
		window = service.DefaultRateWindow
	}
	limiter := service.NewFixedWindowLimiter(limit, window)

	app.transactionService = service.NewTransactionService(limiter, service.SeedTransactions())
	app.transactionService.Latency = app.cfg.SimulatedLatency

	app.ledgerService = service.NewLedgerService(app.transactionService, limiter, service.SeedAccounts())
	app.ledgerService.Latency = app.cfg.SimulatedLatency

	app.invoiceService = service.NewInvoiceService(limiter)
	app.invoiceService.Latency = app.cfg.SimulatedLatency

	app.authService = service.NewAuthService(app.db, app.tokens, creds)
	app.authService.Latency = app.cfg.SimulatedLatency

	ctx := slogx.WithContext(context.Background(), app.logger)
	if err := app.authService.Restore(ctx); err != nil {
		return fmt.Errorf("failed to restore session: %w", err)
	}

	return nil
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.tokens,
		BuildVersion,
		app.db,
		app.logger,
	)

	router.AuthService = app.authService
	router.LedgerService = app.ledgerService
	router.TransactionService = app.transactionService
	router.InvoiceService = app.invoiceService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
