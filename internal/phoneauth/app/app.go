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

	httpapi "github.com/aussiebroadwan/phoneauth/internal/phoneauth/http"
	"github.com/aussiebroadwan/phoneauth/internal/phoneauth/service"
	"github.com/aussiebroadwan/phoneauth/internal/phoneauth/sms"
	"github.com/aussiebroadwan/phoneauth/internal/phoneauth/store/drivers/redis"
	"github.com/aussiebroadwan/phoneauth/internal/phoneauth/store/drivers/sqlite"
	"github.com/aussiebroadwan/phoneauth/pkg/cryptox"
	"github.com/aussiebroadwan/phoneauth/pkg/httpx"
	"github.com/aussiebroadwan/phoneauth/pkg/jwtx"
	"github.com/aussiebroadwan/phoneauth/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application wires the phone login service together.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db         *sqlite.Store
	ephemeral  *redis.Ephemeral
	settings   *SettingsStore
	keyManager *jwtx.KeyManager
	hasher     *cryptox.OTPHasher
	gateway    sms.Gateway

	loginService        *service.LoginService
	profileService      *service.ProfileService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// Option adjusts an Application before its services are built.
type Option func(*Application)

// WithLogger replaces the logger built from the config.
func WithLogger(logger *slog.Logger) Option {
	return func(app *Application) { app.logger = logger }
}

// WithGateway replaces the 2Factor client.
func WithGateway(gw sms.Gateway) Option {
	return func(app *Application) { app.gateway = gw }
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config, opts ...Option) (*Application, error) {
	app := &Application{cfg: cfg}
	for _, opt := range opts {
		opt(app)
	}
	if app.logger == nil {
		app.logger = slogx.New(slogx.Config{
			Service: "phoneauth",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		})
	}
	if app.gateway == nil {
		app.gateway = sms.NewTwoFactorGateway(cfg.SMSBaseURL, cfg.SMSTimeout)
	}

	settings, err := NewSettingsStore(cfg.SettingsFile, app.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	app.settings = settings

	pepper, err := cryptox.LoadOrCreatePepper(cfg.PepperFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load pepper: %w", err)
	}
	if app.hasher, err = cryptox.NewOTPHasher(pepper); err != nil {
		return nil, err
	}

	if app.keyManager, err = InitSessionKeys(cfg, app.logger); err != nil {
		return nil, err
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	if err := app.initEphemeral(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Handler returns the HTTP handler serving every route.
func (app *Application) Handler() http.Handler {
	return app.router
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app.housekeepingService.Start()
	app.settings.WatchSIGHUP(ctx)

	app.logger.Info("phoneauth starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
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

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down phoneauth...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()
	return app.Close()
}

// Close releases the stores without touching the HTTP server.
func (app *Application) Close() error {
	if err := app.ephemeral.Close(); err != nil {
		app.logger.Error("error closing redis", "error", err)
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("phoneauth stopped")
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
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

// initEphemeral opens the redis store. An unreachable server is not fatal:
// the rate limits fail open and codes fall back to SQLite when enabled.
func (app *Application) initEphemeral() error {
	eph, err := redis.Open(app.cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	app.ephemeral = eph

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := eph.Ping(ctx); err != nil {
		app.logger.Warn("redis unreachable at startup", "error", err, "otp_fallback", app.cfg.OTPFallback)
	}
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	limiter := &service.RateLimiter{
		Counters: app.ephemeral.RateCounters(),
		Logger:   app.logger,
	}
	directory := &service.PhoneDirectory{
		Store:  app.db,
		Cache:  app.ephemeral.Cache(),
		Logger: app.logger,
	}

	issuer := &service.OTPIssuer{
		Codes:   app.ephemeral.OTPCodes(),
		Limiter: limiter,
		Gateway: app.gateway,
		Hasher:  app.hasher,
		Logger:  app.logger,
	}
	verifier := &service.OTPVerifier{
		Codes:   app.ephemeral.OTPCodes(),
		Limiter: limiter,
		Accounts: &service.AccountResolver{
			Store:     app.db,
			Directory: directory,
			Logger:    app.logger,
		},
		Hasher: app.hasher,
		Logger: app.logger,
	}
	if app.cfg.OTPFallback {
		issuer.Fallback = app.db.OTPLogins()
		verifier.Fallback = app.db.OTPLogins()
		app.logger.Info("otp fallback table enabled")
	}

	app.loginService = &service.LoginService{
		Settings: app.settings.Current,
		Issuer:   issuer,
		Verifier: verifier,
		Sessions: &service.SessionIssuer{
			Signer: app.keyManager.Signer,
			Issuer: app.cfg.Issuer,
			TTL:    app.cfg.SessionTTL,
		},
	}
	app.profileService = &service.ProfileService{
		Store:     app.db,
		Directory: directory,
		Settings:  app.settings.Current,
		Logger:    app.logger,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	httpx.LoadRateLimitsFromEnv()

	router := httpapi.NewRouter(
		app.keyManager.KeySet,
		app.keyManager.Verifier,
		BuildVersion,
		app.db,
		app.ephemeral,
		app.logger,
	)

	router.LoginService = app.loginService
	router.ProfileService = app.profileService
	router.AdminToken = app.cfg.AdminToken
	router.TrustProxy = app.cfg.TrustProxyHeaders
	router.SecureCookies = app.cfg.Env != "dev"
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
