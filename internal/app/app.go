package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"finmodel/internal/config"
	apierrors "finmodel/internal/errors"
	"finmodel/internal/infrastructure"
	custommw "finmodel/internal/middleware"
	"finmodel/internal/services"
	handlers "finmodel/internal/transport/http"
)

// Version is the application version, overridable at build time via
// -ldflags "-X finmodel/internal/app.Version=...".
var Version = "dev"

// Application is the main application container: configuration, logger,
// service layer, router and HTTP server, wired together in one place.
type Application struct {
	Config          *config.Config
	Logger          *slog.Logger
	Router          *chi.Mux
	Server          *http.Server
	ModelingService *services.ModelingService
	Metrics         *custommw.Metrics
	errorHandler    *apierrors.ErrorHandler
}

// NewApplication loads configuration, initializes the logger and wires
// the full service stack.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("application starting",
		slog.String("version", Version),
		slog.Int("port", cfg.Server.Port),
	)

	app := &Application{
		Config:          cfg,
		Logger:          logger,
		ModelingService: services.NewModelingService(logger),
		Metrics:         custommw.NewMetrics(),
		errorHandler:    apierrors.NewErrorHandler(logger, false),
	}

	app.setupRouter()
	app.createServer()

	return app, nil
}

// setupRouter configures the HTTP router with middleware and all routes
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommw.RequestLogger(a.Logger))
	r.Use(custommw.Recoverer(a.errorHandler))
	r.Use(a.Metrics.Middleware)
	r.Use(middleware.Timeout(a.Config.Server.ReadTimeout))

	if a.Config.Server.RateLimitRPS > 0 {
		r.Use(custommw.RateLimiter(a.Config.Server.RateLimitRPS, a.Config.Server.RateLimitBurst))
	}

	r.NotFound(a.errorHandler.NotFound)
	r.MethodNotAllowed(a.errorHandler.MethodNotAllowed)

	r.Route("/api", func(r chi.Router) {
		healthHandler := handlers.NewHealthHandler(a.Logger, Version)
		r.Get("/healthz", healthHandler.HealthCheck)

		modelHandler := handlers.NewModelHandler(
			a.ModelingService, a.Logger, a.errorHandler, a.Config.Export.SheetName)
		r.Mount("/model", modelHandler.Routes())
	})

	// Metrics endpoint stays outside the instrumented group so scrapes
	// don't count themselves.
	r.Handle("/metrics", a.Metrics.Handler())

	a.Router = r
}

// createServer builds the HTTP server from the server configuration
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Run starts the HTTP server and blocks until the context is cancelled,
// then drains in-flight requests within the shutdown timeout.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("server listening", slog.String("addr", a.Server.Addr))
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	a.Logger.Info("shutting down",
		slog.Duration("timeout", a.Config.Server.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	if err := infrastructure.CloseLogFile(); err != nil {
		a.Logger.Warn("failed to close log file", slog.String("error", err.Error()))
	}

	a.Logger.Info("shutdown complete")
	return nil
}
