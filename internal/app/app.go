// Package app wires together all dependencies and runs the storefront
// service.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/braginaliz/web-larek/pkg/health"
	"github.com/braginaliz/web-larek/pkg/httpclient"

	"github.com/braginaliz/web-larek/internal/adapter/shopapi"
	"github.com/braginaliz/web-larek/internal/config"
	handler "github.com/braginaliz/web-larek/internal/handler/http"
	"github.com/braginaliz/web-larek/internal/session"
)

// App wires together all dependencies and runs the storefront service.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	manager    *session.Manager
	httpServer *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	// Shop backend client behind retries and a circuit breaker.
	inner := httpclient.New(httpclient.DefaultConfig())
	breaker := httpclient.NewCircuitBreakerClient(inner, httpclient.DefaultCircuitBreakerConfig("shop-api"), logger)
	shop := shopapi.New(breaker, cfg.ShopAPIURL, cfg.CDNURL, logger)

	logger.Info("shop api client initialized",
		slog.String("api_url", cfg.ShopAPIURL),
		slog.String("cdn_url", cfg.CDNURL),
	)

	manager := session.NewManager(shop, cfg.SessionTTL, logger)

	// Health checks. The shop backend is reported down while its breaker is
	// open; sessions keep serving their loaded catalogs regardless.
	healthHandler := health.NewHandler()
	healthHandler.Register("shop-api", func(ctx context.Context) error {
		if breaker.State() == gobreaker.StateOpen {
			return fmt.Errorf("shop api circuit breaker is open")
		}
		return nil
	})

	router := handler.NewRouter(manager, healthHandler, logger, handler.RouterConfig{
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:        cfg,
		logger:     logger,
		manager:    manager,
		httpServer: httpServer,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	a.manager.Close()

	a.logger.Info("application shutdown complete")
	return nil
}
