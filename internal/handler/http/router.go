package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/braginaliz/web-larek/pkg/health"
	"github.com/braginaliz/web-larek/pkg/middleware"

	"github.com/braginaliz/web-larek/internal/session"
)

// RouterConfig carries the knobs the router needs beyond its dependencies.
type RouterConfig struct {
	RateLimitRPS   int
	RateLimitBurst int
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(
	manager *session.Manager,
	healthHandler *health.Handler,
	logger *slog.Logger,
	cfg RouterConfig,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("storefront"))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Session API endpoints
	sessionHandler := NewSessionHandler(manager, logger)

	r.Route("/api/v1/sessions", func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst, logger))

		r.Post("/", sessionHandler.CreateSession)

		r.Route("/{sessionID}", func(r chi.Router) {
			r.Delete("/", sessionHandler.DeleteSession)

			r.Get("/catalog", sessionHandler.GetCatalog)
			r.Post("/catalog/refresh", sessionHandler.RefreshCatalog)
			r.Get("/catalog/{productID}", sessionHandler.SelectProduct)

			r.Delete("/preview", sessionHandler.ClosePreview)
			r.Post("/preview/toggle", sessionHandler.TogglePreview)

			r.Get("/basket", sessionHandler.GetBasket)
			r.Post("/basket/items", sessionHandler.AddBasketItem)
			r.Delete("/basket/items/{productID}", sessionHandler.RemoveBasketItem)

			r.Get("/order", sessionHandler.GetOrder)
			r.Post("/order", sessionHandler.BeginCheckout)
			r.Patch("/order", sessionHandler.SetOrderField)
			r.Post("/order/submit", sessionHandler.SubmitOrder)
		})
	})

	return r
}
