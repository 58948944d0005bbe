package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/gocalc/internal/adapter/http/handler"
	"github.com/iho/gocalc/internal/adapter/http/middleware"
	"github.com/iho/gocalc/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	LoanHandler        *handler.LoanHandler
	CalculatorHandler  *handler.CalculatorHandler
	HistoryHandler     *handler.HistoryHandler
	PreferencesHandler *handler.PreferencesHandler
	HealthHandler      *handler.HealthHandler
	IdempotencyStore   usecase.IdempotencyStore
	IdempotencyTTL     time.Duration
	RateLimiter        *middleware.RateLimiter
	Logger             zerolog.Logger
	MetricsHandler     http.Handler
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)

	metricsHandler := cfg.MetricsHandler
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/loans", func(r chi.Router) {
			r.Post("/payment", cfg.LoanHandler.Payment)
			r.Post("/schedule", cfg.LoanHandler.Schedule)
		})

		r.Route("/calculators", func(r chi.Router) {
			r.Get("/", cfg.CalculatorHandler.List)
			r.Post("/{name}", cfg.CalculatorHandler.Evaluate)
		})

		r.Route("/history", func(r chi.Router) {
			r.Get("/", cfg.HistoryHandler.List)
			r.Delete("/", cfg.HistoryHandler.Clear)
			r.Group(func(r chi.Router) {
				if cfg.IdempotencyStore != nil {
					r.Use(middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL).Wrap)
				}
				r.Post("/", cfg.HistoryHandler.Create)
			})
		})

		r.Route("/preferences", func(r chi.Router) {
			r.Get("/{client}", cfg.PreferencesHandler.Get)
			r.Put("/{client}", cfg.PreferencesHandler.Update)
		})
	})

	return r
}
