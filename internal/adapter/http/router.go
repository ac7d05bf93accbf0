package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/splitit/internal/adapter/http/handler"
	"github.com/iho/splitit/internal/adapter/http/middleware"
	"github.com/iho/splitit/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	OccasionHandler    *handler.OccasionHandler
	EventHandler       *handler.EventHandler
	ExpenditureHandler *handler.ExpenditureHandler
	SettlementHandler  *handler.SettlementHandler
	PaymentHandler     *handler.PaymentHandler
	BalanceHandler     *handler.BalanceHandler
	HealthHandler      *handler.HealthHandler
	IdempotencyStore   usecase.IdempotencyStore
	RateLimiter        *middleware.RateLimiter
	Logger             zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewRequestLogger(cfg.Logger).Wrap)
	r.Use(middleware.NewRecovery(cfg.Logger).Wrap)
	r.Use(middleware.Metrics)

	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)

	// Prometheus scrape endpoint
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Occasions
		r.Route("/occasions", func(r chi.Router) {
			r.Post("/", cfg.OccasionHandler.Create)
			r.Get("/", cfg.OccasionHandler.List)
			r.Get("/{id}", cfg.OccasionHandler.Get)
			r.Put("/{id}", cfg.OccasionHandler.Update)
			r.Delete("/{id}", cfg.OccasionHandler.Delete)
			r.Get("/{id}/summary", cfg.OccasionHandler.Summary)
			r.Get("/{id}/events", cfg.EventHandler.ListByOccasion)
		})

		// Events
		r.Route("/events", func(r chi.Router) {
			r.Post("/", cfg.EventHandler.Create)
			r.Get("/", cfg.EventHandler.List)
			r.Get("/{id}", cfg.EventHandler.Get)
			r.Put("/{id}", cfg.EventHandler.Update)
			r.Delete("/{id}", cfg.EventHandler.Delete)
			r.Get("/{id}/expenditures", cfg.ExpenditureHandler.ListByEvent)
		})

		// Expenditures
		r.Route("/expenditures", func(r chi.Router) {
			r.Post("/", cfg.ExpenditureHandler.Create)
			r.Get("/", cfg.ExpenditureHandler.List)
			r.Get("/{id}", cfg.ExpenditureHandler.Get)
			r.Delete("/{id}", cfg.ExpenditureHandler.Delete)
		})

		// Splits
		r.Route("/splits", func(r chi.Router) {
			r.Post("/{id}/settle", cfg.SettlementHandler.SettleSplit)
		})

		// Payments
		r.Route("/payments", func(r chi.Router) {
			r.Post("/", cfg.PaymentHandler.Create)
			r.Get("/{id}", cfg.PaymentHandler.Get)
			r.Post("/{id}/settle", cfg.SettlementHandler.SettlePayment)
		})

		// Users
		r.Route("/users", func(r chi.Router) {
			r.Get("/{id}/balance", cfg.BalanceHandler.Get)
			r.Get("/{id}/payments", cfg.PaymentHandler.ListByUser)
		})
	})

	return r
}
