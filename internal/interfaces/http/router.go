// Package http assembles the route tree and the server lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/wishwell/wishwell/internal/interfaces/http/handlers"
	"github.com/wishwell/wishwell/internal/interfaces/http/middleware"
)

// RouterConfig aggregates the handler and middleware dependencies of the
// complete route tree.
type RouterConfig struct {
	GiftHandler   *handlers.GiftHandler
	HealthHandler *handlers.HealthHandler

	AuthMiddleware      *middleware.AuthMiddleware
	CORSMiddleware      *middleware.CORSMiddleware
	LoggingMiddleware   *middleware.LoggingMiddleware
	RateLimitMiddleware *middleware.RateLimitMiddleware

	MetricsHandler http.Handler
}

// NewRouter wires global middleware, public probes, the metrics endpoint,
// and the authenticated API group.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	if cfg.CORSMiddleware != nil {
		r.Use(cfg.CORSMiddleware.Handler)
	}
	if cfg.LoggingMiddleware != nil {
		r.Use(cfg.LoggingMiddleware.Handler)
	}
	if cfg.RateLimitMiddleware != nil {
		r.Use(cfg.RateLimitMiddleware.Handler)
	}

	if cfg.HealthHandler != nil {
		r.Get("/healthz", cfg.HealthHandler.Liveness)
		r.Get("/readyz", cfg.HealthHandler.Readiness)
	}
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Route("/api/v1", func(api chi.Router) {
		if cfg.AuthMiddleware != nil {
			api.Use(cfg.AuthMiddleware.Handler)
		}
		if cfg.GiftHandler != nil {
			api.Post("/gifts/suggestions", cfg.GiftHandler.Suggest)
		}
	})

	return r
}
