// Package http is the bot's ops surface: health and Prometheus metrics.
// User traffic arrives over Telegram long polling, not HTTP, so there are no
// request routes here.
package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter creates the ops HTTP router with middleware, health check, and
// Prometheus metrics endpoint.
func NewRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	r.Get("/health", healthHandler)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
