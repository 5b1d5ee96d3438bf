package server

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/unionprice/union-price-api/internal/handlers"
	"github.com/unionprice/union-price-api/internal/middleware"
)

// routes builds the router. Middleware order is the request pipeline:
// CORS, request id, logging, metrics, recovery, then rate limiting for the
// estimate endpoints. Body decoding and validation happen in the handlers.
func (s *Server) routes() *chi.Mux {
	mux := chi.NewMux()

	// global middlewares
	mux.Use(middleware.CORS(s.Config.Server.CORSOrigins))
	mux.Use(middleware.AllowAnyOrigin(s.Config.Server.CORSOrigins))
	mux.Use(middleware.RequestID)
	mux.Use(middleware.RequestLogger(s.Logger))
	mux.Use(middleware.Metrics)
	mux.Use(chimw.Recoverer)

	mux.NotFound(handlers.NotFound)
	mux.MethodNotAllowed(handlers.MethodNotAllowed)

	mux.Get("/health", handlers.Health)
	mux.Handle("/metrics", promhttp.Handler())
	mux.Get("/api-docs", handlers.APIDocs(s.Dependencies.Docs))

	mux.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(s.Config.Server.RateLimit, s.Config.Server.RateBurst))

		r.Post("/estimated-rent", s.Dependencies.EstimateHandler.EstimatedRent)
		r.Post("/estimated-price", s.Dependencies.EstimateHandler.EstimatedPrice)
	})

	return mux
}
