package middleware

import (
	"net/http"
	"slices"

	"github.com/go-chi/cors"
	"github.com/unionprice/union-price-api/internal/handlers"
)

// CORS answers preflight requests and decorates responses for the allowed origins.
func CORS(origins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "Authorization", handlers.RequestIDHeader},
		ExposedHeaders: []string{handlers.RequestIDHeader},
		MaxAge:         86400,
	})
}

// AllowAnyOrigin sets Access-Control-Allow-Origin: * on every response, with or
// without an Origin header, when the wildcard origin is configured.
func AllowAnyOrigin(origins []string) func(http.Handler) http.Handler {
	wildcard := slices.Contains(origins, "*")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if wildcard {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			}
			next.ServeHTTP(w, r)
		})
	}
}
