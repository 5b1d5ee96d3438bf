package middleware

import (
	"net/http"
	"strconv"

	"github.com/unionprice/union-price-api/internal/handlers"
	"golang.org/x/time/rate"
)

// RateLimit rejects requests with 429 once the shared token bucket is empty.
// A non-positive limit disables it.
func RateLimit(limit float64, burst int) func(http.Handler) http.Handler {
	if limit <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if burst < 1 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(limit), burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				rateLimitRejects.Inc()
				w.Header().Set("Retry-After", "1")
				handlers.RespondErrorJSON(w, r, http.StatusTooManyRequests, handlers.ErrRateLimited.Error(), "Rate limit exceeded", nil)
				return
			}
			w.Header().Set("X-RateLimit-Limit", strconv.FormatFloat(limit, 'f', -1, 64))
			next.ServeHTTP(w, r)
		})
	}
}
