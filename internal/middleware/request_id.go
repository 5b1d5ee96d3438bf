package middleware

import (
	"net/http"

	"github.com/unionprice/union-price-api/internal/handlers"
)

// RequestID makes sure every request carries an X-Request-ID and echoes it back.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlers.RequestID(w, r)
		next.ServeHTTP(w, r)
	})
}
