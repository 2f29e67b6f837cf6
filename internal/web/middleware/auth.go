// Package middleware holds the HTTP middleware for the photo service:
// API key auth, request ID propagation, and structured request logging.
package middleware

import "net/http"

// APIKeyAuth validates the X-API-Key header against the configured key
func APIKeyAuth(apiKey string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("X-API-Key") == apiKey {
				next.ServeHTTP(w, r)
				return
			}

			// Unauthorized
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail":"Invalid API key"}`))
		})
	}
}
