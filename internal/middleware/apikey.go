package middleware

import (
	"crypto/subtle"
	"net/http"
)

// NewAPIKeyHandler returns a middleware that rejects requests whose X-API-Key
// header does not match one of the configured keys. Mismatches get a 401 with
// a JSON error body so clients can distinguish auth failures from routing ones.
func NewAPIKeyHandler(keys []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			presented := r.Header.Get("X-API-Key")
			for _, key := range keys {
				if len(presented) == len(key) && subtle.ConstantTimeCompare([]byte(presented), []byte(key)) == 1 {
					next.ServeHTTP(w, r)
					return
				}
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":{"code":"unauthorized","message":"missing or invalid API key"}}`))
		})
	}
}
