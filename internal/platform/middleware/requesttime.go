package middleware

import (
	"net/http"
	"time"

	"rutcheck/pkg/requestcontext"
)

// RequestTime pins one "now" for the whole request so rate limiting and
// logging agree on it.
func RequestTime(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
