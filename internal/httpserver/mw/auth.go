package mw

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/kixhq/kix/internal/logger"
)

// RequireBearer guards the admin surface with a single static token.
// There is no per-admin identity, rotation or expiry: the comparison is an
// exact match against the configured value.
func RequireBearer(token string, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			presented, ok := strings.CutPrefix(auth, "Bearer ")
			if !ok || subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
				log.Debug("rejected admin request",
					logger.String("path", r.URL.Path),
					logger.String("remote", r.RemoteAddr))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"Unauthorized"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
