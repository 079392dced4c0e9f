package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/kixhq/kix/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready bool   `json:"ready"`
	Error string `json:"error,omitempty"`
}

// Readyz reports readiness: the service is ready once the backing store
// answers a ping.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := d.Catalog.Ping(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, readyzResponse{
				Ready: false,
				Error: "store unreachable",
			})
			return
		}
		writeJSON(w, http.StatusOK, readyzResponse{Ready: true})
	}
}
