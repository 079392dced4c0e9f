package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/kixhq/kix/internal/httpserver/deps"
)

type componentStatus struct {
	OK    bool   `json:"ok"`
	Mode  string `json:"mode,omitempty"`
	Error string `json:"error,omitempty"`
}

type debugResponse struct {
	StoreBackend   string                     `json:"store_backend"`
	GamesTotal     int64                      `json:"games_total"`
	ActiveSessions int                        `json:"active_sessions"`
	Components     map[string]componentStatus `json:"components"`
}

// Debug reports the store backend, catalog size and active play sessions.
// Admin-only; values here are operational, not secret, but there is no
// reason to expose them publicly.
func Debug(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		store := componentStatus{OK: true, Mode: d.StoreBackend}
		if err := d.Catalog.Ping(ctx); err != nil {
			store.OK = false
			store.Error = err.Error()
		}

		total, err := d.Catalog.Count(ctx)
		if err != nil {
			total = -1
		}

		writeJSON(w, http.StatusOK, debugResponse{
			StoreBackend:   d.StoreBackend,
			GamesTotal:     total,
			ActiveSessions: d.Sessions.Count(),
			Components: map[string]componentStatus{
				"store": store,
			},
		})
	}
}
