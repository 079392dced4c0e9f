package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/kixhq/kix/internal/httpserver/deps"
	"github.com/kixhq/kix/internal/httpserver/handlers"
	"github.com/kixhq/kix/internal/httpserver/mw"
)

func init() { Register(registerEvents) }

func registerEvents(r chi.Router, d deps.Deps) {
	limit := mw.RateLimit(mw.RateLimitConfig{
		Burst:             d.EventsBurst,
		RefillPerIPPerMin: d.EventsPerIPPerMin,
		TrustProxy:        d.TrustProxy,
	})
	r.With(limit).Post("/api/v1/events", handlers.RecordEvent(d))
}
