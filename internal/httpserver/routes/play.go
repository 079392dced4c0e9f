package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/kixhq/kix/internal/httpserver/deps"
	"github.com/kixhq/kix/internal/httpserver/handlers"
)

func init() { Register(registerPlay) }

func registerPlay(r chi.Router, d deps.Deps) {
	r.Post("/api/v1/play", handlers.OpenPlay(d))
	r.Get("/api/v1/play/{id}", handlers.PlayState(d))
	r.Post("/api/v1/play/{id}/message", handlers.PlayMessage(d))
	r.Post("/api/v1/play/{id}/leave", handlers.LeavePlay(d))
	r.Post("/api/v1/play/{id}/retry", handlers.RetryPlay(d))
}
