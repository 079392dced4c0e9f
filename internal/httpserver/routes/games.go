package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/kixhq/kix/internal/httpserver/deps"
	"github.com/kixhq/kix/internal/httpserver/handlers"
)

func init() { Register(registerGames) }

func registerGames(r chi.Router, d deps.Deps) {
	r.Get("/api/v1/games", handlers.ListGames(d))
	r.Get("/api/v1/games/{slug}", handlers.GetGame(d))
}
