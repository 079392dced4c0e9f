package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/kixhq/kix/internal/httpserver/deps"
	"github.com/kixhq/kix/internal/httpserver/handlers"
	"github.com/kixhq/kix/internal/httpserver/mw"
)

func init() { Register(registerAdmin) }

func registerAdmin(r chi.Router, d deps.Deps) {
	r.Route("/api/v1/admin", func(ar chi.Router) {
		ar.Use(mw.AllowOnlyCIDRS(d.AdminAllowedCIDRS, d.TrustProxy, d.Logger))
		ar.Use(mw.RequireBearer(d.AdminToken, d.Logger))

		ar.Get("/games", handlers.ListAllGames(d))
		ar.Post("/games", handlers.CreateGame(d))
		ar.Get("/games/{id}", handlers.GetGameByID(d))
		ar.Patch("/games/{id}", handlers.PatchGame(d))
		ar.Post("/games/{id}/publish", handlers.PublishGame(d))
		ar.Post("/games/{id}/archive", handlers.ArchiveGame(d))
		ar.Get("/debug", handlers.Debug(d))
	})
}
