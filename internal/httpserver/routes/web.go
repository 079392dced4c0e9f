package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/kixhq/kix/internal/httpserver/deps"
	"github.com/kixhq/kix/internal/httpserver/handlers"
)

func init() { Register(registerWeb) }

func registerWeb(r chi.Router, d deps.Deps) {
	assets := handlers.StaticAssets()

	r.Get("/", handlers.FeedPage(d))
	r.Get("/play/{slug}", handlers.PlayerPage(d))
	r.Get("/sdk/bridge.js", handlers.BridgeJS(d))
	r.Handle("/static/*", assets)
	r.Handle("/games/*", assets)
}
