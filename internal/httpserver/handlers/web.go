package handlers

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kixhq/kix/internal/domain"
	"github.com/kixhq/kix/internal/httpserver/deps"
	"github.com/kixhq/kix/internal/logger"
	"github.com/kixhq/kix/internal/sdk"
	"github.com/kixhq/kix/internal/web"
)

// FeedPage serves the feed shell. The shell fetches the published catalog
// client-side.
func FeedPage(d deps.Deps) http.HandlerFunc {
	return servePage(d, "static/index.html")
}

// PlayerPage serves the player shell for a published game, 404 otherwise so
// draft and archived slugs stay invisible.
func PlayerPage(d deps.Deps) http.HandlerFunc {
	serve := servePage(d, "static/player.html")
	return func(w http.ResponseWriter, r *http.Request) {
		game, ok, err := d.Catalog.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			writeStoreError(w, d, err)
			return
		}
		if !ok || game.Status != domain.StatusPublished {
			http.NotFound(w, r)
			return
		}
		serve(w, r)
	}
}

// StaticAssets serves /static/* and /games/* from the embedded tree.
func StaticAssets() http.Handler {
	return http.FileServer(http.FS(web.Assets))
}

// BridgeJS renders the SDK bridge script with the play context from the
// query string baked in.
func BridgeJS(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		script, err := sdk.BridgeScript(sdk.Context{
			SessionID: q.Get("session_id"),
			GameID:    q.Get("game_id"),
			Locale:    q.Get("locale"),
		})
		if err != nil {
			d.Logger.Error("failed to render bridge script", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write([]byte(script))
	}
}

func servePage(d deps.Deps, name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := fs.ReadFile(web.Assets, name)
		if err != nil {
			d.Logger.Error("missing embedded page", logger.String("page", name), logger.Error(err))
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(page)
	}
}
