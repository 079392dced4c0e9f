package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kixhq/kix/internal/domain"
	"github.com/kixhq/kix/internal/httpserver/deps"
)

// ListGames returns the published catalog, newest first.
func ListGames(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		games, err := d.Catalog.ListPublished(r.Context())
		if err != nil {
			writeStoreError(w, d, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"games": games})
	}
}

// GetGame returns a single published game by slug. Drafts and archived games
// are indistinguishable from unknown slugs here.
func GetGame(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")

		game, ok, err := d.Catalog.GetBySlug(r.Context(), slug)
		if err != nil {
			writeStoreError(w, d, err)
			return
		}
		if !ok || game.Status != domain.StatusPublished {
			writeError(w, http.StatusNotFound, "Game not found")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"game": game})
	}
}
