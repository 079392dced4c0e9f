package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kixhq/kix/internal/domain"
	"github.com/kixhq/kix/internal/httpserver/deps"
	"github.com/kixhq/kix/internal/utils"
)

// ListAllGames returns every game regardless of status.
func ListAllGames(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		games, err := d.Catalog.ListAll(r.Context())
		if err != nil {
			writeStoreError(w, d, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"games": games})
	}
}

// CreateGame inserts a new draft game.
func CreateGame(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer utils.Close(r.Body)

		var in domain.GameCreateInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		game, err := d.Catalog.Create(r.Context(), in)
		if err != nil {
			writeStoreError(w, d, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"game": game})
	}
}

// GetGameByID returns a single game by ID, any status.
func GetGameByID(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		game, ok, err := d.Catalog.GetByID(r.Context(), id)
		if err != nil {
			writeStoreError(w, d, err)
			return
		}
		if !ok {
			writeError(w, http.StatusNotFound, "Game not found")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"game": game})
	}
}

// PatchGame applies a sparse update: only fields present in the body change.
func PatchGame(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer utils.Close(r.Body)

		id := chi.URLParam(r, "id")

		var patch domain.GameUpdateInput
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		game, ok, err := d.Catalog.Update(r.Context(), id, patch)
		if err != nil {
			writeStoreError(w, d, err)
			return
		}
		if !ok {
			writeError(w, http.StatusNotFound, "Game not found")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"game": game})
	}
}

// PublishGame moves a game to published.
func PublishGame(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		game, ok, err := d.Catalog.Publish(r.Context(), id)
		if err != nil {
			writeStoreError(w, d, err)
			return
		}
		if !ok {
			writeError(w, http.StatusNotFound, "Game not found")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"game": game})
	}
}

// ArchiveGame moves a game to archived.
func ArchiveGame(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		game, ok, err := d.Catalog.Archive(r.Context(), id)
		if err != nil {
			writeStoreError(w, d, err)
			return
		}
		if !ok {
			writeError(w, http.StatusNotFound, "Game not found")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"game": game})
	}
}
