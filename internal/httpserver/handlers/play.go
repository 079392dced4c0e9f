package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kixhq/kix/internal/domain"
	"github.com/kixhq/kix/internal/httpserver/deps"
	"github.com/kixhq/kix/internal/lifecycle"
	"github.com/kixhq/kix/internal/utils"
)

type playResponse struct {
	ID       string              `json:"id"`
	State    lifecycle.State     `json:"state"`
	Commands []lifecycle.Command `json:"commands"`
}

func playView(s *lifecycle.Session) playResponse {
	return playResponse{
		ID:       s.ID(),
		State:    s.State(),
		Commands: s.Commands(),
	}
}

// OpenPlay starts a play session for a published game: creates the host-side
// state machine, arms the ready timeout and records game_opened.
func OpenPlay(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer utils.Close(r.Body)

		var req struct {
			GameID    string `json:"game_id"`
			SessionID string `json:"session_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if req.GameID == "" || req.SessionID == "" {
			writeError(w, http.StatusBadRequest, "game_id and session_id are required")
			return
		}

		game, ok, err := d.Catalog.GetByID(r.Context(), req.GameID)
		if err != nil {
			writeStoreError(w, d, err)
			return
		}
		if !ok || game.Status != domain.StatusPublished {
			writeError(w, http.StatusNotFound, "Game not found")
			return
		}

		sess := d.Sessions.Open(req.GameID, req.SessionID)
		writeJSON(w, http.StatusCreated, map[string]any{"play": playView(sess)})
	}
}

// PlayMessage relays a frame event (loaded / ready / no-sdk) to the session
// state machine and returns the new state plus any pending commands.
func PlayMessage(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer utils.Close(r.Body)

		sess, ok := d.Sessions.Get(chi.URLParam(r, "id"))
		if !ok {
			writeError(w, http.StatusNotFound, "Play session not found")
			return
		}

		var req struct {
			Type string `json:"type"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		sess.HandleMessage(req.Type)
		writeJSON(w, http.StatusOK, map[string]any{"play": playView(sess)})
	}
}

// PlayState reports the session state and drains pending commands. The
// player polls this while loading so a server-side timeout still reaches
// the frame.
func PlayState(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := d.Sessions.Get(chi.URLParam(r, "id"))
		if !ok {
			writeError(w, http.StatusNotFound, "Play session not found")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"play": playView(sess)})
	}
}

// LeavePlay tears the session down. The response carries the final command
// batch, always including destroy, which the host must deliver to the frame
// before navigating away.
func LeavePlay(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := d.Sessions.Leave(chi.URLParam(r, "id"))
		if !ok {
			writeError(w, http.StatusNotFound, "Play session not found")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"play": playView(sess)})
	}
}

// RetryPlay resets an errored session back to loading.
func RetryPlay(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := d.Sessions.Get(chi.URLParam(r, "id"))
		if !ok {
			writeError(w, http.StatusNotFound, "Play session not found")
			return
		}
		if !sess.Retry() {
			writeError(w, http.StatusConflict, "Retry is only available after a load error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"play": playView(sess)})
	}
}
