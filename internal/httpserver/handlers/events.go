package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/kixhq/kix/internal/domain"
	"github.com/kixhq/kix/internal/httpserver/deps"
	"github.com/kixhq/kix/internal/utils"
)

type eventRequest struct {
	EventType string         `json:"event_type"`
	GameID    string         `json:"game_id"`
	SessionID string         `json:"session_id"`
	Payload   map[string]any `json:"payload"`
}

// RecordEvent accepts a telemetry event. The sink persists in the
// background; the response never waits on (or reports) the write outcome.
func RecordEvent(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer utils.Close(r.Body)

		var req eventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		if req.EventType == "" || req.GameID == "" || req.SessionID == "" {
			writeError(w, http.StatusBadRequest, "event_type, game_id, and session_id are required")
			return
		}

		eventType := domain.EventType(req.EventType)
		if !eventType.Valid() {
			writeError(w, http.StatusBadRequest,
				fmt.Sprintf("Invalid event_type. Must be one of: %s", eventTypeList()))
			return
		}

		event := d.Sink.Record(eventType, req.GameID, req.SessionID, req.Payload)
		writeJSON(w, http.StatusCreated, map[string]any{"event": event})
	}
}

func eventTypeList() string {
	out := ""
	for i, t := range domain.EventTypes {
		if i > 0 {
			out += ", "
		}
		out += string(t)
	}
	return out
}
