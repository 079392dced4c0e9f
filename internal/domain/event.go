package domain

import "time"

// EventType classifies a telemetry event.
type EventType string

const (
	EventGameCardViewed EventType = "game_card_viewed"
	EventGameOpened     EventType = "game_opened"
	EventGameStarted    EventType = "game_started"
	EventGameExit       EventType = "game_exit"
	EventLoadError      EventType = "load_error"
)

// EventTypes lists every accepted telemetry event type.
var EventTypes = []EventType{
	EventGameCardViewed,
	EventGameOpened,
	EventGameStarted,
	EventGameExit,
	EventLoadError,
}

func (t EventType) Valid() bool {
	for _, v := range EventTypes {
		if t == v {
			return true
		}
	}
	return false
}

// TelemetryEvent is an immutable usage fact. Events are appended
// best-effort and never read back by this service.
type TelemetryEvent struct {
	ID        string         `json:"id"`
	EventType EventType      `json:"event_type"`
	GameID    string         `json:"game_id"`
	SessionID string         `json:"session_id"`
	Payload   map[string]any `json:"payload"`
	CreatedAt time.Time      `json:"created_at"`
}
