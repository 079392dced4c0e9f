// Package lifecycle implements the host side of the SDK bridge protocol: a
// per-play-session state machine driven by frame messages and timer expiry.
package lifecycle

import (
	"sync"
	"time"

	"github.com/kixhq/kix/internal/domain"
	"github.com/kixhq/kix/internal/logger"
)

// State of a play session. Terminal per session, except that Retry re-enters
// loading from error.
type State string

const (
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateNoSDK   State = "no-sdk"
	StateError   State = "error"
)

// Command is a lifecycle instruction for the embedded game frame. The frame
// side treats every command as optional: a game without a matching handler
// ignores it.
type Command string

const (
	CommandStart   Command = "start"
	CommandPause   Command = "pause"
	CommandResume  Command = "resume"
	CommandDestroy Command = "destroy"
)

// Frame message types understood by the host.
const (
	MessageLoaded = "loaded" // the frame's own load handler fired
	MessageReady  = "ready"  // game initialized and subscribed to commands
	MessageNoSDK  = "no-sdk" // game loaded but does not speak the protocol
)

// Recorder appends telemetry events. Satisfied by telemetry.Sink.
type Recorder interface {
	Record(eventType domain.EventType, gameID, sessionID string, payload map[string]any) domain.TelemetryEvent
}

// Config holds the two timeouts the bridge owns.
type Config struct {
	// ReadyTimeout is how long a frame may stay silent before the session
	// errors out with a load_error event (default 15s).
	ReadyTimeout time.Duration
	// LoadGrace is the post-load wait before optimistically assuming the
	// game works but never imported the bridge script (default 3s).
	LoadGrace time.Duration
}

func (c Config) withDefaults() Config {
	if c.ReadyTimeout <= 0 {
		c.ReadyTimeout = 15 * time.Second
	}
	if c.LoadGrace <= 0 {
		c.LoadGrace = 3 * time.Second
	}
	return c
}

// Session tracks one game frame through loading -> ready | no-sdk | error.
// All transitions run under the session mutex; timers fire on their own
// goroutines and re-check state before acting.
type Session struct {
	mu sync.Mutex

	id        string
	gameID    string
	sessionID string
	cfg       Config
	rec       Recorder
	log       logger.Logger

	state      State
	commands   []Command
	readyTimer *time.Timer
	graceTimer *time.Timer
	closed     bool
}

// NewSession creates a session in the loading state and arms the ready
// timeout.
func NewSession(id, gameID, sessionID string, cfg Config, rec Recorder, log logger.Logger) *Session {
	s := &Session{
		id:        id,
		gameID:    gameID,
		sessionID: sessionID,
		cfg:       cfg.withDefaults(),
		rec:       rec,
		log:       log,
		state:     StateLoading,
	}
	s.readyTimer = time.AfterFunc(s.cfg.ReadyTimeout, s.onReadyTimeout)
	return s
}

func (s *Session) ID() string { return s.id }

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// HandleMessage processes a message relayed from the frame. Unknown message
// types are ignored, not errors: the frame content is untrusted.
func (s *Session) HandleMessage(msgType string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.state != StateLoading {
		return
	}

	switch msgType {
	case MessageLoaded:
		// The frame loaded; give the bridge script a short grace period
		// before assuming the game never imported it.
		if s.graceTimer == nil {
			s.graceTimer = time.AfterFunc(s.cfg.LoadGrace, s.onGraceElapsed)
		}
	case MessageReady:
		s.state = StateReady
		s.stopTimersLocked()
		s.commands = append(s.commands, CommandStart)
		s.rec.Record(domain.EventGameStarted, s.gameID, s.sessionID, nil)
	case MessageNoSDK:
		// Normal success state: the game plays fine without the SDK.
		s.state = StateNoSDK
		s.stopTimersLocked()
		s.rec.Record(domain.EventGameStarted, s.gameID, s.sessionID, map[string]any{"sdk": false})
	default:
		s.log.Debug("ignoring unknown frame message",
			logger.String("type", msgType),
			logger.String("game_id", s.gameID))
	}
}

// Leave queues a destroy command and records game_exit, regardless of the
// current state. Pending timers are cleared so nothing fires after leaving.
func (s *Session) Leave() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.stopTimersLocked()
	s.commands = append(s.commands, CommandDestroy)
	s.rec.Record(domain.EventGameExit, s.gameID, s.sessionID, nil)
}

// Retry resets an errored session back to loading and re-arms the ready
// timeout. Returns false in any other state.
func (s *Session) Retry() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.state != StateError {
		return false
	}
	s.state = StateLoading
	s.graceTimer = nil
	s.readyTimer = time.AfterFunc(s.cfg.ReadyTimeout, s.onReadyTimeout)
	return true
}

// Commands drains and returns the pending commands for the frame.
func (s *Session) Commands() []Command {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.commands
	s.commands = nil
	return out
}

// Close stops pending timers without emitting anything. Used on shutdown.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.stopTimersLocked()
}

func (s *Session) onReadyTimeout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.state != StateLoading {
		return
	}
	s.state = StateError
	s.stopTimersLocked()
	s.rec.Record(domain.EventLoadError, s.gameID, s.sessionID, map[string]any{"reason": "timeout"})
}

func (s *Session) onGraceElapsed() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.state != StateLoading {
		return
	}
	// Loaded but silent: treat as playable without SDK participation.
	s.state = StateNoSDK
	s.stopTimersLocked()
	s.rec.Record(domain.EventGameStarted, s.gameID, s.sessionID, map[string]any{"sdk": false})
}

func (s *Session) stopTimersLocked() {
	if s.readyTimer != nil {
		s.readyTimer.Stop()
		s.readyTimer = nil
	}
	if s.graceTimer != nil {
		s.graceTimer.Stop()
		s.graceTimer = nil
	}
}
