// Package telemetry appends usage events best-effort. Nothing here ever
// blocks or fails the caller: a dropped event is an acceptable loss.
package telemetry

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kixhq/kix/internal/domain"
	"github.com/kixhq/kix/internal/kv"
	"github.com/kixhq/kix/internal/logger"
)

const (
	// KeyPrefixEvent is the prefix for event record keys
	KeyPrefixEvent = "kix:event:"
	// KeyAllEvents is the set of all event IDs
	KeyAllEvents = "kix:events:all"

	// persistTimeout bounds each background write.
	persistTimeout = 5 * time.Second
)

// EventKey returns the storage key for an event by ID
func EventKey(id string) string {
	return KeyPrefixEvent + id
}

// Sink records telemetry events. Record constructs the event and hands it to
// a background worker through a bounded channel; persistence failures are
// logged and swallowed, never surfaced to the event producer.
type Sink struct {
	kv   kv.Store
	log  logger.Logger
	now  func() time.Time
	ch   chan domain.TelemetryEvent
	done chan struct{}

	// mu serializes the channel send against close so Record can never hit
	// a closed channel.
	mu     sync.Mutex
	closed bool
}

func New(kvs kv.Store, log logger.Logger, buffer int) *Sink {
	if buffer <= 0 {
		buffer = 256
	}
	return &Sink{
		kv:   kvs,
		log:  log,
		now:  time.Now,
		ch:   make(chan domain.TelemetryEvent, buffer),
		done: make(chan struct{}),
	}
}

// Start launches the background writer.
func (s *Sink) Start() {
	go func() {
		defer close(s.done)
		for ev := range s.ch {
			s.persist(ev)
		}
	}()
}

// Stop drains the buffer and waits for the writer, bounded by ctx.
func (s *Sink) Stop(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.ch)
	s.mu.Unlock()

	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Record constructs the event and returns it immediately. The write happens
// in the background; a full buffer drops the event with a warning.
func (s *Sink) Record(eventType domain.EventType, gameID, sessionID string, payload map[string]any) domain.TelemetryEvent {
	ev := domain.TelemetryEvent{
		ID:        uuid.NewString(),
		EventType: eventType,
		GameID:    gameID,
		SessionID: sessionID,
		Payload:   clonePayload(payload),
		CreatedAt: s.now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		s.log.Warn("telemetry sink stopped, dropping event",
			logger.String("event_type", string(eventType)))
		return ev
	}

	select {
	case s.ch <- ev:
	default:
		s.log.Warn("telemetry buffer full, dropping event",
			logger.String("event_type", string(eventType)),
			logger.String("game_id", gameID))
	}

	return ev
}

// clonePayload detaches the event payload from the caller's map. The sink
// owns the event from here on; later mutations of the argument must not
// reach the queued or returned copy.
func clonePayload(payload map[string]any) map[string]any {
	out := make(map[string]any, len(payload))
	for k, v := range payload {
		switch nested := v.(type) {
		case map[string]any:
			out[k] = clonePayload(nested)
		case []any:
			items := make([]any, len(nested))
			copy(items, nested)
			out[k] = items
		default:
			out[k] = v
		}
	}
	return out
}

func (s *Sink) persist(ev domain.TelemetryEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	data, err := json.Marshal(ev)
	if err != nil {
		s.log.Warn("failed to encode telemetry event", logger.Error(err))
		return
	}
	if err := s.kv.Set(ctx, EventKey(ev.ID), data); err != nil {
		s.log.Warn("failed to persist telemetry event",
			logger.String("event_id", ev.ID),
			logger.Error(err))
		return
	}
	if err := s.kv.SetAdd(ctx, KeyAllEvents, ev.ID); err != nil {
		s.log.Warn("failed to index telemetry event",
			logger.String("event_id", ev.ID),
			logger.Error(err))
	}
}
