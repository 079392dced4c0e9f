package lifecycle

import (
	"testing"

	"github.com/kixhq/kix/internal/domain"
	"github.com/kixhq/kix/internal/logger"
)

func TestRegistryOpenRecordsGameOpened(t *testing.T) {
	rec := &recorderStub{}
	r := NewRegistry(testConfig(), rec, logger.Nop())
	defer r.Close()

	s := r.Open("game-1", "sess-1")
	if s.ID() == "" {
		t.Fatal("Open() returned session without ID")
	}
	if got := rec.ofType(domain.EventGameOpened); len(got) != 1 {
		t.Errorf("game_opened events = %d, want 1", len(got))
	}
	if r.Count() != 1 {
		t.Errorf("Count() = %d, want 1", r.Count())
	}

	got, ok := r.Get(s.ID())
	if !ok || got != s {
		t.Errorf("Get(%q) = (%v, %v), want the opened session", s.ID(), got, ok)
	}
}

func TestRegistryLeaveEvicts(t *testing.T) {
	rec := &recorderStub{}
	r := NewRegistry(testConfig(), rec, logger.Nop())
	defer r.Close()

	s := r.Open("game-1", "sess-1")

	left, ok := r.Leave(s.ID())
	if !ok || left != s {
		t.Fatalf("Leave() = (%v, %v), want the opened session", left, ok)
	}
	if r.Count() != 0 {
		t.Errorf("Count() after leave = %d, want 0", r.Count())
	}
	if _, ok := r.Get(s.ID()); ok {
		t.Error("Get() after leave should miss")
	}
	if got := rec.ofType(domain.EventGameExit); len(got) != 1 {
		t.Errorf("game_exit events = %d, want 1", len(got))
	}

	if _, ok := r.Leave(s.ID()); ok {
		t.Error("second Leave() should miss")
	}
}

func TestRegistryCloseStopsSessions(t *testing.T) {
	rec := &recorderStub{}
	r := NewRegistry(testConfig(), rec, logger.Nop())

	r.Open("game-1", "sess-1")
	r.Open("game-2", "sess-2")
	r.Close()

	if r.Count() != 0 {
		t.Errorf("Count() after Close = %d, want 0", r.Count())
	}
	// Close is teardown, not leaving: no game_exit events.
	if got := rec.ofType(domain.EventGameExit); len(got) != 0 {
		t.Errorf("game_exit events after Close = %d, want 0", len(got))
	}
}
