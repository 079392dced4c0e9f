package lifecycle

import (
	"sync"

	"github.com/google/uuid"

	"github.com/kixhq/kix/internal/domain"
	"github.com/kixhq/kix/internal/logger"
)

// Registry owns the active play sessions. Sessions are created on play,
// evicted on leave, and all closed on shutdown.
type Registry struct {
	mu       sync.Mutex
	cfg      Config
	rec      Recorder
	log      logger.Logger
	sessions map[string]*Session
}

func NewRegistry(cfg Config, rec Recorder, log logger.Logger) *Registry {
	return &Registry{
		cfg:      cfg,
		rec:      rec,
		log:      log,
		sessions: make(map[string]*Session),
	}
}

// Open starts a play session for the given game and viewer session, records
// game_opened and returns the new session.
func (r *Registry) Open(gameID, sessionID string) *Session {
	s := NewSession(uuid.NewString(), gameID, sessionID, r.cfg, r.rec, r.log)
	r.rec.Record(domain.EventGameOpened, gameID, sessionID, nil)

	r.mu.Lock()
	r.sessions[s.ID()] = s
	r.mu.Unlock()

	return s
}

// Get returns the session with that ID, if it is still active.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	return s, ok
}

// Leave tears the session down and evicts it. Returns false for unknown IDs.
func (r *Registry) Leave(id string) (*Session, bool) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	if ok {
		delete(r.sessions, id)
	}
	r.mu.Unlock()

	if !ok {
		return nil, false
	}
	s.Leave()
	return s, true
}

// Count returns the number of active sessions.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Close stops every active session's timers. Used on shutdown.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, s := range r.sessions {
		s.Close()
		delete(r.sessions, id)
	}
}
