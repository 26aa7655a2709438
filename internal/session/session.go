package session

import (
	"sync"
	"time"
)

// Session couples a State with the locks that guard it.
//
// turn is held for the whole of a mutating request, including a model stream, so a
// second request on the same session fails fast instead of interleaving. mu guards
// the State itself so read-only views stay available while a turn is running.
type Session struct {
	ID        string
	CreatedAt time.Time

	turn  sync.Mutex
	mu    sync.RWMutex
	state State
}

func newSession(id string, now time.Time) *Session {
	s := &Session{ID: id, CreatedAt: now}
	s.state.Initialize()
	return s
}

// BeginTurn claims the session for one mutating request. The returned func releases it.
func (s *Session) BeginTurn() (func(), error) {
	if !s.turn.TryLock() {
		return nil, ErrTurnInProgress
	}
	return s.turn.Unlock, nil
}

// Update runs fn with exclusive access to the state.
func (s *Session) Update(fn func(st *State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.state)
}

// Snapshot returns a deep copy of the current state.
func (s *Session) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Snapshot()
}
