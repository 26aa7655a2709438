package session

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"claude-vertex-chat/pkg/log"
)

const (
	DefaultExpiry      = time.Hour
	DefaultMaxSessions = 10000
)

// Config tunes a Store.
type Config struct {
	Expiry      time.Duration
	MaxSessions int
}

// Store keeps sessions in memory and forgets them after Expiry of inactivity.
type Store struct {
	l     log.Logger
	mu    sync.Mutex
	cache *expirable.LRU[string, *Session]
	now   func() time.Time
}

// NewStore creates an empty Store.
func NewStore(l log.Logger, cfg Config) *Store {
	if cfg.Expiry <= 0 {
		cfg.Expiry = DefaultExpiry
	}
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = DefaultMaxSessions
	}

	s := &Store{l: l, now: time.Now}
	s.cache = expirable.NewLRU(cfg.MaxSessions, func(id string, _ *Session) {
		l.Debugf(log.WithSessionID(context.Background(), id), "session.Store: evicted")
	}, cfg.Expiry)
	return s
}

// Get returns a live session and extends its lifetime.
func (s *Store) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.cache.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	// expirable.LRU does not refresh the deadline on Get.
	s.cache.Add(id, sess)
	return sess, nil
}

// GetOrCreate returns the session for id, creating a fresh one when it is unknown or
// expired. created reports whether a new session was made.
func (s *Store) GetOrCreate(id string) (sess *Session, created bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.cache.Get(id); ok {
		s.cache.Add(id, sess)
		return sess, false
	}

	sess = newSession(id, s.now())
	s.cache.Add(id, sess)
	return sess, true
}

// Delete forgets a session.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Remove(id)
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	return s.cache.Len()
}
