package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ozzus/skip-hire/internal/domain/booking"
	derr "github.com/ozzus/skip-hire/internal/domain/errors"
	"github.com/ozzus/skip-hire/internal/metrics"
)

// SessionStore keeps sessions in process memory. Any read or write marks a
// session as seen; sessions not seen for longer than the TTL are treated as
// gone and removed by Sweep.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*storedSession
	ttl      time.Duration
	max      int
	now      func() time.Time
}

type storedSession struct {
	session  *booking.Session
	lastSeen time.Time
}

// NewSessionStore builds a store. A ttl <= 0 keeps sessions forever and a
// maxSessions <= 0 means no limit.
func NewSessionStore(ttl time.Duration, maxSessions int) *SessionStore {
	return &SessionStore{
		sessions: make(map[uuid.UUID]*storedSession),
		ttl:      ttl,
		max:      maxSessions,
		now:      time.Now,
	}
}

func (s *SessionStore) Create(_ context.Context, session *booking.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.max > 0 && len(s.sessions) >= s.max {
		s.sweepLocked()
		if len(s.sessions) >= s.max {
			return derr.ErrSessionLimitReached
		}
	}

	s.sessions[session.ID] = &storedSession{session: session.Clone(), lastSeen: s.now()}
	metrics.SessionsActive.Set(float64(len(s.sessions)))
	return nil
}

func (s *SessionStore) Get(_ context.Context, id uuid.UUID) (*booking.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.lookup(id)
	if !ok {
		return nil, derr.ErrSessionNotFound
	}
	stored.lastSeen = s.now()
	return stored.session.Clone(), nil
}

func (s *SessionStore) Update(ctx context.Context, id uuid.UUID, fn func(*booking.Session) error) (*booking.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.lookup(id)
	if !ok {
		return nil, derr.ErrSessionNotFound
	}
	stored.lastSeen = s.now()

	draft := stored.session.Clone()
	if err := fn(draft); err != nil {
		return nil, err
	}
	stored.session = draft
	return draft.Clone(), nil
}

func (s *SessionStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return derr.ErrSessionNotFound
	}
	delete(s.sessions, id)
	metrics.SessionsActive.Set(float64(len(s.sessions)))
	return nil
}

// Sweep drops expired sessions and reports how many were removed.
func (s *SessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked()
}

func (s *SessionStore) sweepLocked() int {
	removed := 0
	for id, stored := range s.sessions {
		if s.expired(stored) {
			delete(s.sessions, id)
			removed++
		}
	}
	metrics.SessionsActive.Set(float64(len(s.sessions)))
	return removed
}

func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *SessionStore) lookup(id uuid.UUID) (*storedSession, bool) {
	stored, ok := s.sessions[id]
	if !ok || s.expired(stored) {
		return nil, false
	}
	return stored, true
}

func (s *SessionStore) expired(stored *storedSession) bool {
	return s.ttl > 0 && s.now().Sub(stored.lastSeen) > s.ttl
}
