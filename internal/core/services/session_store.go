package services

import (
	"sync"

	"github.com/SscSPs/finops_backoffice/internal/core/domain"
	portssvc "github.com/SscSPs/finops_backoffice/internal/core/ports/services"
)

// SessionStore keeps the per-user view state: search query, selected order,
// staged actions and trigger toggles. It lives for the process lifetime.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
}

// NewSessionStore creates an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*domain.Session)}
}

var _ portssvc.SessionSvc = (*SessionStore)(nil)

func (s *SessionStore) get(userID string) *domain.Session {
	sess, ok := s.sessions[userID]
	if !ok {
		fresh := domain.NewSession(userID)
		sess = &fresh
		s.sessions[userID] = sess
	}
	return sess
}

// Snapshot returns a copy of the user's session.
func (s *SessionStore) Snapshot(userID string) domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(userID).Clone()
}

// Update applies fn to a working copy and stores it only when fn succeeds.
func (s *SessionStore) Update(userID string, fn func(sess *domain.Session) error) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.get(userID)
	working := current.Clone()
	if err := fn(&working); err != nil {
		return current.Clone(), err
	}
	*current = working
	return working.Clone(), nil
}
