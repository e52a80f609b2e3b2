package services

import "github.com/SscSPs/finops_backoffice/internal/core/domain"

// SessionSvc is the single entry point for reading and writing per-user view state.
type SessionSvc interface {
	// Snapshot returns a copy of the user's session, creating an empty one on first use.
	Snapshot(userID string) domain.Session

	// Update mutates the user's session under lock and returns a copy of the result.
	// If fn returns an error nothing is stored.
	Update(userID string, fn func(s *domain.Session) error) (domain.Session, error)
}
