package services

import (
	"context"
	"time"
)

// TokenSvc issues access tokens for known users.
type TokenSvc interface {
	// IssueAccessToken signs a JWT for userID; unknown users yield apperrors.ErrUnknownUser.
	IssueAccessToken(ctx context.Context, userID string) (string, time.Time, error)
}
