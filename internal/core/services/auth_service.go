package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	portssvc "github.com/SscSPs/finops_backoffice/internal/core/ports/services"
	"github.com/SscSPs/finops_backoffice/internal/platform/config"
	"github.com/SscSPs/finops_backoffice/internal/utils"
)

// TokenService issues JWT access tokens. The subject claim is the user id
// the auth middleware later places in the request context.
type TokenService struct {
	BaseService
	cfg   *config.Config
	users portssvc.AccessReaderSvc
}

// NewTokenService creates a new TokenService.
func NewTokenService(cfg *config.Config, users portssvc.AccessReaderSvc) *TokenService {
	return &TokenService{cfg: cfg, users: users}
}

var _ portssvc.TokenSvc = (*TokenService)(nil)

// IssueAccessToken creates a new JWT access token for an existing user.
func (s *TokenService) IssueAccessToken(ctx context.Context, userID string) (string, time.Time, error) {
	// resolving permissions doubles as the existence check
	if _, err := s.users.EffectivePermissions(ctx, userID); err != nil {
		return "", time.Time{}, err
	}

	expiryTime := time.Now().Add(s.cfg.JWTExpiryDuration)
	accessToken, err := utils.GenerateJWT(userID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate access token", slog.String("user_id", userID))
		return "", time.Time{}, fmt.Errorf("failed to generate access token: %w", err)
	}
	s.LogInfo(ctx, "Access token issued", slog.String("user_id", userID))
	return accessToken, expiryTime, nil
}
