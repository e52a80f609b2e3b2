package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/finops_backoffice/internal/core/domain"
	portssvc "github.com/SscSPs/finops_backoffice/internal/core/ports/services"
	"github.com/SscSPs/finops_backoffice/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Authorizer portssvc.AccessAuthorizerSvc
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// AuthorizeUser checks that the user holds perm.
// Without an authorizer every call is denied.
func (s *BaseService) AuthorizeUser(ctx context.Context, userID string, perm domain.PermissionID) error {
	if s.Authorizer == nil {
		s.LogDebug(ctx, "No authorizer configured, denying access",
			slog.String("user_id", userID),
			slog.String("permission", string(perm)))
		return errDenied(perm)
	}
	if err := s.Authorizer.Authorize(ctx, userID, perm); err != nil {
		s.LogInfo(ctx, "Permission denied",
			slog.String("user_id", userID),
			slog.String("permission", string(perm)),
			slog.String("error", err.Error()))
		return err
	}
	return nil
}
