package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/finops_backoffice/internal/apperrors"
	"github.com/SscSPs/finops_backoffice/internal/core/domain"
	portssvc "github.com/SscSPs/finops_backoffice/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// RequirePermission gates a route group on one permission of the current user.
// It must run after AuthMiddleware.
func RequirePermission(authorizer portssvc.AccessAuthorizerSvc, perm domain.PermissionID) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		userID, ok := GetUserIDFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		err := authorizer.Authorize(c.Request.Context(), userID, perm)
		switch {
		case err == nil:
			c.Next()
		case errors.Is(err, apperrors.ErrForbidden):
			logger.Info("Permission denied", slog.String("permission", string(perm)))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Missing permission: " + string(perm)})
		case errors.Is(err, apperrors.ErrNotFound):
			// token for a user that no longer exists
			logger.Warn("Unknown user in token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unknown user"})
		default:
			logger.Error("Failed to resolve permissions", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve permissions"})
		}
	}
}
