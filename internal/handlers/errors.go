package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/finops_backoffice/internal/apperrors"
	"github.com/SscSPs/finops_backoffice/internal/middleware"
	"github.com/SscSPs/finops_backoffice/internal/utils/validation"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the error body of every endpoint.
type ErrorResponse struct {
	Error  string                `json:"error"`
	Fields apperrors.FieldErrors `json:"fields,omitempty"`
}

// respondError maps service errors onto HTTP statuses. failMsg is what a 500 reports.
func respondError(c *gin.Context, err error, failMsg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var verr *apperrors.ValidationError
	switch {
	case errors.As(err, &verr):
		logger.Warn("Validation failed", slog.Any("fields", verr.Fields))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: apperrors.ErrValidation.Error(), Fields: verr.Fields})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Invalid request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Info("Forbidden", slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Duplicate resource", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	default:
		logger.Error(failMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: failMsg})
	}
}

// respondBindError reports a failed ShouldBind* call with per-field messages where possible.
func respondBindError(c *gin.Context, err error) {
	respondError(c, validation.ToValidationError(err), "Invalid request")
}

// currentUserID reads the authenticated user, writing a 401 when absent.
func currentUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return "", false
	}
	return userID, true
}
