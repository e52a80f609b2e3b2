package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/finops_backoffice/internal/core/domain"
	portssvc "github.com/SscSPs/finops_backoffice/internal/core/ports/services"
	"github.com/SscSPs/finops_backoffice/internal/dto"
	"github.com/SscSPs/finops_backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

// sessionHandler exposes the caller's shared view state (global search, selected order).
type sessionHandler struct {
	sessions portssvc.SessionSvc
}

func newSessionHandler(ss portssvc.SessionSvc) *sessionHandler {
	return &sessionHandler{sessions: ss}
}

func registerSessionRoutes(rg *gin.RouterGroup, sessions portssvc.SessionSvc) {
	h := newSessionHandler(sessions)

	session := rg.Group("/session")
	{
		session.GET("", h.getSession)
		session.PUT("", h.updateSession)
	}
}

// getSession godoc
// @Summary Get the caller's session
// @Description Returns the global search query, selected order, staged actions and trigger toggles
// @Tags session
// @Produce json
// @Success 200 {object} dto.SessionResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /session [get]
func (h *sessionHandler) getSession(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.ToSessionResponse(h.sessions.Snapshot(userID)))
}

// updateSession godoc
// @Summary Update the caller's session
// @Description Sets the global search query and/or the selected order. Selecting a different order discards staged actions.
// @Tags session
// @Accept json
// @Produce json
// @Param session body dto.UpdateSessionRequest true "Fields to change"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /session [put]
func (h *sessionHandler) updateSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind session update", slog.String("error", err.Error()))
		respondBindError(c, err)
		return
	}

	sess, err := h.sessions.Update(userID, func(s *domain.Session) error {
		if req.SearchQuery != nil {
			s.SearchQuery = strings.TrimSpace(*req.SearchQuery)
		}
		if req.SelectedOrderID != nil {
			s.SelectOrder(*req.SelectedOrderID)
		}
		return nil
	})
	if err != nil {
		respondError(c, err, "Failed to update session")
		return
	}
	c.JSON(http.StatusOK, dto.ToSessionResponse(sess))
}
