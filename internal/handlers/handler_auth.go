package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/ulule/limiter/v3"
	limitergin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/SscSPs/finops_backoffice/internal/core/ports/services"
	"github.com/SscSPs/finops_backoffice/internal/dto"
	"github.com/SscSPs/finops_backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

// AuthHandler issues access tokens for the seeded back-office users.
type AuthHandler struct {
	tokenService portssvc.TokenSvc
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(ts portssvc.TokenSvc) *AuthHandler {
	return &AuthHandler{tokenService: ts}
}

// registerAuthRoutes sets up the token route. Callers skip it in production.
func registerAuthRoutes(r *gin.Engine, tokenService portssvc.TokenSvc) {
	h := NewAuthHandler(tokenService)

	// 10 tokens per minute per client IP
	rate, _ := limiter.NewRateFromFormatted("10-M")
	ipLimiter := limiter.New(memory.NewStore(), rate)
	limitMiddleware := limitergin.NewMiddleware(ipLimiter)

	auth := r.Group("/auth")
	{
		auth.POST("/token", limitMiddleware, h.IssueToken)
	}
}

// IssueToken godoc
// @Summary Issue an access token
// @Description Issues a JWT for an existing back-office user. Only available outside production.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.TokenRequest true "User to sign in as"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Unknown user"
// @Failure 500 {object} ErrorResponse
// @Router /auth/token [post]
func (h *AuthHandler) IssueToken(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind token request", slog.String("error", err.Error()))
		respondBindError(c, err)
		return
	}

	token, expiresAt, err := h.tokenService.IssueAccessToken(c.Request.Context(), req.UserID)
	if err != nil {
		respondError(c, err, "Failed to issue token")
		return
	}

	logger.Info("Access token issued", slog.String("user_id", req.UserID))
	c.JSON(http.StatusOK, dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(time.Until(expiresAt).Seconds()),
	})
}
