package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/finops_backoffice/internal/apperrors"
	"github.com/SscSPs/finops_backoffice/internal/core/domain"
	"github.com/SscSPs/finops_backoffice/internal/middleware"
	"github.com/SscSPs/finops_backoffice/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-test-secret"

type stubAuthorizer map[string]error

func (s stubAuthorizer) Authorize(ctx context.Context, userID string, perm domain.PermissionID) error {
	return s[userID]
}

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	chain := append(handlers, func(c *gin.Context) {
		userID, _ := middleware.GetUserIDFromContext(c)
		c.String(http.StatusOK, userID)
	})
	r.GET("/probe", chain...)
	return r
}

func serve(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, "/probe", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func bearer(t *testing.T, userID, secret string, ttl time.Duration) string {
	t.Helper()
	token, err := utils.GenerateJWT(userID, secret, ttl, "test")
	require.NoError(t, err)
	return "Bearer " + token
}

func TestAuthMiddleware(t *testing.T) {
	r := newEngine(middleware.AuthMiddleware(testSecret))

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{name: "missing header", header: "", status: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", status: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer abc.def.ghi", status: http.StatusUnauthorized},
		{name: "wrong secret", header: bearer(t, "u-ops", "other", time.Hour), status: http.StatusUnauthorized},
		{name: "expired", header: bearer(t, "u-ops", testSecret, -time.Minute), status: http.StatusUnauthorized},
		{name: "valid", header: bearer(t, "u-ops", testSecret, time.Hour), status: http.StatusOK, body: "u-ops"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(r, tt.header)
			assert.Equal(t, tt.status, w.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, w.Body.String())
			}
		})
	}
}

func TestRequirePermission(t *testing.T) {
	authz := stubAuthorizer{
		"u-readonly": apperrors.ErrForbidden,
		"ghost":      apperrors.ErrUnknownUser,
	}
	r := newEngine(middleware.AuthMiddleware(testSecret), middleware.RequirePermission(authz, domain.PermAccessInvoiceReview))

	assert.Equal(t, http.StatusOK, serve(r, bearer(t, "u-finance", testSecret, time.Hour)).Code)
	assert.Equal(t, http.StatusForbidden, serve(r, bearer(t, "u-readonly", testSecret, time.Hour)).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, bearer(t, "ghost", testSecret, time.Hour)).Code)
}

func TestRateLimit(t *testing.T) {
	lim, err := middleware.NewRateLimiter("2-M")
	require.NoError(t, err)
	r := newEngine(middleware.AuthMiddleware(testSecret), middleware.RateLimit(lim))

	finance := bearer(t, "u-finance", testSecret, time.Hour)
	assert.Equal(t, http.StatusOK, serve(r, finance).Code)
	w := serve(r, finance)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, http.StatusTooManyRequests, serve(r, finance).Code)

	// keyed per user
	assert.Equal(t, http.StatusOK, serve(r, bearer(t, "u-ops", testSecret, time.Hour)).Code)
}

func TestNewRateLimiter_InvalidFormat(t *testing.T) {
	_, err := middleware.NewRateLimiter("lots")
	assert.Error(t, err)
}

func TestStructuredLoggingMiddleware_RequestID(t *testing.T) {
	r := newEngine(middleware.StructuredLoggingMiddleware(middleware.GetLoggerFromCtx(context.Background())))

	w := serve(r, "")
	_, err := uuid.Parse(w.Header().Get(middleware.RequestIDHeader))
	assert.NoError(t, err)

	id := uuid.NewString()
	req, _ := http.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set(middleware.RequestIDHeader, id)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, id, w.Header().Get(middleware.RequestIDHeader))

	req, _ = http.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set(middleware.RequestIDHeader, "not a uuid")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEqual(t, "not a uuid", w.Header().Get(middleware.RequestIDHeader))
}
