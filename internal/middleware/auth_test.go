package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"article-api/internal/auth"
	"article-api/internal/domain"
	"article-api/internal/middleware"
)

func authTestRouter(t *testing.T, jwt *auth.JWTManager, requireAuth bool) (*gin.Engine, *domain.Principal) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var seen domain.Principal
	router := gin.New()
	router.Use(middleware.Authenticate(jwt))
	handlers := []gin.HandlerFunc{}
	if requireAuth {
		handlers = append(handlers, middleware.RequireAuth())
	}
	handlers = append(handlers, func(c *gin.Context) {
		seen = middleware.GetPrincipal(c)
		c.Status(http.StatusOK)
	})
	router.GET("/test", handlers...)
	return router, &seen
}

func newTestJWT() *auth.JWTManager {
	return auth.NewJWTManager(auth.JWTConfig{
		Secret:     "test-secret",
		Issuer:     "article-api-test",
		AccessTTL:  time.Minute,
		RefreshTTL: time.Hour,
	})
}

func TestAuthenticate_AnonymousWithoutHeader(t *testing.T) {
	router, seen := authTestRouter(t, newTestJWT(), false)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, seen.Authenticated)
}

func TestAuthenticate_ValidToken(t *testing.T) {
	jwt := newTestJWT()
	router, seen := authTestRouter(t, jwt, false)

	token, err := jwt.IssueAccessToken(&domain.User{ID: "u1", Username: "alice", Staff: true})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, seen.Authenticated)
	assert.Equal(t, "u1", seen.ID)
	assert.Equal(t, "alice", seen.Username)
	assert.True(t, seen.Staff)
}

func TestAuthenticate_RejectsInvalidToken(t *testing.T) {
	router, _ := authTestRouter(t, newTestJWT(), false)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticate_RejectsMalformedHeader(t *testing.T) {
	router, _ := authTestRouter(t, newTestJWT(), false)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_RejectsAnonymous(t *testing.T) {
	router, _ := authTestRouter(t, newTestJWT(), true)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_AllowsAuthenticated(t *testing.T) {
	jwt := newTestJWT()
	router, _ := authTestRouter(t, jwt, true)

	token, err := jwt.IssueAccessToken(&domain.User{ID: "u1", Username: "alice"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
