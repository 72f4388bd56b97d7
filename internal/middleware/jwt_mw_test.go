package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"campus_auth/internal/model"
	"campus_auth/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGateRouter(t *testing.T, jwtUtil *utils.JWTUtil) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", JWTAuthMiddleware(jwtUtil), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetString(AuthUserKey),
			"role":    c.GetString(AuthRoleKey),
		})
	})
	return router
}

func TestJWTAuthMiddleware_ValidToken(t *testing.T) {
	jwtUtil, err := utils.NewJWTUtil("secret", time.Hour)
	require.NoError(t, err)
	router := newGateRouter(t, jwtUtil)

	token, err := jwtUtil.GenerateToken("user-1", model.RoleStudent)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")
	assert.Contains(t, w.Body.String(), model.RoleStudent)
}

func TestJWTAuthMiddleware_MissingHeader(t *testing.T) {
	jwtUtil, _ := utils.NewJWTUtil("secret", time.Hour)
	router := newGateRouter(t, jwtUtil)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthMiddleware_MalformedHeader(t *testing.T) {
	jwtUtil, _ := utils.NewJWTUtil("secret", time.Hour)
	router := newGateRouter(t, jwtUtil)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthMiddleware_ExpiredToken(t *testing.T) {
	expiredIssuer, _ := utils.NewJWTUtil("secret", -time.Hour)
	jwtUtil, _ := utils.NewJWTUtil("secret", time.Hour)
	router := newGateRouter(t, jwtUtil)

	token, err := expiredIssuer.GenerateToken("user-1", model.RoleStudent)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
