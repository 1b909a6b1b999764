package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cit-transit/btts-backend/internal/models"
	"github.com/cit-transit/btts-backend/pkg/jwt"
)

func setupRouter(jwtService *jwt.Service, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handlers := []gin.HandlerFunc{AuthMiddleware(jwtService)}
	handlers = append(handlers, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		actor, _ := GetAuthContext(c)
		c.JSON(http.StatusOK, gin.H{"user_id": actor.UserID})
	})

	router.GET("/protected", handlers...)
	return router
}

func TestAuthMiddleware(t *testing.T) {
	jwtService := jwt.NewService("test-secret", time.Hour)

	t.Run("Missing Header", func(t *testing.T) {
		router := setupRouter(jwtService)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Malformed Header", func(t *testing.T) {
		router := setupRouter(jwtService)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Token abc")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Invalid Token", func(t *testing.T) {
		router := setupRouter(jwtService)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Valid Token Sets Context", func(t *testing.T) {
		router := setupRouter(jwtService)

		token, err := jwtService.GenerateAccessToken("user-123", "amal@example.com", []string{models.RolePassenger})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "user-123")
	})
}

func TestRequireRole(t *testing.T) {
	jwtService := jwt.NewService("test-secret", time.Hour)

	t.Run("Role Granted", func(t *testing.T) {
		router := setupRouter(jwtService, RequireRole(models.RoleTicketStaff, models.RoleTransitAdmin))

		token, err := jwtService.GenerateAccessToken("staff-1", "staff@example.com", []string{models.RoleTicketStaff})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Role Denied", func(t *testing.T) {
		router := setupRouter(jwtService, RequireRole(models.RoleTransitAdmin))

		token, err := jwtService.GenerateAccessToken("user-1", "amal@example.com", []string{models.RolePassenger})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
