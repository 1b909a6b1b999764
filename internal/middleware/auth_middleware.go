package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cit-transit/btts-backend/internal/models"
	"github.com/cit-transit/btts-backend/pkg/jwt"
)

// AuthContextKey is the key used to store the principal in Gin context
const AuthContextKey = "auth_context"

// AuthMiddleware creates a middleware that validates JWT tokens and
// builds the AuthContext value passed explicitly into services
func AuthMiddleware(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "Authorization header is required",
			})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "Invalid authorization header format. Expected: Bearer <token>",
			})
			c.Abort()
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		claims, err := jwtService.ValidateAccessToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "invalid_token",
				"message": "Invalid or expired access token",
			})
			c.Abort()
			return
		}

		c.Set(AuthContextKey, models.AuthContext{
			UserID: claims.UserID,
			Email:  claims.Email,
			Roles:  claims.Roles,
		})

		c.Next()
	}
}

// RequireRole creates a middleware that checks if the principal has any
// of the given roles
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, exists := GetAuthContext(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "Auth context not found. Auth middleware may not be applied.",
			})
			c.Abort()
			return
		}

		for _, role := range roles {
			if actor.HasRole(role) {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{
			"error":   "forbidden",
			"message": "Insufficient permissions for this operation",
		})
		c.Abort()
	}
}

// GetAuthContext retrieves the principal from Gin context
func GetAuthContext(c *gin.Context) (models.AuthContext, bool) {
	value, exists := c.Get(AuthContextKey)
	if !exists {
		return models.AuthContext{}, false
	}
	actor, ok := value.(models.AuthContext)
	return actor, ok
}
