package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cit-transit/btts-backend/internal/apperrors"
	"github.com/cit-transit/btts-backend/internal/middleware"
	"github.com/cit-transit/btts-backend/internal/models"
)

// writeError translates a service error into the HTTP status and body
// it maps to. Unknown errors become a 500 with a generic message so
// internals never leak to clients.
func writeError(c *gin.Context, err error) {
	switch {
	case apperrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "not_found",
			"message": err.Error(),
		})
	case apperrors.IsConflict(err):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "conflict",
			"message": err.Error(),
		})
	case apperrors.IsBadRequest(err):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "bad_request",
			"message": err.Error(),
		})
	case apperrors.IsForbidden(err):
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "forbidden",
			"message": err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Something went wrong. Please try again later.",
		})
	}
}

// requireAuth pulls the principal set by the auth middleware, writing a
// 401 when it is missing
func requireAuth(c *gin.Context) (models.AuthContext, bool) {
	actor, exists := middleware.GetAuthContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "unauthorized",
			"message": "User not authenticated",
		})
		return models.AuthContext{}, false
	}
	return actor, true
}
