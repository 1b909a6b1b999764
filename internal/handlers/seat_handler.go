package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cit-transit/btts-backend/internal/models"
	"github.com/cit-transit/btts-backend/internal/services"
)

// SeatHandler handles seat-related HTTP requests
type SeatHandler struct {
	seatService *services.SeatService
}

// NewSeatHandler creates a new SeatHandler
func NewSeatHandler(seatService *services.SeatService) *SeatHandler {
	return &SeatHandler{seatService: seatService}
}

// Reposition moves a seat to a new position or trip
// PUT /api/v1/seats/:id
func (h *SeatHandler) Reposition(c *gin.Context) {
	actor, ok := requireAuth(c)
	if !ok {
		return
	}

	var req models.RepositionSeatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation_error",
			"message": err.Error(),
		})
		return
	}

	seat, err := h.seatService.Reposition(actor, c.Param("id"), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, seat)
}

// UpdateStatus sets a seat's status directly (staff override)
// PATCH /api/v1/seats/:id/status
func (h *SeatHandler) UpdateStatus(c *gin.Context) {
	actor, ok := requireAuth(c)
	if !ok {
		return
	}

	var req models.UpdateSeatStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation_error",
			"message": err.Error(),
		})
		return
	}

	seat, err := h.seatService.UpdateStatus(actor, c.Param("id"), req.Status)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, seat)
}
