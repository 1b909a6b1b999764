package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cit-transit/btts-backend/internal/services"
)

// TripHandler handles trip-related HTTP requests
type TripHandler struct {
	tripService *services.TripService
	seatService *services.SeatService
}

// NewTripHandler creates a new TripHandler
func NewTripHandler(tripService *services.TripService, seatService *services.SeatService) *TripHandler {
	return &TripHandler{
		tripService: tripService,
		seatService: seatService,
	}
}

// GetTrip returns a trip with its bus, route and remaining capacity
// GET /api/v1/trips/:id
func (h *TripHandler) GetTrip(c *gin.Context) {
	trip, err := h.tripService.GetByID(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, trip)
}

// GetAvailableSeats returns how many seats remain sellable on a trip
// GET /api/v1/trips/:id/available-seats
func (h *TripHandler) GetAvailableSeats(c *gin.Context) {
	tripID := c.Param("id")
	available, err := h.tripService.AvailableSeats(tripID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"trip_id":         tripID,
		"available_seats": available,
	})
}

// ListTripSeats returns the seat map for a trip
// GET /api/v1/trips/:id/seats
func (h *TripHandler) ListTripSeats(c *gin.Context) {
	seats, err := h.seatService.ListByTrip(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"seats": seats,
		"count": len(seats),
	})
}
