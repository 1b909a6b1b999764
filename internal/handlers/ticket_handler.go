package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cit-transit/btts-backend/internal/models"
	"github.com/cit-transit/btts-backend/internal/services"
)

// TicketHandler handles ticket-related HTTP requests
type TicketHandler struct {
	bookingService *services.BookingService
	ticketService  *services.TicketService
}

// NewTicketHandler creates a new TicketHandler
func NewTicketHandler(bookingService *services.BookingService, ticketService *services.TicketService) *TicketHandler {
	return &TicketHandler{
		bookingService: bookingService,
		ticketService:  ticketService,
	}
}

// BookCash books a ticket paid at the counter
// POST /api/v1/tickets/cash
func (h *TicketHandler) BookCash(c *gin.Context) {
	actor, ok := requireAuth(c)
	if !ok {
		return
	}

	var req models.BookTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation_error",
			"message": err.Error(),
		})
		return
	}

	ticket, err := h.bookingService.BookForCash(actor, &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ticket)
}

// BookOnline books a ticket paid through the online channel
// POST /api/v1/tickets/online
func (h *TicketHandler) BookOnline(c *gin.Context) {
	actor, ok := requireAuth(c)
	if !ok {
		return
	}

	var req models.BookTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation_error",
			"message": err.Error(),
		})
		return
	}

	ticket, err := h.bookingService.BookForOnline(actor, &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ticket)
}

// GetTicket returns a single ticket with its seat, trip and payments
// GET /api/v1/tickets/:id
func (h *TicketHandler) GetTicket(c *gin.Context) {
	actor, ok := requireAuth(c)
	if !ok {
		return
	}

	ticket, err := h.ticketService.GetByID(actor, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ticket)
}

// ListTickets returns all tickets (staff/admin only, enforced at the route)
// GET /api/v1/tickets
func (h *TicketHandler) ListTickets(c *gin.Context) {
	tickets, err := h.ticketService.GetAll()
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tickets": tickets,
		"count":   len(tickets),
	})
}

// ListUserTickets returns a passenger's tickets
// GET /api/v1/users/:id/tickets
func (h *TicketHandler) ListUserTickets(c *gin.Context) {
	actor, ok := requireAuth(c)
	if !ok {
		return
	}

	tickets, err := h.ticketService.ListByUser(actor, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tickets": tickets,
		"count":   len(tickets),
	})
}

// ListMyTickets returns the authenticated user's tickets
// GET /api/v1/me/tickets
func (h *TicketHandler) ListMyTickets(c *gin.Context) {
	actor, ok := requireAuth(c)
	if !ok {
		return
	}

	tickets, err := h.ticketService.ListForCurrentUser(actor)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tickets": tickets,
		"count":   len(tickets),
	})
}

// UpdateTicket updates ticket fields; seat position changes ride the
// same repositioning rules as the seat endpoint
// PUT /api/v1/tickets/:id
func (h *TicketHandler) UpdateTicket(c *gin.Context) {
	actor, ok := requireAuth(c)
	if !ok {
		return
	}

	var req models.UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation_error",
			"message": err.Error(),
		})
		return
	}

	ticket, err := h.ticketService.Update(actor, c.Param("id"), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ticket)
}

// DeleteTicket removes a ticket and frees its seat
// DELETE /api/v1/tickets/:id
func (h *TicketHandler) DeleteTicket(c *gin.Context) {
	actor, ok := requireAuth(c)
	if !ok {
		return
	}

	if err := h.ticketService.Delete(actor, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Ticket deleted successfully",
	})
}
