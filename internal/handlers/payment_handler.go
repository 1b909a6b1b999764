package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cit-transit/btts-backend/internal/models"
	"github.com/cit-transit/btts-backend/internal/services"
)

// PaymentHandler handles payment-related HTTP requests
type PaymentHandler struct {
	paymentService *services.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// UpdateStatus moves a payment through its approval state machine and
// reports the seat write it projected, if any
// PATCH /api/v1/payments/:id/status
func (h *PaymentHandler) UpdateStatus(c *gin.Context) {
	actor, ok := requireAuth(c)
	if !ok {
		return
	}

	var req models.UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation_error",
			"message": err.Error(),
		})
		return
	}

	result, err := h.paymentService.UpdateStatus(actor, c.Param("id"), req.Status)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CreatePayment records an additional payment against a ticket
// POST /api/v1/payments
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	actor, ok := requireAuth(c)
	if !ok {
		return
	}

	var req models.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation_error",
			"message": err.Error(),
		})
		return
	}

	payment, err := h.paymentService.Create(actor, &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, payment)
}

// GetPayment returns a single payment
// GET /api/v1/payments/:id
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	actor, ok := requireAuth(c)
	if !ok {
		return
	}

	payment, err := h.paymentService.GetByID(actor, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, payment)
}

// ListTicketPayments returns a ticket's payment history
// GET /api/v1/tickets/:id/payments
func (h *PaymentHandler) ListTicketPayments(c *gin.Context) {
	actor, ok := requireAuth(c)
	if !ok {
		return
	}

	payments, err := h.paymentService.ListByTicket(actor, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payments": payments,
		"count":    len(payments),
	})
}

// DeletePayment removes a payment record
// DELETE /api/v1/payments/:id
func (h *PaymentHandler) DeletePayment(c *gin.Context) {
	actor, ok := requireAuth(c)
	if !ok {
		return
	}

	if err := h.paymentService.Delete(actor, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment deleted successfully",
	})
}
