package services

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/cit-transit/btts-backend/internal/apperrors"
	"github.com/cit-transit/btts-backend/internal/database"
	"github.com/cit-transit/btts-backend/internal/models"
)

// PaymentService owns the payment approval state machine and its
// projection onto the bound seat. A status transition and the seat
// write it implies commit in one transaction with both rows locked, so
// a concurrent reposition cannot lose the status bit or the position
// bit.
type PaymentService struct {
	db          database.DB
	paymentRepo *database.PaymentRepository
	ticketRepo  *database.TicketRepository
	seatRepo    *database.SeatRepository
	logger      *logrus.Logger
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	db database.DB,
	paymentRepo *database.PaymentRepository,
	ticketRepo *database.TicketRepository,
	seatRepo *database.SeatRepository,
	logger *logrus.Logger,
) *PaymentService {
	return &PaymentService{
		db:          db,
		paymentRepo: paymentRepo,
		ticketRepo:  ticketRepo,
		seatRepo:    seatRepo,
		logger:      logger,
	}
}

// seatStatusFor maps an accepted payment status onto the seat status it
// projects
func seatStatusFor(status models.PaymentStatus) models.SeatStatus {
	switch status {
	case models.PaymentStatusApproved:
		return models.SeatStatusBooked
	case models.PaymentStatusRejected:
		return models.SeatStatusOpen
	default:
		return models.SeatStatusReserved
	}
}

// UpdateStatus moves a payment to a new status and projects the result
// onto the bound seat. approved→pending is rejected; a transition to
// the current status is a no-op returning the unchanged payment with no
// seat write.
func (s *PaymentService) UpdateStatus(actor models.AuthContext, paymentID string, newStatus models.PaymentStatus) (*models.PaymentStatusUpdateResult, error) {
	if !newStatus.Valid() {
		return nil, apperrors.BadRequestError{Msg: fmt.Sprintf("invalid payment status: %s", newStatus)}
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	payment, err := s.paymentRepo.GetByIDForUpdateTx(tx, paymentID)
	if err != nil {
		return nil, err
	}

	if payment.Status == models.PaymentStatusApproved && newStatus == models.PaymentStatusPending {
		return nil, apperrors.BadRequestError{Msg: "cannot change payment status from approved back to pending"}
	}

	if payment.Status == newStatus {
		// Idempotent re-apply: nothing written, nothing projected.
		return &models.PaymentStatusUpdateResult{Payment: payment}, nil
	}

	updated, err := s.paymentRepo.UpdateStatusTx(tx, payment.ID, newStatus)
	if err != nil {
		return nil, err
	}

	ticket, err := s.ticketRepo.GetByIDForUpdateTx(tx, payment.TicketID)
	if err != nil {
		return nil, err
	}

	seat, err := s.seatRepo.GetByIDForUpdateTx(tx, ticket.SeatID)
	if err != nil {
		return nil, err
	}

	result := &models.PaymentStatusUpdateResult{Payment: updated}
	desired := seatStatusFor(newStatus)
	if desired != seat.Status {
		projected, err := s.seatRepo.UpdateStatusTx(tx, seat.ID, desired)
		if err != nil {
			return nil, err
		}
		result.Seat = projected
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"payment_id":  updated.ID,
		"ticket_id":   updated.TicketID,
		"from_status": payment.Status,
		"to_status":   updated.Status,
		"seat_id":     ticket.SeatID,
		"seat_writes": result.Seat != nil,
		"user_id":     actor.UserID,
	}).Info("Payment status updated")

	return result, nil
}

// Create records an additional payment against an existing ticket, for
// example a re-payment after a rejection
func (s *PaymentService) Create(actor models.AuthContext, req *models.CreatePaymentRequest) (*models.Payment, error) {
	ticket, err := s.ticketRepo.GetByID(req.TicketID)
	if err != nil {
		return nil, err
	}

	receipt := req.OnlineReceipt
	if req.Type == models.PaymentTypeOnline && len(receipt) == 0 {
		return nil, apperrors.BadRequestError{Msg: "online receipt is required for online payments"}
	}
	if req.Type == models.PaymentTypeCash {
		// No reason to store a receipt blob for a counter payment.
		receipt = nil
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	payment := &models.Payment{
		TicketID:      ticket.ID,
		Amount:        req.Amount,
		Status:        models.PaymentStatusPending,
		Type:          req.Type,
		Purpose:       req.Purpose,
		OnlineReceipt: receipt,
	}
	if err := s.paymentRepo.CreateTx(tx, payment); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"payment_id": payment.ID,
		"ticket_id":  ticket.ID,
		"amount":     payment.Amount,
		"type":       payment.Type,
		"purpose":    payment.Purpose,
		"user_id":    actor.UserID,
	}).Info("Payment recorded")

	return payment, nil
}

// GetByID returns a payment. Passengers can only read payments on their
// own tickets.
func (s *PaymentService) GetByID(actor models.AuthContext, paymentID string) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetByID(paymentID)
	if err != nil {
		return nil, err
	}

	if actor.IsPassengerOnly() {
		ticket, err := s.ticketRepo.GetByID(payment.TicketID)
		if err != nil {
			return nil, err
		}
		if ticket.UserID != actor.UserID {
			return nil, apperrors.ForbiddenError{Msg: "you can only view your own payments"}
		}
	}

	return payment, nil
}

// ListByTicket returns a ticket's payment history with the same
// ownership rule
func (s *PaymentService) ListByTicket(actor models.AuthContext, ticketID string) ([]models.Payment, error) {
	ticket, err := s.ticketRepo.GetByID(ticketID)
	if err != nil {
		return nil, err
	}
	if actor.IsPassengerOnly() && ticket.UserID != actor.UserID {
		return nil, apperrors.ForbiddenError{Msg: "you can only view payments for your own tickets"}
	}
	return s.paymentRepo.GetByTicketID(ticketID)
}

// Delete removes a payment (administrative override; routed staff-only)
func (s *PaymentService) Delete(actor models.AuthContext, paymentID string) error {
	if err := s.paymentRepo.Delete(paymentID); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"payment_id": paymentID,
		"user_id":    actor.UserID,
	}).Warn("Payment deleted")

	return nil
}
