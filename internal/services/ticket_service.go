package services

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/cit-transit/btts-backend/internal/apperrors"
	"github.com/cit-transit/btts-backend/internal/database"
	"github.com/cit-transit/btts-backend/internal/models"
)

// TicketService owns the ticket lifecycle after booking: reads, field
// updates, seat reassignment and the delete cascade. Deleting a ticket
// also deletes its seat row, so the position becomes claimable again
// rather than being recycled in place.
type TicketService struct {
	db          database.DB
	ticketRepo  *database.TicketRepository
	seatRepo    *database.SeatRepository
	paymentRepo *database.PaymentRepository
	userRepo    *database.UserRepository
	seatService *SeatService
	tripService *TripService
	logger      *logrus.Logger
}

// NewTicketService creates a new TicketService
func NewTicketService(
	db database.DB,
	ticketRepo *database.TicketRepository,
	seatRepo *database.SeatRepository,
	paymentRepo *database.PaymentRepository,
	userRepo *database.UserRepository,
	seatService *SeatService,
	tripService *TripService,
	logger *logrus.Logger,
) *TicketService {
	return &TicketService{
		db:          db,
		ticketRepo:  ticketRepo,
		seatRepo:    seatRepo,
		paymentRepo: paymentRepo,
		userRepo:    userRepo,
		seatService: seatService,
		tripService: tripService,
		logger:      logger,
	}
}

// GetByID returns a single ticket. Passengers can only read their own.
func (s *TicketService) GetByID(actor models.AuthContext, ticketID string) (*models.TicketResponse, error) {
	ticket, err := s.ticketRepo.GetByID(ticketID)
	if err != nil {
		return nil, err
	}
	if actor.IsPassengerOnly() && ticket.UserID != actor.UserID {
		return nil, apperrors.ForbiddenError{Msg: "you can only view your own tickets"}
	}
	return s.BuildTicketResponse(ticket)
}

// GetAll returns every ticket (staff/admin listing)
func (s *TicketService) GetAll() ([]models.TicketResponse, error) {
	tickets, err := s.ticketRepo.GetAll()
	if err != nil {
		return nil, err
	}
	return s.buildTicketResponses(tickets)
}

// ListByUser returns a user's tickets. Passengers can only list their own.
func (s *TicketService) ListByUser(actor models.AuthContext, userID string) ([]models.TicketResponse, error) {
	if actor.IsPassengerOnly() && userID != actor.UserID {
		return nil, apperrors.ForbiddenError{Msg: "you can only view your own tickets"}
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NotFoundError{Resource: "user", ID: userID}
	}

	tickets, err := s.ticketRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	return s.buildTicketResponses(tickets)
}

// ListForCurrentUser returns the authenticated user's tickets
func (s *TicketService) ListForCurrentUser(actor models.AuthContext) ([]models.TicketResponse, error) {
	tickets, err := s.ticketRepo.GetByUserID(actor.UserID)
	if err != nil {
		return nil, err
	}
	return s.buildTicketResponses(tickets)
}

// Update applies optional ticket mutations. Row, column or trip changes
// delegate to the seat inventory's reposition inside the same
// transaction, so the uniqueness re-check and the ticket write commit
// or roll back together.
func (s *TicketService) Update(actor models.AuthContext, ticketID string, req *models.UpdateTicketRequest) (*models.TicketResponse, error) {
	tx, err := s.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	ticket, err := s.ticketRepo.GetByIDForUpdateTx(tx, ticketID)
	if err != nil {
		return nil, err
	}

	seat, err := s.seatRepo.GetByIDForUpdateTx(tx, ticket.SeatID)
	if err != nil {
		return nil, err
	}

	seatDetailsChanged := false
	if req.RowPosition != nil && *req.RowPosition != seat.RowPosition {
		seatDetailsChanged = true
	}
	if req.ColumnPosition != nil && *req.ColumnPosition != seat.ColumnPosition {
		seatDetailsChanged = true
	}
	if req.TripID != nil && *req.TripID != ticket.TripID {
		seatDetailsChanged = true
	}

	if seatDetailsChanged {
		updatedSeat, err := s.seatService.RepositionTx(tx, seat.ID, req.RowPosition, req.ColumnPosition, req.TripID)
		if err != nil {
			return nil, err
		}
		ticket.SeatID = updatedSeat.ID
		ticket.TripID = updatedSeat.TripID
	}

	if req.UserID != nil && *req.UserID != ticket.UserID {
		newUser, err := s.userRepo.GetByID(*req.UserID)
		if err != nil {
			return nil, err
		}
		if newUser == nil {
			return nil, apperrors.NotFoundError{Resource: "user", ID: *req.UserID}
		}
		ticket.UserID = newUser.ID
	}

	if req.Fare != nil {
		ticket.Fare = *req.Fare
	}
	if req.DropOff != nil && *req.DropOff != "" {
		ticket.DropOff = *req.DropOff
	}

	if err := s.ticketRepo.UpdateTx(tx, ticket); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"ticket_id":    ticket.ID,
		"seat_changed": seatDetailsChanged,
		"user_id":      actor.UserID,
	}).Info("Ticket updated")

	return s.BuildTicketResponse(ticket)
}

// Delete removes a ticket and its bound seat in one transaction. The
// ticket row goes first, then the seat row; the freed position can be
// claimed again by a later booking.
func (s *TicketService) Delete(actor models.AuthContext, ticketID string) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	ticket, err := s.ticketRepo.GetByIDForUpdateTx(tx, ticketID)
	if err != nil {
		return err
	}

	if err := s.ticketRepo.DeleteTx(tx, ticket.ID); err != nil {
		return err
	}
	if err := s.seatRepo.DeleteTx(tx, ticket.SeatID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"ticket_id": ticket.ID,
		"seat_id":   ticket.SeatID,
		"trip_id":   ticket.TripID,
		"user_id":   actor.UserID,
	}).Info("Ticket and seat deleted")

	return nil
}

// BuildTicketResponse assembles the full ticket representation with
// nested seat, trip, user and payment history
func (s *TicketService) BuildTicketResponse(ticket *models.Ticket) (*models.TicketResponse, error) {
	seat, err := s.seatRepo.GetByID(ticket.SeatID)
	if err != nil {
		return nil, err
	}

	tripSummary, err := s.tripService.GetByID(ticket.TripID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ticket.UserID)
	if err != nil {
		return nil, err
	}

	payments, err := s.paymentRepo.GetByTicketID(ticket.ID)
	if err != nil {
		return nil, err
	}
	paymentSummaries := make([]models.PaymentSummary, 0, len(payments))
	for i := range payments {
		paymentSummaries = append(paymentSummaries, payments[i].ToSummary())
	}

	return &models.TicketResponse{
		ID:       ticket.ID,
		Fare:     ticket.Fare,
		DropOff:  ticket.DropOff,
		Seat:     seat.ToSummary(),
		Trip:     tripSummary,
		User:     user.ToSummary(),
		Payments: paymentSummaries,
	}, nil
}

func (s *TicketService) buildTicketResponses(tickets []models.Ticket) ([]models.TicketResponse, error) {
	responses := make([]models.TicketResponse, 0, len(tickets))
	for i := range tickets {
		resp, err := s.BuildTicketResponse(&tickets[i])
		if err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}
	return responses, nil
}
