package services

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/cit-transit/btts-backend/internal/apperrors"
	"github.com/cit-transit/btts-backend/internal/database"
	"github.com/cit-transit/btts-backend/internal/models"
)

// BookingService orchestrates the booking transaction: claim a seat,
// create the ticket bound to it and record the initial payment, all in
// one database transaction. If any step fails no seat, ticket or
// payment from the call survives.
type BookingService struct {
	db            database.DB
	tripRepo      *database.TripRepository
	userRepo      *database.UserRepository
	ticketRepo    *database.TicketRepository
	paymentRepo   *database.PaymentRepository
	seatService   *SeatService
	ticketService *TicketService
	logger        *logrus.Logger
}

// NewBookingService creates a new BookingService
func NewBookingService(
	db database.DB,
	tripRepo *database.TripRepository,
	userRepo *database.UserRepository,
	ticketRepo *database.TicketRepository,
	paymentRepo *database.PaymentRepository,
	seatService *SeatService,
	ticketService *TicketService,
	logger *logrus.Logger,
) *BookingService {
	return &BookingService{
		db:            db,
		tripRepo:      tripRepo,
		userRepo:      userRepo,
		ticketRepo:    ticketRepo,
		paymentRepo:   paymentRepo,
		seatService:   seatService,
		ticketService: ticketService,
		logger:        logger,
	}
}

// BookForCash books a seat paid at the counter. The seat is booked
// immediately; the payment still starts pending until staff approve it.
func (s *BookingService) BookForCash(actor models.AuthContext, req *models.BookTicketRequest) (*models.TicketResponse, error) {
	if len(req.OnlineReceipt) > 0 {
		return nil, apperrors.BadRequestError{Msg: "cash payments should not include an online receipt"}
	}
	return s.book(actor, req, models.PaymentTypeCash, nil)
}

// BookForOnline books a seat paid through the online channel. The seat
// starts reserved and flips to booked once the payment is approved.
func (s *BookingService) BookForOnline(actor models.AuthContext, req *models.BookTicketRequest) (*models.TicketResponse, error) {
	if len(req.OnlineReceipt) == 0 {
		return nil, apperrors.BadRequestError{Msg: "online receipt is required for online payments"}
	}
	return s.book(actor, req, models.PaymentTypeOnline, req.OnlineReceipt)
}

func (s *BookingService) book(actor models.AuthContext, req *models.BookTicketRequest, paymentType models.PaymentType, receipt []byte) (*models.TicketResponse, error) {
	trip, err := s.tripRepo.GetByID(req.TripID)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, apperrors.NotFoundError{Resource: "trip", ID: req.TripID}
	}

	user, err := s.userRepo.GetByID(req.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NotFoundError{Resource: "user", ID: req.UserID}
	}

	initialStatus := models.SeatStatusReserved
	if paymentType == models.PaymentTypeCash {
		initialStatus = models.SeatStatusBooked
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	seat, err := s.seatService.ClaimTx(tx, trip.ID, req.RowPosition, req.ColumnPosition, initialStatus)
	if err != nil {
		return nil, err
	}

	ticket := &models.Ticket{
		Fare:    req.Fare,
		DropOff: req.DropOff,
		SeatID:  seat.ID,
		TripID:  trip.ID,
		UserID:  user.ID,
	}
	if err := s.ticketRepo.CreateTx(tx, ticket); err != nil {
		return nil, err
	}

	payment := &models.Payment{
		TicketID:      ticket.ID,
		Amount:        req.Fare,
		Status:        models.PaymentStatusPending,
		Type:          paymentType,
		Purpose:       models.PaymentPurposeTicketFare,
		OnlineReceipt: receipt,
	}
	if err := s.paymentRepo.CreateTx(tx, payment); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"ticket_id":    ticket.ID,
		"seat_id":      seat.ID,
		"trip_id":      trip.ID,
		"passenger_id": user.ID,
		"payment_type": paymentType,
		"seat_status":  seat.Status,
		"fare":         req.Fare,
		"booked_by":    actor.UserID,
	}).Info("Ticket booked")

	return s.ticketService.BuildTicketResponse(ticket)
}
