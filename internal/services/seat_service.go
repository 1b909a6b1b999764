package services

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/cit-transit/btts-backend/internal/apperrors"
	"github.com/cit-transit/btts-backend/internal/database"
	"github.com/cit-transit/btts-backend/internal/models"
)

// SeatService owns the per-trip seat inventory: claiming a position,
// repositioning an existing seat and direct status writes. A position
// is created once; even an open or unavailable seat blocks reuse until
// its row is deleted.
type SeatService struct {
	db       database.DB
	seatRepo *database.SeatRepository
	tripRepo *database.TripRepository
	logger   *logrus.Logger
}

// NewSeatService creates a new SeatService
func NewSeatService(
	db database.DB,
	seatRepo *database.SeatRepository,
	tripRepo *database.TripRepository,
	logger *logrus.Logger,
) *SeatService {
	return &SeatService{
		db:       db,
		seatRepo: seatRepo,
		tripRepo: tripRepo,
		logger:   logger,
	}
}

// ClaimTx creates a new seat at (trip, row, col) inside the caller's
// transaction. The pre-insert lookup exists for the error message; the
// unique constraint on the position is what decides races, so two
// concurrent claims yield exactly one success and one Conflict.
func (s *SeatService) ClaimTx(tx *sqlx.Tx, tripID string, row, col int, status models.SeatStatus) (*models.Seat, error) {
	existing, err := s.seatRepo.FindByTripAndPositionTx(tx, tripID, row, col)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.ConflictError{
			Msg: fmt.Sprintf("seat at row %d, column %d already exists and is %s for trip %s",
				row, col, existing.Status, tripID),
		}
	}

	seat := &models.Seat{
		TripID:         tripID,
		RowPosition:    row,
		ColumnPosition: col,
		Status:         status,
	}
	if err := s.seatRepo.CreateTx(tx, seat); err != nil {
		return nil, err
	}
	return seat, nil
}

// RepositionTx moves a seat to a new position and/or trip inside the
// caller's transaction. Absent arguments keep current values; when the
// effective position equals the current one nothing is written. The
// seat row is locked first so a concurrent payment projection cannot
// interleave with the move.
func (s *SeatService) RepositionTx(tx *sqlx.Tx, seatID string, newRow, newCol *int, newTripID *string) (*models.Seat, error) {
	seat, err := s.seatRepo.GetByIDForUpdateTx(tx, seatID)
	if err != nil {
		return nil, err
	}

	effRow := seat.RowPosition
	if newRow != nil {
		effRow = *newRow
	}
	effCol := seat.ColumnPosition
	if newCol != nil {
		effCol = *newCol
	}
	effTripID := seat.TripID
	if newTripID != nil && *newTripID != seat.TripID {
		trip, err := s.tripRepo.GetByID(*newTripID)
		if err != nil {
			return nil, err
		}
		if trip == nil {
			return nil, apperrors.NotFoundError{Resource: "trip", ID: *newTripID}
		}
		effTripID = trip.ID
	}

	if effRow == seat.RowPosition && effCol == seat.ColumnPosition && effTripID == seat.TripID {
		return seat, nil
	}

	conflicting, err := s.seatRepo.FindByTripAndPositionTx(tx, effTripID, effRow, effCol)
	if err != nil {
		return nil, err
	}
	if conflicting != nil && conflicting.ID != seat.ID {
		return nil, apperrors.ConflictError{
			Msg: fmt.Sprintf("seat at row %d, column %d is already taken for trip %s",
				effRow, effCol, effTripID),
		}
	}

	return s.seatRepo.UpdatePositionTx(tx, seat.ID, effTripID, effRow, effCol)
}

// Reposition moves a seat in its own transaction
func (s *SeatService) Reposition(actor models.AuthContext, seatID string, req *models.RepositionSeatRequest) (*models.Seat, error) {
	tx, err := s.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	seat, err := s.RepositionTx(tx, seatID, req.RowPosition, req.ColumnPosition, req.TripID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"seat_id": seat.ID,
		"trip_id": seat.TripID,
		"row":     seat.RowPosition,
		"column":  seat.ColumnPosition,
		"user_id": actor.UserID,
	}).Info("Seat repositioned")

	return seat, nil
}

// ListByTrip returns all seats for a trip
func (s *SeatService) ListByTrip(tripID string) ([]models.Seat, error) {
	trip, err := s.tripRepo.GetByID(tripID)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, apperrors.NotFoundError{Resource: "trip", ID: tripID}
	}
	return s.seatRepo.GetByTripID(tripID)
}

// UpdateStatus sets a seat's status directly (staff tooling)
func (s *SeatService) UpdateStatus(actor models.AuthContext, seatID string, status models.SeatStatus) (*models.Seat, error) {
	seat, err := s.seatRepo.UpdateStatus(seatID, status)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"seat_id": seat.ID,
		"status":  seat.Status,
		"user_id": actor.UserID,
	}).Info("Seat status updated")

	return seat, nil
}
