package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/cit-transit/btts-backend/internal/apperrors"
	"github.com/cit-transit/btts-backend/internal/models"
)

// SeatRepository handles database operations for the seats table.
// The table carries UNIQUE (trip_id, row_position, column_position);
// that constraint, not the pre-insert lookup, is what arbitrates
// concurrent claims for the same position.
type SeatRepository struct {
	db DB
}

// NewSeatRepository creates a new SeatRepository
func NewSeatRepository(db DB) *SeatRepository {
	return &SeatRepository{db: db}
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505)
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// GetByID retrieves a seat by ID
func (r *SeatRepository) GetByID(seatID string) (*models.Seat, error) {
	seat := &models.Seat{}
	query := `
		SELECT id, trip_id, row_position, column_position, status, created_at, updated_at
		FROM seats
		WHERE id = $1
	`
	err := r.db.Get(seat, query, seatID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFoundError{Resource: "seat", ID: seatID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get seat: %w", err)
	}
	return seat, nil
}

// GetByIDForUpdateTx retrieves a seat by ID inside tx, locking the row.
// Payment projection and reposition both update fields of the same seat
// record; the lock serializes them.
func (r *SeatRepository) GetByIDForUpdateTx(tx *sqlx.Tx, seatID string) (*models.Seat, error) {
	seat := &models.Seat{}
	query := `
		SELECT id, trip_id, row_position, column_position, status, created_at, updated_at
		FROM seats
		WHERE id = $1
		FOR UPDATE
	`
	err := tx.Get(seat, query, seatID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFoundError{Resource: "seat", ID: seatID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get seat for update: %w", err)
	}
	return seat, nil
}

// GetByTripID retrieves all seats for a trip ordered by position
func (r *SeatRepository) GetByTripID(tripID string) ([]models.Seat, error) {
	seats := []models.Seat{}
	query := `
		SELECT id, trip_id, row_position, column_position, status, created_at, updated_at
		FROM seats
		WHERE trip_id = $1
		ORDER BY row_position, column_position
	`
	if err := r.db.Select(&seats, query, tripID); err != nil {
		return nil, fmt.Errorf("failed to get seats for trip: %w", err)
	}
	return seats, nil
}

// FindByTripAndPositionTx returns the seat occupying (trip, row, col)
// inside tx, or nil when the position is free
func (r *SeatRepository) FindByTripAndPositionTx(tx *sqlx.Tx, tripID string, row, col int) (*models.Seat, error) {
	seat := &models.Seat{}
	query := `
		SELECT id, trip_id, row_position, column_position, status, created_at, updated_at
		FROM seats
		WHERE trip_id = $1 AND row_position = $2 AND column_position = $3
	`
	err := tx.Get(seat, query, tripID, row, col)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up seat position: %w", err)
	}
	return seat, nil
}

// CreateTx inserts a new seat inside tx. A unique violation on the
// position index surfaces as Conflict so that of two concurrent claims
// for the same slot exactly one commits.
func (r *SeatRepository) CreateTx(tx *sqlx.Tx, seat *models.Seat) error {
	if seat.ID == "" {
		seat.ID = uuid.New().String()
	}

	query := `
		INSERT INTO seats (id, trip_id, row_position, column_position, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`
	err := tx.QueryRow(query, seat.ID, seat.TripID, seat.RowPosition, seat.ColumnPosition, seat.Status).
		Scan(&seat.CreatedAt, &seat.UpdatedAt)
	if isUniqueViolation(err) {
		return apperrors.ConflictError{
			Msg: fmt.Sprintf("seat at row %d, column %d is already taken for trip %s",
				seat.RowPosition, seat.ColumnPosition, seat.TripID),
			Err: err,
		}
	}
	if err != nil {
		return fmt.Errorf("failed to create seat: %w", err)
	}
	return nil
}

// UpdatePositionTx moves a seat to a new (trip, row, col) inside tx
func (r *SeatRepository) UpdatePositionTx(tx *sqlx.Tx, seatID, tripID string, row, col int) (*models.Seat, error) {
	seat := &models.Seat{}
	query := `
		UPDATE seats
		SET trip_id = $2, row_position = $3, column_position = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING id, trip_id, row_position, column_position, status, created_at, updated_at
	`
	err := tx.Get(seat, query, seatID, tripID, row, col)
	if isUniqueViolation(err) {
		return nil, apperrors.ConflictError{
			Msg: fmt.Sprintf("seat at row %d, column %d is already taken for trip %s", row, col, tripID),
			Err: err,
		}
	}
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFoundError{Resource: "seat", ID: seatID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update seat position: %w", err)
	}
	return seat, nil
}

// UpdateStatusTx sets a seat's status inside tx
func (r *SeatRepository) UpdateStatusTx(tx *sqlx.Tx, seatID string, status models.SeatStatus) (*models.Seat, error) {
	seat := &models.Seat{}
	query := `
		UPDATE seats
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id, trip_id, row_position, column_position, status, created_at, updated_at
	`
	err := tx.Get(seat, query, seatID, status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFoundError{Resource: "seat", ID: seatID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update seat status: %w", err)
	}
	return seat, nil
}

// UpdateStatus sets a seat's status outside any caller transaction
func (r *SeatRepository) UpdateStatus(seatID string, status models.SeatStatus) (*models.Seat, error) {
	seat := &models.Seat{}
	query := `
		UPDATE seats
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id, trip_id, row_position, column_position, status, created_at, updated_at
	`
	err := r.db.Get(seat, query, seatID, status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFoundError{Resource: "seat", ID: seatID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update seat status: %w", err)
	}
	return seat, nil
}

// DeleteTx removes a seat row inside tx, freeing its position for a
// future claim
func (r *SeatRepository) DeleteTx(tx *sqlx.Tx, seatID string) error {
	result, err := tx.Exec(`DELETE FROM seats WHERE id = $1`, seatID)
	if err != nil {
		return fmt.Errorf("failed to delete seat: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperrors.NotFoundError{Resource: "seat", ID: seatID}
	}
	return nil
}
