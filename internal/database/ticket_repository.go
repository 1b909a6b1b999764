package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/cit-transit/btts-backend/internal/apperrors"
	"github.com/cit-transit/btts-backend/internal/models"
)

// TicketRepository handles database operations for the tickets table
type TicketRepository struct {
	db DB
}

// NewTicketRepository creates a new TicketRepository
func NewTicketRepository(db DB) *TicketRepository {
	return &TicketRepository{db: db}
}

const ticketColumns = `id, fare, drop_off, seat_id, trip_id, user_id, created_at, updated_at`

// CreateTx inserts a new ticket inside tx. The seat_id column is
// unique: a seat carries at most one ticket, ever.
func (r *TicketRepository) CreateTx(tx *sqlx.Tx, ticket *models.Ticket) error {
	if ticket.ID == "" {
		ticket.ID = uuid.New().String()
	}

	query := `
		INSERT INTO tickets (id, fare, drop_off, seat_id, trip_id, user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`
	err := tx.QueryRow(query, ticket.ID, ticket.Fare, ticket.DropOff, ticket.SeatID, ticket.TripID, ticket.UserID).
		Scan(&ticket.CreatedAt, &ticket.UpdatedAt)
	if isUniqueViolation(err) {
		return apperrors.ConflictError{
			Msg: fmt.Sprintf("seat %s already has a ticket", ticket.SeatID),
			Err: err,
		}
	}
	if err != nil {
		return fmt.Errorf("failed to create ticket: %w", err)
	}
	return nil
}

// GetByID retrieves a ticket by ID
func (r *TicketRepository) GetByID(ticketID string) (*models.Ticket, error) {
	ticket := &models.Ticket{}
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id = $1`
	err := r.db.Get(ticket, query, ticketID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFoundError{Resource: "ticket", ID: ticketID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	return ticket, nil
}

// GetByIDForUpdateTx retrieves a ticket by ID inside tx, locking the row
func (r *TicketRepository) GetByIDForUpdateTx(tx *sqlx.Tx, ticketID string) (*models.Ticket, error) {
	ticket := &models.Ticket{}
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id = $1 FOR UPDATE`
	err := tx.Get(ticket, query, ticketID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFoundError{Resource: "ticket", ID: ticketID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket for update: %w", err)
	}
	return ticket, nil
}

// GetAll retrieves all tickets ordered by creation time
func (r *TicketRepository) GetAll() ([]models.Ticket, error) {
	tickets := []models.Ticket{}
	query := `SELECT ` + ticketColumns + ` FROM tickets ORDER BY created_at DESC`
	if err := r.db.Select(&tickets, query); err != nil {
		return nil, fmt.Errorf("failed to get tickets: %w", err)
	}
	return tickets, nil
}

// GetByUserID retrieves all tickets belonging to a user
func (r *TicketRepository) GetByUserID(userID string) ([]models.Ticket, error) {
	tickets := []models.Ticket{}
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE user_id = $1 ORDER BY created_at DESC`
	if err := r.db.Select(&tickets, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get tickets for user: %w", err)
	}
	return tickets, nil
}

// UpdateTx writes a ticket's mutable fields inside tx
func (r *TicketRepository) UpdateTx(tx *sqlx.Tx, ticket *models.Ticket) error {
	query := `
		UPDATE tickets
		SET fare = $2, drop_off = $3, seat_id = $4, trip_id = $5, user_id = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	err := tx.QueryRow(query, ticket.ID, ticket.Fare, ticket.DropOff, ticket.SeatID, ticket.TripID, ticket.UserID).
		Scan(&ticket.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NotFoundError{Resource: "ticket", ID: ticket.ID}
	}
	if err != nil {
		return fmt.Errorf("failed to update ticket: %w", err)
	}
	return nil
}

// DeleteTx removes a ticket row inside tx. The caller deletes the bound
// seat in the same transaction; payments keep their ticket_id for audit
// and are removed by the same cascade at the schema level.
func (r *TicketRepository) DeleteTx(tx *sqlx.Tx, ticketID string) error {
	result, err := tx.Exec(`DELETE FROM tickets WHERE id = $1`, ticketID)
	if err != nil {
		return fmt.Errorf("failed to delete ticket: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperrors.NotFoundError{Resource: "ticket", ID: ticketID}
	}
	return nil
}

// CountBookedByTripID counts the trip's tickets whose seat is currently
// booked. Counted against tickets, not the seat set: a ticket may exist
// with a reserved or open seat and must not reduce availability.
func (r *TicketRepository) CountBookedByTripID(tripID string) (int, error) {
	var count int
	query := `
		SELECT COUNT(*)
		FROM tickets t
		JOIN seats s ON s.id = t.seat_id
		WHERE t.trip_id = $1
		  AND s.status = 'booked'
	`
	if err := r.db.Get(&count, query, tripID); err != nil {
		return 0, fmt.Errorf("failed to count booked tickets: %w", err)
	}
	return count, nil
}
