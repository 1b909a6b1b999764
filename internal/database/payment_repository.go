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

// PaymentRepository handles database operations for the payments table
type PaymentRepository struct {
	db DB
}

// NewPaymentRepository creates a new PaymentRepository
func NewPaymentRepository(db DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

const paymentColumns = `id, ticket_id, amount, status, type, purpose, paid_date, online_receipt, created_at, updated_at`

// CreateTx inserts a new payment inside tx. Status defaults to pending
// and paid_date to now when unset.
func (r *PaymentRepository) CreateTx(tx *sqlx.Tx, payment *models.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	if payment.Status == "" {
		payment.Status = models.PaymentStatusPending
	}

	query := `
		INSERT INTO payments (id, ticket_id, amount, status, type, purpose, paid_date, online_receipt)
		VALUES ($1, $2, $3, $4, $5, $6, COALESCE($7, NOW()), $8)
		RETURNING paid_date, created_at, updated_at
	`
	var paidDate interface{}
	if !payment.PaidDate.IsZero() {
		paidDate = payment.PaidDate
	}

	err := tx.QueryRow(query,
		payment.ID, payment.TicketID, payment.Amount, payment.Status,
		payment.Type, payment.Purpose, paidDate, payment.OnlineReceipt,
	).Scan(&payment.PaidDate, &payment.CreatedAt, &payment.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

// GetByID retrieves a payment by ID
func (r *PaymentRepository) GetByID(paymentID string) (*models.Payment, error) {
	payment := &models.Payment{}
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	err := r.db.Get(payment, query, paymentID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFoundError{Resource: "payment", ID: paymentID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return payment, nil
}

// GetByIDForUpdateTx retrieves a payment by ID inside tx, locking the
// row so concurrent status transitions on the same payment serialize
func (r *PaymentRepository) GetByIDForUpdateTx(tx *sqlx.Tx, paymentID string) (*models.Payment, error) {
	payment := &models.Payment{}
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1 FOR UPDATE`
	err := tx.Get(payment, query, paymentID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFoundError{Resource: "payment", ID: paymentID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get payment for update: %w", err)
	}
	return payment, nil
}

// GetByTicketID retrieves all payments recorded against a ticket
func (r *PaymentRepository) GetByTicketID(ticketID string) ([]models.Payment, error) {
	payments := []models.Payment{}
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE ticket_id = $1 ORDER BY paid_date`
	if err := r.db.Select(&payments, query, ticketID); err != nil {
		return nil, fmt.Errorf("failed to get payments for ticket: %w", err)
	}
	return payments, nil
}

// UpdateStatusTx writes a payment's status inside tx
func (r *PaymentRepository) UpdateStatusTx(tx *sqlx.Tx, paymentID string, status models.PaymentStatus) (*models.Payment, error) {
	payment := &models.Payment{}
	query := `
		UPDATE payments
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + paymentColumns + `
	`
	err := tx.Get(payment, query, paymentID, status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFoundError{Resource: "payment", ID: paymentID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update payment status: %w", err)
	}
	return payment, nil
}

// Delete removes a payment (administrative use only)
func (r *PaymentRepository) Delete(paymentID string) error {
	result, err := r.db.Exec(`DELETE FROM payments WHERE id = $1`, paymentID)
	if err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperrors.NotFoundError{Resource: "payment", ID: paymentID}
	}
	return nil
}
