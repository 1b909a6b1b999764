package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/cit-transit/btts-backend/internal/models"
)

// BusRepository handles database operations for the buses table
type BusRepository struct {
	db DB
}

// NewBusRepository creates a new BusRepository
func NewBusRepository(db DB) *BusRepository {
	return &BusRepository{db: db}
}

// GetByID retrieves a bus by ID, returning nil when absent
func (r *BusRepository) GetByID(busID string) (*models.Bus, error) {
	bus := &models.Bus{}
	query := `
		SELECT id, plate_number, name, operator, row_count, column_count, created_at, updated_at
		FROM buses
		WHERE id = $1
	`
	err := r.db.Get(bus, query, busID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bus: %w", err)
	}
	return bus, nil
}
