package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/cit-transit/btts-backend/internal/models"
)

// TripRepository handles database operations for the trips table
type TripRepository struct {
	db DB
}

// NewTripRepository creates a new TripRepository
func NewTripRepository(db DB) *TripRepository {
	return &TripRepository{db: db}
}

// GetByID retrieves a trip by ID, returning nil when absent
func (r *TripRepository) GetByID(tripID string) (*models.Trip, error) {
	trip := &models.Trip{}
	query := `
		SELECT id, departure_time, status, bus_id, route_id, created_at, updated_at
		FROM trips
		WHERE id = $1
	`
	err := r.db.Get(trip, query, tripID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}
	return trip, nil
}
