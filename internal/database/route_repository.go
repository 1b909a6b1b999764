package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/cit-transit/btts-backend/internal/models"
)

// RouteRepository handles database operations for the routes table
type RouteRepository struct {
	db DB
}

// NewRouteRepository creates a new RouteRepository
func NewRouteRepository(db DB) *RouteRepository {
	return &RouteRepository{db: db}
}

// GetByID retrieves a route by ID, returning nil when absent
func (r *RouteRepository) GetByID(routeID string) (*models.Route, error) {
	route := &models.Route{}
	query := `
		SELECT id, origin, destination, stops, base_price, created_at, updated_at
		FROM routes
		WHERE id = $1
	`
	err := r.db.Get(route, query, routeID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get route: %w", err)
	}
	return route, nil
}
