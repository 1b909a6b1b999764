package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/cit-transit/btts-backend/internal/models"
)

// UserRepository handles database operations for the users table
type UserRepository struct {
	db DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByID retrieves a user by ID, returning nil when absent
func (r *UserRepository) GetByID(userID string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, email, name, roles, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	err := r.db.Get(user, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}
