package services

import (
	"io"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/cit-transit/btts-backend/internal/database"
)

var (
	seatColumns    = []string{"id", "trip_id", "row_position", "column_position", "status", "created_at", "updated_at"}
	ticketColumns  = []string{"id", "fare", "drop_off", "seat_id", "trip_id", "user_id", "created_at", "updated_at"}
	paymentColumns = []string{"id", "ticket_id", "amount", "status", "type", "purpose", "paid_date", "online_receipt", "created_at", "updated_at"}
	tripColumns    = []string{"id", "departure_time", "status", "bus_id", "route_id", "created_at", "updated_at"}
	busColumns     = []string{"id", "plate_number", "name", "operator", "row_count", "column_count", "created_at", "updated_at"}
	userColumns    = []string{"id", "email", "name", "roles", "created_at", "updated_at"}
	routeColumns   = []string{"id", "origin", "destination", "stops", "base_price", "created_at", "updated_at"}
)

// newMockDB wraps a sqlmock connection in the sqlx-backed DB the
// services and repositories run against
func newMockDB(t *testing.T) (*database.PostgresDB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return &database.PostgresDB{DB: sqlx.NewDb(db, "sqlmock")}, mock
}

// newTestLogger returns a logger that discards output
func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
