package services

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cit-transit/btts-backend/internal/apperrors"
	"github.com/cit-transit/btts-backend/internal/database"
	"github.com/cit-transit/btts-backend/internal/models"
)

func newSeatFixture(t *testing.T) (*SeatService, sqlmock.Sqlmock) {
	t.Helper()

	db, mock := newMockDB(t)
	seatRepo := database.NewSeatRepository(db)
	tripRepo := database.NewTripRepository(db)

	return NewSeatService(db, seatRepo, tripRepo, newTestLogger()), mock
}

func TestReposition(t *testing.T) {
	actor := models.AuthContext{UserID: uuid.New().String(), Roles: []string{models.RoleTicketStaff}}

	t.Run("Moves To Free Position", func(t *testing.T) {
		service, mock := newSeatFixture(t)

		seatID := uuid.New().String()
		tripID := uuid.New().String()
		now := time.Now()
		newRow, newCol := 5, 2

		mock.ExpectBegin()
		mock.ExpectQuery(`FROM seats\s+WHERE id = \$1\s+FOR UPDATE`).
			WithArgs(seatID).
			WillReturnRows(sqlmock.NewRows(seatColumns).
				AddRow(seatID, tripID, 2, 3, "booked", now, now))
		mock.ExpectQuery(`FROM seats\s+WHERE trip_id`).
			WithArgs(tripID, newRow, newCol).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectQuery(`UPDATE seats\s+SET trip_id`).
			WithArgs(seatID, tripID, newRow, newCol).
			WillReturnRows(sqlmock.NewRows(seatColumns).
				AddRow(seatID, tripID, newRow, newCol, "booked", now, now))
		mock.ExpectCommit()

		seat, err := service.Reposition(actor, seatID, &models.RepositionSeatRequest{
			RowPosition:    &newRow,
			ColumnPosition: &newCol,
		})
		require.NoError(t, err)
		assert.Equal(t, newRow, seat.RowPosition)
		assert.Equal(t, newCol, seat.ColumnPosition)
		assert.Equal(t, models.SeatStatusBooked, seat.Status)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unchanged Position Writes Nothing", func(t *testing.T) {
		service, mock := newSeatFixture(t)

		seatID := uuid.New().String()
		tripID := uuid.New().String()
		now := time.Now()
		sameRow, sameCol := 2, 3

		mock.ExpectBegin()
		mock.ExpectQuery(`FROM seats\s+WHERE id = \$1\s+FOR UPDATE`).
			WithArgs(seatID).
			WillReturnRows(sqlmock.NewRows(seatColumns).
				AddRow(seatID, tripID, 2, 3, "reserved", now, now))
		mock.ExpectCommit()

		seat, err := service.Reposition(actor, seatID, &models.RepositionSeatRequest{
			RowPosition:    &sameRow,
			ColumnPosition: &sameCol,
		})
		require.NoError(t, err)
		assert.Equal(t, 2, seat.RowPosition)
		assert.Equal(t, models.SeatStatusReserved, seat.Status)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Target Position Taken", func(t *testing.T) {
		service, mock := newSeatFixture(t)

		seatID := uuid.New().String()
		tripID := uuid.New().String()
		now := time.Now()
		newRow := 7

		mock.ExpectBegin()
		mock.ExpectQuery(`FROM seats\s+WHERE id = \$1\s+FOR UPDATE`).
			WithArgs(seatID).
			WillReturnRows(sqlmock.NewRows(seatColumns).
				AddRow(seatID, tripID, 2, 3, "booked", now, now))
		mock.ExpectQuery(`FROM seats\s+WHERE trip_id`).
			WithArgs(tripID, newRow, 3).
			WillReturnRows(sqlmock.NewRows(seatColumns).
				AddRow(uuid.New().String(), tripID, newRow, 3, "open", now, now))
		mock.ExpectRollback()

		seat, err := service.Reposition(actor, seatID, &models.RepositionSeatRequest{RowPosition: &newRow})
		assert.Nil(t, seat)
		assert.True(t, apperrors.IsConflict(err))

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unknown Target Trip", func(t *testing.T) {
		service, mock := newSeatFixture(t)

		seatID := uuid.New().String()
		tripID := uuid.New().String()
		otherTripID := uuid.New().String()
		now := time.Now()

		mock.ExpectBegin()
		mock.ExpectQuery(`FROM seats\s+WHERE id = \$1\s+FOR UPDATE`).
			WithArgs(seatID).
			WillReturnRows(sqlmock.NewRows(seatColumns).
				AddRow(seatID, tripID, 2, 3, "booked", now, now))
		mock.ExpectQuery(`FROM trips\s+WHERE id`).
			WithArgs(otherTripID).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		seat, err := service.Reposition(actor, seatID, &models.RepositionSeatRequest{TripID: &otherTripID})
		assert.Nil(t, seat)
		assert.True(t, apperrors.IsNotFound(err))
		assert.Contains(t, err.Error(), otherTripID)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestListByTrip(t *testing.T) {
	service, mock := newSeatFixture(t)

	tripID := uuid.New().String()
	now := time.Now()

	mock.ExpectQuery(`FROM trips\s+WHERE id`).
		WithArgs(tripID).
		WillReturnRows(sqlmock.NewRows(tripColumns).
			AddRow(tripID, now.Add(24*time.Hour), "scheduled", uuid.New().String(), uuid.New().String(), now, now))
	mock.ExpectQuery(`FROM seats\s+WHERE trip_id = \$1\s+ORDER BY`).
		WithArgs(tripID).
		WillReturnRows(sqlmock.NewRows(seatColumns).
			AddRow(uuid.New().String(), tripID, 1, 1, "booked", now, now).
			AddRow(uuid.New().String(), tripID, 1, 2, "reserved", now, now))

	seats, err := service.ListByTrip(tripID)
	require.NoError(t, err)
	require.Len(t, seats, 2)
	assert.Equal(t, models.SeatStatusBooked, seats[0].Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}
