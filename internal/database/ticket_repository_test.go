package database

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cit-transit/btts-backend/internal/apperrors"
	"github.com/cit-transit/btts-backend/internal/models"
)

var ticketTestColumns = []string{"id", "fare", "drop_off", "seat_id", "trip_id", "user_id", "created_at", "updated_at"}

func TestTicketCreateTx(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTicketRepository(db)

	t.Run("Success", func(t *testing.T) {
		seatID := uuid.New().String()
		tripID := uuid.New().String()
		userID := uuid.New().String()
		now := time.Now()

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO tickets`).
			WithArgs(sqlmock.AnyArg(), 1500.0, "Kandy", seatID, tripID, userID).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
		mock.ExpectCommit()

		tx, err := db.Beginx()
		require.NoError(t, err)

		ticket := &models.Ticket{Fare: 1500.0, DropOff: "Kandy", SeatID: seatID, TripID: tripID, UserID: userID}
		err = repo.CreateTx(tx, ticket)
		require.NoError(t, err)
		assert.NotEmpty(t, ticket.ID)
		require.NoError(t, tx.Commit())

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Seat Already Ticketed", func(t *testing.T) {
		seatID := uuid.New().String()

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO tickets`).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "tickets_seat_id_key"})
		mock.ExpectRollback()

		tx, err := db.Beginx()
		require.NoError(t, err)

		ticket := &models.Ticket{Fare: 1500.0, DropOff: "Kandy", SeatID: seatID}
		err = repo.CreateTx(tx, ticket)
		assert.True(t, apperrors.IsConflict(err))
		assert.Contains(t, err.Error(), seatID)
		require.NoError(t, tx.Rollback())

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTicketGetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTicketRepository(db)

	t.Run("Success", func(t *testing.T) {
		ticketID := uuid.New().String()
		now := time.Now()

		mock.ExpectQuery(`FROM tickets WHERE id`).
			WithArgs(ticketID).
			WillReturnRows(sqlmock.NewRows(ticketTestColumns).
				AddRow(ticketID, 800.0, "Galle", uuid.New().String(), uuid.New().String(), uuid.New().String(), now, now))

		ticket, err := repo.GetByID(ticketID)
		require.NoError(t, err)
		assert.Equal(t, ticketID, ticket.ID)
		assert.Equal(t, 800.0, ticket.Fare)
		assert.Equal(t, "Galle", ticket.DropOff)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		ticketID := uuid.New().String()

		mock.ExpectQuery(`FROM tickets WHERE id`).
			WithArgs(ticketID).
			WillReturnError(sql.ErrNoRows)

		ticket, err := repo.GetByID(ticketID)
		assert.Nil(t, ticket)
		assert.True(t, apperrors.IsNotFound(err))

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTicketDeleteTx(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTicketRepository(db)

	t.Run("Not Found", func(t *testing.T) {
		ticketID := uuid.New().String()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM tickets`).
			WithArgs(ticketID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		tx, err := db.Beginx()
		require.NoError(t, err)

		err = repo.DeleteTx(tx, ticketID)
		assert.True(t, apperrors.IsNotFound(err))
		require.NoError(t, tx.Rollback())

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCountBookedByTripID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTicketRepository(db)

	tripID := uuid.New().String()

	mock.ExpectQuery(`SELECT COUNT`).
		WithArgs(tripID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	count, err := repo.CountBookedByTripID(tripID)
	require.NoError(t, err)
	assert.Equal(t, 5, count)

	assert.NoError(t, mock.ExpectationsWereMet())
}
