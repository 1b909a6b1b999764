package handlers

import (
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cit-transit/btts-backend/internal/database"
	"github.com/cit-transit/btts-backend/internal/services"
)

func newTripHandlerFixture(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rawDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { rawDB.Close() })

	db := &database.PostgresDB{DB: sqlx.NewDb(rawDB, "sqlmock")}
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	tripRepo := database.NewTripRepository(db)
	busRepo := database.NewBusRepository(db)
	routeRepo := database.NewRouteRepository(db)
	ticketRepo := database.NewTicketRepository(db)
	seatRepo := database.NewSeatRepository(db)

	tripService := services.NewTripService(tripRepo, busRepo, routeRepo, ticketRepo, logger)
	seatService := services.NewSeatService(db, seatRepo, tripRepo, logger)
	handler := NewTripHandler(tripService, seatService)

	router := gin.New()
	router.GET("/trips/:id", handler.GetTrip)
	router.GET("/trips/:id/available-seats", handler.GetAvailableSeats)
	router.GET("/trips/:id/seats", handler.ListTripSeats)
	return router, mock
}

func TestGetAvailableSeatsEndpoint(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		router, mock := newTripHandlerFixture(t)

		tripID := uuid.New().String()
		busID := uuid.New().String()
		now := time.Now()

		mock.ExpectQuery(`FROM trips\s+WHERE id`).
			WithArgs(tripID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "departure_time", "status", "bus_id", "route_id", "created_at", "updated_at"}).
				AddRow(tripID, now.Add(24*time.Hour), "scheduled", busID, uuid.New().String(), now, now))
		mock.ExpectQuery(`FROM buses\s+WHERE id`).
			WithArgs(busID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "plate_number", "name", "operator", "row_count", "column_count", "created_at", "updated_at"}).
				AddRow(busID, "NB-1234", "Express 1", "CTB", 10, 4, now, now))
		mock.ExpectQuery(`SELECT COUNT`).
			WithArgs(tripID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/trips/"+tripID+"/available-seats", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, float64(35), body["available_seats"])
		assert.Equal(t, tripID, body["trip_id"])

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Trip Not Found", func(t *testing.T) {
		router, mock := newTripHandlerFixture(t)

		tripID := uuid.New().String()
		mock.ExpectQuery(`FROM trips\s+WHERE id`).
			WithArgs(tripID).
			WillReturnError(sql.ErrNoRows)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/trips/"+tripID+"/available-seats", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "not_found")

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
