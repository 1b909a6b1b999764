package services

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/cit-transit/btts-backend/internal/apperrors"
	"github.com/cit-transit/btts-backend/internal/database"
	"github.com/cit-transit/btts-backend/internal/models"
)

// TripService derives trip-level views, in particular the available
// seat count used by booking clients.
type TripService struct {
	tripRepo   *database.TripRepository
	busRepo    *database.BusRepository
	routeRepo  *database.RouteRepository
	ticketRepo *database.TicketRepository
	logger     *logrus.Logger
}

// NewTripService creates a new TripService
func NewTripService(
	tripRepo *database.TripRepository,
	busRepo *database.BusRepository,
	routeRepo *database.RouteRepository,
	ticketRepo *database.TicketRepository,
	logger *logrus.Logger,
) *TripService {
	return &TripService{
		tripRepo:   tripRepo,
		busRepo:    busRepo,
		routeRepo:  routeRepo,
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

// AvailableSeats computes bus capacity minus the trip's tickets whose
// seat is currently booked. Tickets with reserved or open seats do not
// reduce availability.
func (s *TripService) AvailableSeats(tripID string) (int, error) {
	trip, err := s.tripRepo.GetByID(tripID)
	if err != nil {
		return 0, err
	}
	if trip == nil {
		return 0, apperrors.NotFoundError{Resource: "trip", ID: tripID}
	}

	bus, err := s.busRepo.GetByID(trip.BusID)
	if err != nil {
		return 0, err
	}
	if bus == nil {
		// Structurally impossible with the FK in place; guard anyway.
		return 0, apperrors.InternalError{Msg: fmt.Sprintf("trip %s is not associated with a bus", tripID)}
	}

	booked, err := s.ticketRepo.CountBookedByTripID(tripID)
	if err != nil {
		return 0, err
	}

	return bus.Capacity() - booked, nil
}

// GetByID returns the trip summary with embedded bus, route and
// available seat count
func (s *TripService) GetByID(tripID string) (*models.TripSummary, error) {
	trip, err := s.tripRepo.GetByID(tripID)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, apperrors.NotFoundError{Resource: "trip", ID: tripID}
	}
	return s.BuildSummary(trip)
}

// BuildSummary maps a trip to its response representation
func (s *TripService) BuildSummary(trip *models.Trip) (*models.TripSummary, error) {
	bus, err := s.busRepo.GetByID(trip.BusID)
	if err != nil {
		return nil, err
	}
	if bus == nil {
		return nil, apperrors.InternalError{Msg: fmt.Sprintf("trip %s is not associated with a bus", trip.ID)}
	}

	route, err := s.routeRepo.GetByID(trip.RouteID)
	if err != nil {
		return nil, err
	}

	booked, err := s.ticketRepo.CountBookedByTripID(trip.ID)
	if err != nil {
		return nil, err
	}
	available := bus.Capacity() - booked

	return &models.TripSummary{
		ID:             trip.ID,
		DepartureTime:  trip.DepartureTime,
		Status:         trip.Status,
		Bus:            bus.ToSummary(),
		Route:          route.ToSummary(),
		AvailableSeats: &available,
	}, nil
}
