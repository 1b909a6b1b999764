package models

import "time"

// TripStatus represents the lifecycle status of a trip
type TripStatus string

const (
	TripStatusScheduled TripStatus = "scheduled"
	TripStatusDeparted  TripStatus = "departed"
	TripStatusCompleted TripStatus = "completed"
	TripStatusCancelled TripStatus = "cancelled"
)

// Trip represents a scheduled departure of one bus over one route.
// Seats and tickets reference the trip by foreign key; the trip holds
// no live collections of either.
type Trip struct {
	ID            string     `json:"id" db:"id"`
	DepartureTime time.Time  `json:"departure_time" db:"departure_time"`
	Status        TripStatus `json:"status" db:"status"`
	BusID         string     `json:"bus_id" db:"bus_id"`
	RouteID       string     `json:"route_id" db:"route_id"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}

// TripSummary is the trip representation returned to clients, with the
// bus and route embedded and the derived available-seat count
type TripSummary struct {
	ID             string        `json:"id"`
	DepartureTime  time.Time     `json:"departure_time"`
	Status         TripStatus    `json:"status"`
	Bus            *BusSummary   `json:"bus,omitempty"`
	Route          *RouteSummary `json:"route,omitempty"`
	AvailableSeats *int          `json:"available_seats,omitempty"`
}
