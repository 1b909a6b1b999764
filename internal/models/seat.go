package models

import "time"

// SeatStatus represents the lifecycle status of a seat
type SeatStatus string

const (
	SeatStatusOpen        SeatStatus = "open"
	SeatStatusReserved    SeatStatus = "reserved"
	SeatStatusBooked      SeatStatus = "booked"
	SeatStatusUnavailable SeatStatus = "unavailable"
)

// Seat represents a specific (row, column) slot on a trip's bus.
// (trip_id, row_position, column_position) is unique: a position is
// created once and never recreated while the seat row exists.
type Seat struct {
	ID             string     `json:"id" db:"id"`
	TripID         string     `json:"trip_id" db:"trip_id"`
	RowPosition    int        `json:"row_position" db:"row_position"`
	ColumnPosition int        `json:"column_position" db:"column_position"`
	Status         SeatStatus `json:"status" db:"status"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

// SeatSummary is the nested seat representation used inside ticket responses
type SeatSummary struct {
	ID             string     `json:"id"`
	RowPosition    int        `json:"row_position"`
	ColumnPosition int        `json:"column_position"`
	Status         SeatStatus `json:"status"`
	TripID         string     `json:"trip_id"`
}

// ToSummary converts a Seat to its summary representation
func (s *Seat) ToSummary() *SeatSummary {
	if s == nil {
		return nil
	}
	return &SeatSummary{
		ID:             s.ID,
		RowPosition:    s.RowPosition,
		ColumnPosition: s.ColumnPosition,
		Status:         s.Status,
		TripID:         s.TripID,
	}
}

// RepositionSeatRequest updates a seat's position and/or trip.
// Absent fields keep their current values.
type RepositionSeatRequest struct {
	RowPosition    *int    `json:"row_position" binding:"omitempty,gte=1"`
	ColumnPosition *int    `json:"column_position" binding:"omitempty,gte=1"`
	TripID         *string `json:"trip_id"`
}

// UpdateSeatStatusRequest sets a seat's status directly (staff tooling)
type UpdateSeatStatusRequest struct {
	Status SeatStatus `json:"status" binding:"required,oneof=open reserved booked unavailable"`
}
