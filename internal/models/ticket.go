package models

import "time"

// Ticket binds a passenger to exactly one seat on one trip. The seat
// is created together with the ticket and destroyed together with it.
type Ticket struct {
	ID        string    `json:"id" db:"id"`
	Fare      float64   `json:"fare" db:"fare"`
	DropOff   string    `json:"drop_off" db:"drop_off"`
	SeatID    string    `json:"seat_id" db:"seat_id"`
	TripID    string    `json:"trip_id" db:"trip_id"`
	UserID    string    `json:"user_id" db:"user_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// BookTicketRequest is the booking request for both cash and online flows.
// OnlineReceipt is required for online bookings and must be absent for cash.
type BookTicketRequest struct {
	TripID         string  `json:"trip_id" binding:"required"`
	UserID         string  `json:"user_id" binding:"required"`
	RowPosition    int     `json:"row_position" binding:"required,gte=1"`
	ColumnPosition int     `json:"column_position" binding:"required,gte=1"`
	Fare           float64 `json:"fare" binding:"required,gt=0"`
	DropOff        string  `json:"drop_off" binding:"required"`
	OnlineReceipt  []byte  `json:"online_receipt,omitempty"`
}

// UpdateTicketRequest carries optional ticket mutations. Seat-affecting
// fields (row/column/trip) trigger a seat reposition.
type UpdateTicketRequest struct {
	RowPosition    *int     `json:"row_position" binding:"omitempty,gte=1"`
	ColumnPosition *int     `json:"column_position" binding:"omitempty,gte=1"`
	TripID         *string  `json:"trip_id"`
	UserID         *string  `json:"user_id"`
	Fare           *float64 `json:"fare" binding:"omitempty,gt=0"`
	DropOff        *string  `json:"drop_off"`
}

// TicketResponse is the full ticket representation with nested seat,
// trip, user and payment history
type TicketResponse struct {
	ID       string           `json:"id"`
	Fare     float64          `json:"fare"`
	DropOff  string           `json:"drop_off"`
	Seat     *SeatSummary     `json:"seat"`
	Trip     *TripSummary     `json:"trip"`
	User     *UserSummary     `json:"user"`
	Payments []PaymentSummary `json:"payments"`
}
