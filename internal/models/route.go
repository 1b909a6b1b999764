package models

import "time"

// Route represents a master route between two terminals
type Route struct {
	ID          string      `json:"id" db:"id"`
	Origin      string      `json:"origin" db:"origin"`
	Destination string      `json:"destination" db:"destination"`
	Stops       StringArray `json:"stops" db:"stops"`
	BasePrice   float64     `json:"base_price" db:"base_price"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"`
}

// RouteSummary is the nested route representation used inside trip responses
type RouteSummary struct {
	ID          string   `json:"id"`
	Origin      string   `json:"origin"`
	Destination string   `json:"destination"`
	Stops       []string `json:"stops"`
	BasePrice   float64  `json:"base_price"`
}

// ToSummary converts a Route to its summary representation
func (r *Route) ToSummary() *RouteSummary {
	if r == nil {
		return nil
	}
	return &RouteSummary{
		ID:          r.ID,
		Origin:      r.Origin,
		Destination: r.Destination,
		Stops:       r.Stops,
		BasePrice:   r.BasePrice,
	}
}
