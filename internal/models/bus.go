package models

import "time"

// Bus represents a physical bus with its seating grid dimensions
type Bus struct {
	ID          string    `json:"id" db:"id"`
	PlateNumber string    `json:"plate_number" db:"plate_number"`
	Name        string    `json:"name" db:"name"`
	Operator    string    `json:"operator" db:"operator"`
	RowCount    int       `json:"row_count" db:"row_count"`
	ColumnCount int       `json:"column_count" db:"column_count"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Capacity returns the total number of seat slots on the bus
func (b *Bus) Capacity() int {
	return b.RowCount * b.ColumnCount
}

// BusSummary is the nested bus representation used inside trip responses
type BusSummary struct {
	ID          string `json:"id"`
	PlateNumber string `json:"plate_number"`
	Name        string `json:"name"`
	Operator    string `json:"operator"`
	RowCount    int    `json:"row_count"`
	ColumnCount int    `json:"column_count"`
}

// ToSummary converts a Bus to its summary representation
func (b *Bus) ToSummary() *BusSummary {
	if b == nil {
		return nil
	}
	return &BusSummary{
		ID:          b.ID,
		PlateNumber: b.PlateNumber,
		Name:        b.Name,
		Operator:    b.Operator,
		RowCount:    b.RowCount,
		ColumnCount: b.ColumnCount,
	}
}
