package models

import "time"

// PaymentStatus represents the approval state of a payment
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusApproved PaymentStatus = "approved"
	PaymentStatusRejected PaymentStatus = "rejected"
)

// Valid reports whether the status is one of the known states
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusApproved, PaymentStatusRejected:
		return true
	}
	return false
}

// PaymentType represents how a payment was made
type PaymentType string

const (
	PaymentTypeCash   PaymentType = "cash"
	PaymentTypeOnline PaymentType = "online"
)

// PaymentPurpose represents what a payment is for
type PaymentPurpose string

const (
	PaymentPurposeTicketFare PaymentPurpose = "ticket_fare"
	PaymentPurposeRefund     PaymentPurpose = "refund"
)

// Payment is a monetary record tied to a ticket. A ticket may accumulate
// several payments (re-payment history); each payment has its own
// approval state machine.
type Payment struct {
	ID            string         `json:"id" db:"id"`
	TicketID      string         `json:"ticket_id" db:"ticket_id"`
	Amount        float64        `json:"amount" db:"amount"`
	Status        PaymentStatus  `json:"status" db:"status"`
	Type          PaymentType    `json:"type" db:"type"`
	Purpose       PaymentPurpose `json:"purpose" db:"purpose"`
	PaidDate      time.Time      `json:"paid_date" db:"paid_date"`
	OnlineReceipt []byte         `json:"online_receipt,omitempty" db:"online_receipt"`
	CreatedAt     time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at" db:"updated_at"`
}

// PaymentSummary is the payment representation nested in ticket responses
type PaymentSummary struct {
	ID      string         `json:"id"`
	Amount  float64        `json:"amount"`
	Status  PaymentStatus  `json:"status"`
	Type    PaymentType    `json:"type"`
	Purpose PaymentPurpose `json:"purpose"`
	Date    time.Time      `json:"date"`
}

// ToSummary converts a Payment to its summary representation
func (p *Payment) ToSummary() PaymentSummary {
	return PaymentSummary{
		ID:      p.ID,
		Amount:  p.Amount,
		Status:  p.Status,
		Type:    p.Type,
		Purpose: p.Purpose,
		Date:    p.PaidDate,
	}
}

// CreatePaymentRequest records an additional payment against a ticket
type CreatePaymentRequest struct {
	TicketID      string         `json:"ticket_id" binding:"required"`
	Amount        float64        `json:"amount" binding:"required,gt=0"`
	Type          PaymentType    `json:"type" binding:"required,oneof=cash online"`
	Purpose       PaymentPurpose `json:"purpose" binding:"required,oneof=ticket_fare refund"`
	OnlineReceipt []byte         `json:"online_receipt,omitempty"`
}

// UpdatePaymentStatusRequest moves a payment to a new status
type UpdatePaymentStatusRequest struct {
	Status PaymentStatus `json:"status" binding:"required,oneof=pending approved rejected"`
}

// PaymentStatusUpdateResult carries the updated payment plus the seat it
// projected onto, when a seat write happened
type PaymentStatusUpdateResult struct {
	Payment *Payment `json:"payment"`
	Seat    *Seat    `json:"seat,omitempty"`
}
