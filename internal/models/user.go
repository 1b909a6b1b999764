package models

import "time"

// Role values assigned to users
const (
	RolePassenger    = "passenger"
	RoleTicketStaff  = "ticket_staff"
	RoleTransitAdmin = "transit_admin"
)

// User represents a registered passenger or staff member
type User struct {
	ID        string      `json:"id" db:"id"`
	Email     string      `json:"email" db:"email"`
	Name      string      `json:"name" db:"name"`
	Roles     StringArray `json:"roles" db:"roles"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt time.Time   `json:"updated_at" db:"updated_at"`
}

// UserSummary is the nested user representation used inside ticket responses
type UserSummary struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// ToSummary converts a User to its summary representation
func (u *User) ToSummary() *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
	}
}
