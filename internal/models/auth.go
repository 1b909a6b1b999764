package models

// AuthContext is the authenticated principal, passed explicitly into
// every booking, update and delete call. No service reads a global
// security context.
type AuthContext struct {
	UserID string   `json:"user_id"`
	Email  string   `json:"email"`
	Roles  []string `json:"roles"`
}

// HasRole reports whether the principal carries the given role
func (a AuthContext) HasRole(role string) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsStaff reports whether the principal is ticket staff or an admin
func (a AuthContext) IsStaff() bool {
	return a.HasRole(RoleTicketStaff) || a.HasRole(RoleTransitAdmin)
}

// IsPassengerOnly reports whether the principal has no staff privileges
func (a AuthContext) IsPassengerOnly() bool {
	return !a.IsStaff()
}
