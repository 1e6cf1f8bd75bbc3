package models

import "time"

// Role gates which operations a request may perform.
type Role string

const (
	RoleReader     Role = "reader"
	RoleEditor     Role = "editor"
	RoleAdmin      Role = "admin"
	RoleSuperadmin Role = "superadmin"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleReader, RoleEditor, RoleAdmin, RoleSuperadmin:
		return true
	}
	return false
}

// User statuses. Accounts are soft-disabled via status, never deleted on
// deactivation.
const (
	UserStatusActive    = "active"
	UserStatusInactive  = "inactive"
	UserStatusSuspended = "suspended"
)

// User represents a user account in the system.
type User struct {
	ID           string     `json:"id"`
	FullName     string     `json:"fullName"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"` // Never expose this to the client
	Role         Role       `json:"role"`
	Status       string     `json:"status"`
	RefreshToken string     `json:"-"` // Single active session token
	ResetToken   string     `json:"-"`
	ResetExpiry  *time.Time `json:"-"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// IsActive reports whether the account may authenticate.
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// Sanitized returns a copy safe to attach to a request context or serialize:
// credential material is cleared.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	u.RefreshToken = ""
	u.ResetToken = ""
	u.ResetExpiry = nil
	return u
}
