package model

import "time"

// Role gates what a session may see and do. Admins manage the full catalog;
// partners only view shows they are associated with.
type Role string

const (
	RoleAdmin   Role = "admin"
	RolePartner Role = "partner"
)

// ValidRole reports whether r is a known role value.
func ValidRole(r Role) bool {
	return r == RoleAdmin || r == RolePartner
}

// User mirrors the users table. Role is immutable once issued; the service
// only ever reads it back.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}
