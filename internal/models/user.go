package models

import (
	"time"

	"github.com/google/uuid"
)

// Roles known to the system. Every user carries exactly one.
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
	RoleSupplier = "supplier"
)

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleEmployee || role == RoleSupplier
}

type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"` // Never serialize in JSON
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
