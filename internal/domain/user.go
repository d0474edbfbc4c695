// Package domain contains the core data types for the Field Logbook API.
// This package has near-zero external dependencies and is imported by every
// other internal package (authz, repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role is the authorization role assigned to a User.
type Role string

const (
	// RoleUser is the default role: access limited to resources the user owns.
	RoleUser Role = "user"
	// RoleAdmin grants unrestricted access to every resource.
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is an account that owns trips. PasswordHash is a bcrypt hash and must
// never appear in an API response; it is empty for admin-created accounts that
// have not set a password yet (such accounts cannot log in).
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserUpdate carries the allow-listed mutable fields for a user update.
// Nil pointers mean "leave unchanged". Role is only honoured for admin
// requesters — services reject it on self-update before it reaches the store.
type UserUpdate struct {
	Name     *string
	Email    *string
	Password *string
	Role     *Role
}
