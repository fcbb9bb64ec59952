package types

import "time"

// Role is the closed set of permission levels an admin account can hold.
// There is no implicit hierarchy between roles: every protected operation
// declares its own allowed-role set.
type Role string

const (
	// RoleSuperAdmin can manage accounts and all site content.
	RoleSuperAdmin Role = "superadmin"

	// RoleAdmin can create accounts and manage all site content.
	RoleAdmin Role = "admin"

	// RoleModerator can manage site content only.
	RoleModerator Role = "moderator"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleModerator:
		return true
	}
	return false
}

// Admin represents a back-office account.
type Admin struct {
	// ID is the unique identifier of the account.
	ID int `json:"id" db:"id"`

	// Username is the unique login name, stored lower-case.
	// Uniqueness is case-insensitive.
	Username string `json:"username" db:"username"`

	// Email is the account's email address, stored lower-case.
	// Uniqueness is case-insensitive.
	Email string `json:"email" db:"email"`

	// Role is the account's permission level.
	Role Role `json:"role" db:"role"`

	// PasswordHash stores the bcrypt hash of the account's password.
	// This field is never exposed in API responses.
	PasswordHash string `json:"-" db:"password_hash"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// UpdatedAt is the timestamp of the most recent update to the account.
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
