package models

import (
	"time"
)

// UserDB represents a user record in the database
type UserDB struct {
	ID           int64      `json:"id" db:"id"`                   // Primary key, assigned by the store
	Name         string     `json:"name" db:"name"`               // Display name
	Email        string     `json:"email" db:"email"`             // Unique email, login key
	PasswordHash string     `json:"-" db:"password_hash"`         // bcrypt hash, never serialized
	IsVerified   bool       `json:"isVerified" db:"is_verified"`  // Flips to true once via the verification flow
	IsAdmin      bool       `json:"isAdmin" db:"is_admin"`        // Set at creation
	LoginCount   int64      `json:"loginCount" db:"login_count"`  // Incremented on every successful login
	LastLogin    *time.Time `json:"lastLogin" db:"last_login"`    // Set on every successful login
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`    // Creation timestamp
	UpdatedAt    time.Time  `json:"updatedAt" db:"updated_at"`    // Last update timestamp
}

// Sanitized returns a copy of the user with the password hash stripped,
// safe to hand to the HTTP layer.
func (u *UserDB) Sanitized() *UserDB {
	if u == nil {
		return nil
	}
	safe := *u
	safe.PasswordHash = ""
	return &safe
}
