package models

import (
	"time"
)

// User owns zero or more root folders. Created once at sign-up and
// immutable afterwards.
type User struct {
	ID           string    `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
