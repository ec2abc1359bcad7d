package models

import (
	"time"
)

// ShareToken is a random, time-limited credential granting the bearer the
// issuing user's access without a password. It is a scoped capability, not
// a session: middleware resolves it on every request and it dies at
// ExpiresAt. Expired rows are not garbage-collected here.
type ShareToken struct {
	Token     string    `json:"token" db:"token"`
	UserID    string    `json:"user_id" db:"user_id"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Expired reports whether the token is past its lifetime at the given instant.
func (t *ShareToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
