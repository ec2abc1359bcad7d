package services

import (
	"context"

	"stash/internal/domain/models"
)

// ShareService issues and redeems share tokens
type ShareService interface {
	// Issue mints a random token impersonating userID for a fixed TTL
	Issue(ctx context.Context, userID string) (*IssuedShare, error)

	// Resolve returns the user a valid token impersonates. Absent and
	// expired tokens are indistinguishable to the caller.
	Resolve(ctx context.Context, token string) (*models.User, error)
}

// IssuedShare is the result of minting a share token
type IssuedShare struct {
	Token     string `json:"token"`
	URL       string `json:"url"`
	ExpiresAt string `json:"expires_at"`
}
