package repositories

import (
	"context"

	"stash/internal/domain/models"
)

// ShareTokenRepository defines data access operations for share tokens
type ShareTokenRepository interface {
	// Create persists a freshly issued token
	Create(ctx context.Context, token *models.ShareToken) error

	// GetByToken retrieves a token row, ErrNotFound if absent.
	// Expiry is judged by the service, not here.
	GetByToken(ctx context.Context, token string) (*models.ShareToken, error)
}
