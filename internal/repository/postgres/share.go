package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"stash/internal/domain"
	"stash/internal/domain/models"
	"stash/internal/domain/repositories"
)

// PostgresShareTokenRepository implements the ShareTokenRepository interface
type PostgresShareTokenRepository struct {
	pool *pgxpool.Pool
}

// NewShareTokenRepository creates a new share token repository
func NewShareTokenRepository(config *RepositoryConfig) repositories.ShareTokenRepository {
	return &PostgresShareTokenRepository{pool: config.Pool}
}

// Create persists a freshly issued token
func (r *PostgresShareTokenRepository) Create(ctx context.Context, token *models.ShareToken) error {
	query := `
		INSERT INTO share_tokens (token, user_id, expires_at, created_at)
		VALUES ($1, $2, $3, $4)
	`

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		token.Token,
		token.UserID,
		token.ExpiresAt,
		token.CreatedAt,
	)
	if err != nil {
		if IsPgForeignKeyError(err) {
			// The user vanished between the service's check and the insert
			return fmt.Errorf("user %s: %w", token.UserID, domain.ErrNotFound)
		}
		return fmt.Errorf("create share token: %w", err)
	}

	return nil
}

// GetByToken retrieves a token row. Expiry is judged by the caller so the
// absent and expired cases stay distinguishable internally (they collapse
// into one error at the service boundary).
func (r *PostgresShareTokenRepository) GetByToken(ctx context.Context, token string) (*models.ShareToken, error) {
	query := `
		SELECT token, user_id, expires_at, created_at
		FROM share_tokens
		WHERE token = $1
	`

	executor := GetExecutor(ctx, r.pool)
	var t models.ShareToken
	err := executor.QueryRow(ctx, query, token).Scan(
		&t.Token,
		&t.UserID,
		&t.ExpiresAt,
		&t.CreatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("share token: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get share token: %w", err)
	}

	return &t, nil
}
