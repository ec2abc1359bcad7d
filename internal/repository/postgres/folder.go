package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"stash/internal/domain"
	"stash/internal/domain/models"
	"stash/internal/domain/repositories"
)

// PostgresFolderRepository implements the FolderRepository interface
type PostgresFolderRepository struct {
	pool *pgxpool.Pool
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(config *RepositoryConfig) repositories.FolderRepository {
	return &PostgresFolderRepository{pool: config.Pool}
}

// Create inserts a new folder. The unique indexes on slug and path are
// the real uniqueness boundary: a concurrent creator that raced past the
// advisory slug pre-check lands here and gets a ConflictError.
func (r *PostgresFolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	query := `
		INSERT INTO folders (id, user_id, parent_id, name, slug, path, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		folder.ID,
		folder.UserID,
		folder.ParentID,
		folder.Name,
		folder.Slug,
		folder.Path,
		folder.CreatedAt,
	)

	if err != nil {
		if IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("a folder named %q already exists", folder.Name),
				ResourceType: "folder",
				Slug:         folder.Slug,
			}
		}
		return fmt.Errorf("create folder: %w", err)
	}

	return nil
}

// GetByID retrieves a folder by ID
func (r *PostgresFolderRepository) GetByID(ctx context.Context, id string) (*models.Folder, error) {
	query := `
		SELECT id, user_id, parent_id, name, slug, path, created_at
		FROM folders
		WHERE id = $1
	`

	executor := GetExecutor(ctx, r.pool)
	return r.scanOne(executor.QueryRow(ctx, query, id), fmt.Sprintf("folder %s", id))
}

// GetByPath retrieves a folder by its exact materialized path
func (r *PostgresFolderRepository) GetByPath(ctx context.Context, path string) (*models.Folder, error) {
	query := `
		SELECT id, user_id, parent_id, name, slug, path, created_at
		FROM folders
		WHERE path = $1
	`

	executor := GetExecutor(ctx, r.pool)
	return r.scanOne(executor.QueryRow(ctx, query, path), fmt.Sprintf("folder at path %q", path))
}

// GetBySlug retrieves a folder by slug, nil if none exists
func (r *PostgresFolderRepository) GetBySlug(ctx context.Context, slug string) (*models.Folder, error) {
	query := `
		SELECT id, user_id, parent_id, name, slug, path, created_at
		FROM folders
		WHERE slug = $1
	`

	executor := GetExecutor(ctx, r.pool)
	var folder models.Folder
	err := executor.QueryRow(ctx, query, slug).Scan(
		&folder.ID,
		&folder.UserID,
		&folder.ParentID,
		&folder.Name,
		&folder.Slug,
		&folder.Path,
		&folder.CreatedAt,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, nil // not found is not an error for a pre-check
		}
		return nil, fmt.Errorf("get folder by slug: %w", err)
	}
	return &folder, nil
}

// Delete removes the folder row only. Children are untouched: they stay
// addressable by id but unreachable by path traversal from this ancestor.
func (r *PostgresFolderRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM folders WHERE id = $1`

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ListChildren lists immediate sub-folders in creation order
func (r *PostgresFolderRepository) ListChildren(ctx context.Context, parentID string) ([]models.Folder, error) {
	query := `
		SELECT id, user_id, parent_id, name, slug, path, created_at
		FROM folders
		WHERE parent_id = $1
		ORDER BY created_at ASC
	`

	return r.list(ctx, query, parentID)
}

// ListRoots lists a user's root folders in creation order
func (r *PostgresFolderRepository) ListRoots(ctx context.Context, userID string) ([]models.Folder, error) {
	query := `
		SELECT id, user_id, parent_id, name, slug, path, created_at
		FROM folders
		WHERE user_id = $1 AND parent_id IS NULL
		ORDER BY created_at ASC
	`

	return r.list(ctx, query, userID)
}

func (r *PostgresFolderRepository) list(ctx context.Context, query string, arg interface{}) ([]models.Folder, error) {
	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	defer rows.Close()

	var folders []models.Folder
	for rows.Next() {
		var folder models.Folder
		err := rows.Scan(
			&folder.ID,
			&folder.UserID,
			&folder.ParentID,
			&folder.Name,
			&folder.Slug,
			&folder.Path,
			&folder.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, folder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}

	return folders, nil
}

func (r *PostgresFolderRepository) scanOne(row interface{ Scan(...interface{}) error }, what string) (*models.Folder, error) {
	var folder models.Folder
	err := row.Scan(
		&folder.ID,
		&folder.UserID,
		&folder.ParentID,
		&folder.Name,
		&folder.Slug,
		&folder.Path,
		&folder.CreatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("%s: %w", what, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get %s: %w", what, err)
	}

	return &folder, nil
}
