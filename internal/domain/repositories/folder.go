package repositories

import (
	"context"

	"stash/internal/domain/models"
)

// FolderRepository defines data access operations for folders
type FolderRepository interface {
	// Create inserts a new folder. The slug and path unique indexes are the
	// real uniqueness boundary; a violation surfaces as a ConflictError.
	Create(ctx context.Context, folder *models.Folder) error

	// GetByID retrieves a folder by ID
	GetByID(ctx context.Context, id string) (*models.Folder, error)

	// GetByPath retrieves a folder by its exact materialized path
	GetByPath(ctx context.Context, path string) (*models.Folder, error)

	// GetBySlug retrieves a folder by slug, nil if none exists
	GetBySlug(ctx context.Context, slug string) (*models.Folder, error)

	// Delete removes the folder row only - children are not touched
	Delete(ctx context.Context, id string) error

	// ListChildren lists immediate sub-folders in creation order
	ListChildren(ctx context.Context, parentID string) ([]models.Folder, error)

	// ListRoots lists a user's root folders in creation order
	ListRoots(ctx context.Context, userID string) ([]models.Folder, error)
}
