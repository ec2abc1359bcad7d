package repositories

import (
	"context"

	"stash/internal/domain/models"
)

// FileRepository defines data access operations for logical file records
type FileRepository interface {
	// Create inserts a new file record; slug/path collisions surface as
	// ConflictError backed by the unique indexes.
	Create(ctx context.Context, file *models.File) error

	// GetByID retrieves a file by ID
	GetByID(ctx context.Context, id string) (*models.File, error)

	// GetByPath retrieves a file by its exact logical path
	GetByPath(ctx context.Context, path string) (*models.File, error)

	// GetBySlug retrieves a file by slug, nil if none exists
	GetBySlug(ctx context.Context, slug string) (*models.File, error)

	// Delete removes the file record
	Delete(ctx context.Context, id string) error

	// ListByFolder lists files in a folder in creation order
	ListByFolder(ctx context.Context, folderID string) ([]models.File, error)
}
