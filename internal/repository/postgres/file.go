package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"stash/internal/domain"
	"stash/internal/domain/models"
	"stash/internal/domain/repositories"
)

// PostgresFileRepository implements the FileRepository interface
type PostgresFileRepository struct {
	pool *pgxpool.Pool
}

// NewFileRepository creates a new file repository
func NewFileRepository(config *RepositoryConfig) repositories.FileRepository {
	return &PostgresFileRepository{pool: config.Pool}
}

// Create inserts a new file record; the unique indexes on slug and path
// close the check-then-insert race.
func (r *PostgresFileRepository) Create(ctx context.Context, file *models.File) error {
	query := `
		INSERT INTO files (id, folder_id, name, slug, path, physical_ref, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		file.ID,
		file.FolderID,
		file.Name,
		file.Slug,
		file.Path,
		file.PhysicalRef,
		file.CreatedAt,
	)

	if err != nil {
		if IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("a file named %q already exists", file.Name),
				ResourceType: "file",
				Slug:         file.Slug,
			}
		}
		return fmt.Errorf("create file: %w", err)
	}

	return nil
}

// GetByID retrieves a file by ID
func (r *PostgresFileRepository) GetByID(ctx context.Context, id string) (*models.File, error) {
	query := `
		SELECT id, folder_id, name, slug, path, physical_ref, created_at
		FROM files
		WHERE id = $1
	`

	executor := GetExecutor(ctx, r.pool)
	return scanFile(executor.QueryRow(ctx, query, id), fmt.Sprintf("file %s", id))
}

// GetByPath retrieves a file by its exact logical path
func (r *PostgresFileRepository) GetByPath(ctx context.Context, path string) (*models.File, error) {
	query := `
		SELECT id, folder_id, name, slug, path, physical_ref, created_at
		FROM files
		WHERE path = $1
	`

	executor := GetExecutor(ctx, r.pool)
	return scanFile(executor.QueryRow(ctx, query, path), fmt.Sprintf("file at path %q", path))
}

// GetBySlug retrieves a file by slug, nil if none exists
func (r *PostgresFileRepository) GetBySlug(ctx context.Context, slug string) (*models.File, error) {
	query := `
		SELECT id, folder_id, name, slug, path, physical_ref, created_at
		FROM files
		WHERE slug = $1
	`

	executor := GetExecutor(ctx, r.pool)
	var file models.File
	err := executor.QueryRow(ctx, query, slug).Scan(
		&file.ID,
		&file.FolderID,
		&file.Name,
		&file.Slug,
		&file.Path,
		&file.PhysicalRef,
		&file.CreatedAt,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get file by slug: %w", err)
	}
	return &file, nil
}

// Delete removes the file record
func (r *PostgresFileRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM files WHERE id = $1`

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete file: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ListByFolder lists files in a folder in creation order
func (r *PostgresFileRepository) ListByFolder(ctx context.Context, folderID string) ([]models.File, error) {
	query := `
		SELECT id, folder_id, name, slug, path, physical_ref, created_at
		FROM files
		WHERE folder_id = $1
		ORDER BY created_at ASC
	`

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, folderID)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer rows.Close()

	var files []models.File
	for rows.Next() {
		var file models.File
		err := rows.Scan(
			&file.ID,
			&file.FolderID,
			&file.Name,
			&file.Slug,
			&file.Path,
			&file.PhysicalRef,
			&file.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		files = append(files, file)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate files: %w", err)
	}

	return files, nil
}

func scanFile(row interface{ Scan(...interface{}) error }, what string) (*models.File, error) {
	var file models.File
	err := row.Scan(
		&file.ID,
		&file.FolderID,
		&file.Name,
		&file.Slug,
		&file.Path,
		&file.PhysicalRef,
		&file.CreatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("%s: %w", what, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get %s: %w", what, err)
	}

	return &file, nil
}
