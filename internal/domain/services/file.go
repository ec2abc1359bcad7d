package services

import (
	"context"
	"io"

	"stash/internal/domain/models"
)

// FileService handles logical file records. Ownership is deliberately not
// checked here - callers compose it through the Authorizer using the
// owning folder's user.
type FileService interface {
	// CreateFile records a file in a folder; the physical bytes are
	// already stored and addressed by physicalRef
	CreateFile(ctx context.Context, req *CreateFileRequest) (*models.File, error)

	// Upload streams bytes to the blob store and records the result
	Upload(ctx context.Context, folderID, name string, r io.Reader) (*models.File, error)

	// GetFile retrieves a file by ID
	GetFile(ctx context.Context, fileID string) (*models.File, error)

	// DeleteFile deletes a file record
	DeleteFile(ctx context.Context, fileID string) error
}

// CreateFileRequest represents a file record creation request
type CreateFileRequest struct {
	FolderID    string `json:"-"`
	Name        string `json:"name"`
	PhysicalRef string `json:"physical_ref"`
}
