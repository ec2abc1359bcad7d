package services

import (
	"context"

	"stash/internal/domain/models"
)

// FolderService handles folder tree business logic
type FolderService interface {
	// CreateFolder creates a new folder, computing its slug and
	// materialized path
	CreateFolder(ctx context.Context, req *CreateFolderRequest) (*models.Folder, error)

	// DeleteFolder deletes a folder after an ownership check
	DeleteFolder(ctx context.Context, folderID, requestingUserID string) error

	// ListChildren lists a folder's sub-folders and files
	ListChildren(ctx context.Context, folderID string) (*FolderContents, error)

	// ListRoots lists a user's root folders
	ListRoots(ctx context.Context, userID string) ([]models.Folder, error)
}

// CreateFolderRequest represents a folder creation request
type CreateFolderRequest struct {
	UserID   string  `json:"-"`
	Name     string  `json:"name"`
	ParentID *string `json:"folder_id,omitempty"` // nil or "/" sentinel = root
}

// FolderContents is a folder listing: sub-folders first, then files,
// each in creation order.
type FolderContents struct {
	Folder  *models.Folder  `json:"folder,omitempty"` // nil for a root listing
	Folders []models.Folder `json:"folders"`
	Files   []models.File   `json:"files"`
}
