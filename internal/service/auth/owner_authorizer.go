package auth

import (
	"context"
	"fmt"

	"stash/internal/domain"
	"stash/internal/domain/repositories"
	"stash/internal/domain/services"
)

// OwnerAuthorizer implements ResourceAuthorizer with plain ownership:
// a user may touch a folder they own, and a file whose folder they own.
// File operations stay ownership-free and compose this at the boundary.
type OwnerAuthorizer struct {
	folderRepo repositories.FolderRepository
	fileRepo   repositories.FileRepository
}

// NewOwnerAuthorizer creates a new ownership-based authorizer
func NewOwnerAuthorizer(folderRepo repositories.FolderRepository, fileRepo repositories.FileRepository) services.ResourceAuthorizer {
	return &OwnerAuthorizer{folderRepo: folderRepo, fileRepo: fileRepo}
}

// CanAccessFolder errs with ErrForbidden unless userID owns the folder
func (a *OwnerAuthorizer) CanAccessFolder(ctx context.Context, userID, folderID string) error {
	folder, err := a.folderRepo.GetByID(ctx, folderID)
	if err != nil {
		return fmt.Errorf("get folder for auth: %w", err)
	}

	if folder.UserID != userID {
		return fmt.Errorf("access denied to folder %s: %w", folderID, domain.ErrForbidden)
	}

	return nil
}

// CanAccessFile errs with ErrForbidden unless userID owns the file's folder
func (a *OwnerAuthorizer) CanAccessFile(ctx context.Context, userID, fileID string) error {
	file, err := a.fileRepo.GetByID(ctx, fileID)
	if err != nil {
		return fmt.Errorf("get file for auth: %w", err)
	}

	return a.CanAccessFolder(ctx, userID, file.FolderID)
}
