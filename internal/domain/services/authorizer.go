package services

import (
	"context"
)

// ResourceAuthorizer answers ownership questions. File operations don't
// duplicate ownership checks; handlers compose them through this
// interface using the owning folder's user.
type ResourceAuthorizer interface {
	// CanAccessFolder errs with ErrForbidden unless userID owns the folder
	CanAccessFolder(ctx context.Context, userID, folderID string) error

	// CanAccessFile errs with ErrForbidden unless userID owns the file's folder
	CanAccessFile(ctx context.Context, userID, fileID string) error
}
