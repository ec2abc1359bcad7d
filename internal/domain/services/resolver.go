package services

import (
	"context"

	"stash/internal/domain/models"
)

// PathResolver maps slash-delimited logical paths to tree nodes.
//
// Resolution is an exact-match lookup against the materialized path
// column - no segment walk at read time. The write path pays for this by
// computing and storing the path on every creation.
type PathResolver interface {
	// ResolveFolderPath resolves a percent-decoded folder path.
	// The empty path is the caller's problem (root listing), not ours.
	ResolveFolderPath(ctx context.Context, path string) (*models.Folder, error)

	// ResolveFilePath composes folderPath + "/" + fileName and resolves it
	ResolveFilePath(ctx context.Context, folderPath, fileName string) (*models.File, error)
}
