package service

import (
	"context"
	"fmt"
	"strings"

	"stash/internal/domain"
	"stash/internal/domain/models"
	"stash/internal/domain/repositories"
	"stash/internal/domain/services"
)

type pathResolver struct {
	folderRepo repositories.FolderRepository
	fileRepo   repositories.FileRepository
}

// NewPathResolver creates a path resolver backed by the materialized path
// columns. Every resolution is a single exact-match lookup - the tree is
// never walked at read time, whatever the depth.
func NewPathResolver(folderRepo repositories.FolderRepository, fileRepo repositories.FileRepository) services.PathResolver {
	return &pathResolver{folderRepo: folderRepo, fileRepo: fileRepo}
}

// ResolveFolderPath resolves a percent-decoded folder path to its folder.
func (r *pathResolver) ResolveFolderPath(ctx context.Context, path string) (*models.Folder, error) {
	path = strings.Trim(path, "/")
	if path == "" {
		// The empty path denotes the root listing, which has no single
		// folder - callers route it to ListRoots instead
		return nil, fmt.Errorf("%w: empty folder path", domain.ErrValidation)
	}

	return r.folderRepo.GetByPath(ctx, path)
}

// ResolveFilePath composes folderPath + "/" + fileName and resolves it
// against the files' logical path column.
func (r *pathResolver) ResolveFilePath(ctx context.Context, folderPath, fileName string) (*models.File, error) {
	folderPath = strings.Trim(folderPath, "/")
	if folderPath == "" || fileName == "" {
		return nil, fmt.Errorf("%w: folder path and file name are required", domain.ErrValidation)
	}

	return r.fileRepo.GetByPath(ctx, folderPath+"/"+fileName)
}
