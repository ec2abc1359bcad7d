package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"stash/internal/config"
	"stash/internal/domain"
	"stash/internal/domain/models"
	"stash/internal/domain/repositories"
	"stash/internal/domain/services"
	"stash/internal/policy"
)

type fileService struct {
	fileRepo   repositories.FileRepository
	folderRepo repositories.FolderRepository
	slugs      *SlugChecker
	blobs      services.BlobStore
	storage    *policy.Storage
	logger     *slog.Logger
}

// NewFileService creates a new file service
func NewFileService(
	fileRepo repositories.FileRepository,
	folderRepo repositories.FolderRepository,
	slugs *SlugChecker,
	blobs services.BlobStore,
	storage *policy.Storage,
	logger *slog.Logger,
) services.FileService {
	return &fileService{
		fileRepo:   fileRepo,
		folderRepo: folderRepo,
		slugs:      slugs,
		blobs:      blobs,
		storage:    storage,
		logger:     logger,
	}
}

// CreateFile records a logical file in an existing folder. The logical
// path (folder.path + "/" + name) is what lookups use; physicalRef is
// passed through untouched.
func (s *fileService) CreateFile(ctx context.Context, req *services.CreateFileRequest) (*models.File, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	folder, err := s.folderRepo.GetByID(ctx, req.FolderID)
	if err != nil {
		return nil, err
	}

	if folder.IsRoot() && !s.storage.AllowRootFiles {
		return nil, fmt.Errorf("%w: files can only be created inside sub-folders", domain.ErrValidation)
	}

	slug := MakeSlug(req.Name)
	if err := s.slugs.EnsureUnique(ctx, slug, SlugKindFile); err != nil {
		return nil, err
	}

	file := &models.File{
		ID:          uuid.NewString(),
		FolderID:    folder.ID,
		Name:        req.Name,
		Slug:        slug,
		Path:        folder.Path + "/" + req.Name,
		PhysicalRef: req.PhysicalRef,
		CreatedAt:   time.Now(),
	}

	if err := s.fileRepo.Create(ctx, file); err != nil {
		return nil, err
	}

	s.logger.Info("file created",
		"id", file.ID,
		"name", file.Name,
		"path", file.Path,
		"folder_id", file.FolderID,
	)

	return file, nil
}

// Upload streams bytes to the blob store, then records the returned
// physicalRef. A blob failure surfaces as an upstream storage error; the
// record is only written once the bytes are safely stored.
func (s *fileService) Upload(ctx context.Context, folderID, name string, r io.Reader) (*models.File, error) {
	// Resolve the folder first so a bad folder id doesn't cost an upload
	folder, err := s.folderRepo.GetByID(ctx, folderID)
	if err != nil {
		return nil, err
	}

	key := folder.Path + "/" + name
	ref, err := s.blobs.Put(ctx, key, r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}

	file, err := s.CreateFile(ctx, &services.CreateFileRequest{
		FolderID:    folderID,
		Name:        name,
		PhysicalRef: ref,
	})
	if err != nil {
		// Record failed; don't leak the blob
		if delErr := s.blobs.Delete(ctx, ref); delErr != nil {
			s.logger.Warn("orphaned blob after failed file create",
				"ref", ref,
				"error", delErr,
			)
		}
		return nil, err
	}

	return file, nil
}

// GetFile retrieves a file by ID
func (s *fileService) GetFile(ctx context.Context, fileID string) (*models.File, error) {
	return s.fileRepo.GetByID(ctx, fileID)
}

// DeleteFile deletes a file record. Ownership is the caller's job,
// composed through the authorizer with the owning folder's user.
func (s *fileService) DeleteFile(ctx context.Context, fileID string) error {
	file, err := s.fileRepo.GetByID(ctx, fileID)
	if err != nil {
		return err
	}

	if err := s.fileRepo.Delete(ctx, fileID); err != nil {
		return err
	}

	s.logger.Info("file deleted",
		"id", file.ID,
		"name", file.Name,
		"path", file.Path,
	)

	return nil
}

func (s *fileService) validateCreateRequest(req *services.CreateFileRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.FolderID, validation.Required),
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxFileNameLength),
			validation.Match(folderNamePattern).Error("file name cannot contain slashes"),
		),
		validation.Field(&req.PhysicalRef, validation.Required),
	)
}
