package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
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

var folderNamePattern = regexp.MustCompile(`^[^/]+$`)

type folderService struct {
	folderRepo repositories.FolderRepository
	fileRepo   repositories.FileRepository
	slugs      *SlugChecker
	txManager  repositories.TransactionManager
	storage    *policy.Storage
	logger     *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	folderRepo repositories.FolderRepository,
	fileRepo repositories.FileRepository,
	slugs *SlugChecker,
	txManager repositories.TransactionManager,
	storage *policy.Storage,
	logger *slog.Logger,
) services.FolderService {
	return &folderService{
		folderRepo: folderRepo,
		fileRepo:   fileRepo,
		slugs:      slugs,
		txManager:  txManager,
		storage:    storage,
		logger:     logger,
	}
}

// CreateFolder creates a new folder. The materialized path is computed
// here and only here - nothing else ever writes it - so every persisted
// folder satisfies path == parent.path + "/" + name by construction.
func (s *folderService) CreateFolder(ctx context.Context, req *services.CreateFolderRequest) (*models.Folder, error) {
	// "/" is the form sentinel for root
	if req.ParentID != nil && (*req.ParentID == "" || *req.ParentID == "/") {
		req.ParentID = nil
	}

	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	path := req.Name
	parentID := req.ParentID
	if parentID != nil {
		parent, err := s.folderRepo.GetByID(ctx, *parentID)
		switch {
		case err == nil:
			path = parent.Path + "/" + req.Name
		case errors.Is(err, domain.ErrNotFound) && s.storage.ParentFallback == policy.ParentFallbackRoot:
			// Legacy behavior: a dangling parent reference silently
			// lands the folder at root
			s.logger.Warn("parent folder missing, falling back to root",
				"parent_id", *parentID,
				"name", req.Name,
			)
			parentID = nil
		default:
			return nil, err
		}
	}

	if len(path) > config.MaxPathLength {
		return nil, fmt.Errorf("%w: path exceeds %d characters", domain.ErrValidation, config.MaxPathLength)
	}

	slug := MakeSlug(req.Name)
	if err := s.slugs.EnsureUnique(ctx, slug, SlugKindFolder); err != nil {
		return nil, err
	}

	folder := &models.Folder{
		ID:        uuid.NewString(),
		UserID:    req.UserID,
		ParentID:  parentID,
		Name:      req.Name,
		Slug:      slug,
		Path:      path,
		CreatedAt: time.Now(),
	}

	if err := s.folderRepo.Create(ctx, folder); err != nil {
		return nil, err
	}

	s.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.Name,
		"slug", folder.Slug,
		"path", folder.Path,
		"user_id", folder.UserID,
	)

	return folder, nil
}

// DeleteFolder deletes a folder after an ownership check. What happens to
// children is policy: orphan leaves them addressable by id, deny refuses
// the deletion while any exist.
func (s *folderService) DeleteFolder(ctx context.Context, folderID, requestingUserID string) error {
	folder, err := s.folderRepo.GetByID(ctx, folderID)
	if err != nil {
		return err
	}

	if folder.UserID != requestingUserID {
		return fmt.Errorf("folder %s is not owned by the requesting user: %w", folderID, domain.ErrForbidden)
	}

	if s.storage.DeleteChildren == policy.DeleteChildrenDeny {
		// Check-and-delete inside one transaction so a child created
		// during the check can't slip through unobserved
		return s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
			children, err := s.folderRepo.ListChildren(txCtx, folderID)
			if err != nil {
				return err
			}
			files, err := s.fileRepo.ListByFolder(txCtx, folderID)
			if err != nil {
				return err
			}
			if len(children) > 0 || len(files) > 0 {
				return fmt.Errorf("%w: folder %q is not empty", domain.ErrValidation, folder.Name)
			}
			return s.deleteRow(txCtx, folder)
		})
	}

	return s.deleteRow(ctx, folder)
}

func (s *folderService) deleteRow(ctx context.Context, folder *models.Folder) error {
	if err := s.folderRepo.Delete(ctx, folder.ID); err != nil {
		return err
	}

	s.logger.Info("folder deleted",
		"id", folder.ID,
		"name", folder.Name,
		"path", folder.Path,
		"user_id", folder.UserID,
	)

	return nil
}

// ListChildren lists a folder's contents: sub-folders first, then files,
// each in creation order.
func (s *folderService) ListChildren(ctx context.Context, folderID string) (*services.FolderContents, error) {
	folder, err := s.folderRepo.GetByID(ctx, folderID)
	if err != nil {
		return nil, err
	}

	folders, err := s.folderRepo.ListChildren(ctx, folderID)
	if err != nil {
		return nil, err
	}

	files, err := s.fileRepo.ListByFolder(ctx, folderID)
	if err != nil {
		return nil, err
	}

	return &services.FolderContents{
		Folder:  folder,
		Folders: folders,
		Files:   files,
	}, nil
}

// ListRoots lists a user's root folders
func (s *folderService) ListRoots(ctx context.Context, userID string) ([]models.Folder, error) {
	return s.folderRepo.ListRoots(ctx, userID)
}

func (s *folderService) validateCreateRequest(req *services.CreateFolderRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxFolderNameLength),
			validation.Match(folderNamePattern).Error("folder name cannot contain slashes"),
		),
	)
}
