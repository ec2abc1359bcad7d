package service

import (
	"context"
	"fmt"
	"strings"

	"stash/internal/domain"
	"stash/internal/domain/repositories"
)

// MakeSlug derives a URL-safe identifier from a human-entered name:
// lowercased, trimmed, internal whitespace runs collapsed to a single
// hyphen. Deterministic and pure.
func MakeSlug(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

// SlugKind selects which entity namespace a uniqueness check runs against.
type SlugKind string

const (
	SlugKindFolder SlugKind = "folder"
	SlugKindFile   SlugKind = "file"
)

// SlugChecker performs the advisory slug uniqueness pre-check. Slugs are
// unique across ALL entities of a kind, system-wide - an inherited design
// choice, not a per-parent rule.
//
// The check is fail-fast only: two concurrent creators can both pass it.
// The unique index in the storage layer is the source of truth, and the
// second writer's insert comes back as a ConflictError.
type SlugChecker struct {
	folderRepo repositories.FolderRepository
	fileRepo   repositories.FileRepository
}

// NewSlugChecker creates a slug checker over both entity namespaces
func NewSlugChecker(folderRepo repositories.FolderRepository, fileRepo repositories.FileRepository) *SlugChecker {
	return &SlugChecker{folderRepo: folderRepo, fileRepo: fileRepo}
}

// EnsureUnique returns a ConflictError if an entity of the given kind
// already holds the slug.
func (c *SlugChecker) EnsureUnique(ctx context.Context, slug string, kind SlugKind) error {
	switch kind {
	case SlugKindFolder:
		existing, err := c.folderRepo.GetBySlug(ctx, slug)
		if err != nil {
			return fmt.Errorf("check folder slug: %w", err)
		}
		if existing != nil {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("a folder named %q already exists", existing.Name),
				ResourceType: "folder",
				ResourceID:   existing.ID,
				Slug:         slug,
			}
		}
	case SlugKindFile:
		existing, err := c.fileRepo.GetBySlug(ctx, slug)
		if err != nil {
			return fmt.Errorf("check file slug: %w", err)
		}
		if existing != nil {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("a file named %q already exists", existing.Name),
				ResourceType: "file",
				ResourceID:   existing.ID,
				Slug:         slug,
			}
		}
	default:
		return fmt.Errorf("%w: unknown slug kind %q", domain.ErrValidation, kind)
	}

	return nil
}
