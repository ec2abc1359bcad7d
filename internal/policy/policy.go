// Package policy loads the storage-policy file governing the behaviors the
// tree core treats as configurable rather than hard law: whether files may
// live directly under a root folder, what happens when a referenced parent
// folder is missing, what deleting a non-empty folder does, and how long
// share tokens live.
package policy

import (
	"embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed config/storage.yaml
var configFiles embed.FS

// ParentFallback controls CreateFolder when the referenced parent is absent.
type ParentFallback string

const (
	// ParentFallbackFail rejects the creation with a not-found error
	ParentFallbackFail ParentFallback = "fail"
	// ParentFallbackRoot silently creates the folder at root instead
	ParentFallbackRoot ParentFallback = "root"
)

// DeleteChildren controls DeleteFolder on non-empty folders.
type DeleteChildren string

const (
	// DeleteChildrenOrphan deletes the row only; children stay addressable
	// by id but unreachable by path traversal from the deleted ancestor
	DeleteChildrenOrphan DeleteChildren = "orphan"
	// DeleteChildrenDeny refuses to delete a non-empty folder
	DeleteChildrenDeny DeleteChildren = "deny"
)

// Storage is the parsed storage policy.
type Storage struct {
	AllowRootFiles bool           `yaml:"allow_root_files"`
	ParentFallback ParentFallback `yaml:"parent_fallback"`
	DeleteChildren DeleteChildren `yaml:"delete_children"`
	ShareTTLHours  int            `yaml:"share_ttl_hours"`
}

// ShareTTL returns the share-token lifetime as a duration.
func (s *Storage) ShareTTL() time.Duration {
	return time.Duration(s.ShareTTLHours) * time.Hour
}

// Load parses the embedded storage policy file.
func Load() (*Storage, error) {
	data, err := configFiles.ReadFile("config/storage.yaml")
	if err != nil {
		return nil, fmt.Errorf("read storage policy: %w", err)
	}

	var s Storage
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse storage policy: %w", err)
	}

	if err := s.validate(); err != nil {
		return nil, err
	}

	return &s, nil
}

func (s *Storage) validate() error {
	switch s.ParentFallback {
	case ParentFallbackFail, ParentFallbackRoot:
	default:
		return fmt.Errorf("invalid parent_fallback %q", s.ParentFallback)
	}

	switch s.DeleteChildren {
	case DeleteChildrenOrphan, DeleteChildrenDeny:
	default:
		return fmt.Errorf("invalid delete_children %q", s.DeleteChildren)
	}

	if s.ShareTTLHours <= 0 {
		return fmt.Errorf("share_ttl_hours must be positive, got %d", s.ShareTTLHours)
	}

	return nil
}
