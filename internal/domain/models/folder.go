package models

import (
	"time"
)

// Folder is a node in a user's folder forest.
//
// Slug and Path are denormalized: both are computed at creation time and
// never mutated afterwards (there is no rename - renaming would require a
// cascading path rewrite of the whole subtree). Path is the sole key used
// for multi-segment path resolution, so lookups stay O(1) at any depth.
type Folder struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	ParentID  *string   `json:"folder_id" db:"parent_id"` // NULL = root level
	Name      string    `json:"name" db:"name"`
	Slug      string    `json:"slug" db:"slug"`
	Path      string    `json:"path" db:"path"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// IsRoot reports whether the folder sits at the top of the forest.
func (f *Folder) IsRoot() bool {
	return f.ParentID == nil
}
