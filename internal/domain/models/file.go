package models

import (
	"time"
)

// File is a logical file record bound to a folder. The bytes themselves
// live behind PhysicalRef, an opaque locator returned by the blob store;
// this core never interprets it beyond passing it through.
type File struct {
	ID          string    `json:"id" db:"id"`
	FolderID    string    `json:"folder_id" db:"folder_id"`
	Name        string    `json:"name" db:"name"`
	Slug        string    `json:"slug" db:"slug"`
	Path        string    `json:"path" db:"path"` // folder.Path + "/" + Name
	PhysicalRef string    `json:"physical_ref" db:"physical_ref"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
