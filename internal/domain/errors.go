package domain

import (
	"errors"
	"net/http"
)

// Sentinel errors for the core operations - match with errors.Is()
var (
	// ErrNotFound indicates a folder, file or user is absent
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a slug or path collision (duplicate name)
	ErrConflict = errors.New("already exists")

	// ErrValidation indicates invalid or missing request parameters
	ErrValidation = errors.New("validation failed")

	// ErrForbidden indicates an ownership mismatch
	ErrForbidden = errors.New("forbidden")

	// ErrUnauthorized indicates a missing or unverifiable caller identity
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidShare covers both absent and expired share tokens.
	// Deliberately undifferentiated so responses don't reveal whether a
	// guessed token ever existed.
	ErrInvalidShare = errors.New("invalid or expired share token")

	// ErrUpstream indicates a blob store failure during upload
	ErrUpstream = errors.New("upstream storage failure")
)

// HTTPError defines errors that carry their own HTTP status code.
type HTTPError interface {
	error
	StatusCode() int
}

// ConflictError is returned on duplicate names and carries the existing
// resource so handlers can point callers at it.
type ConflictError struct {
	Message      string
	ResourceType string // "folder" or "file"
	ResourceID   string
	Slug         string
}

func (e *ConflictError) Error() string { return e.Message }

// StatusCode implements the HTTPError interface
func (e *ConflictError) StatusCode() int { return http.StatusConflict }

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool { return target == ErrConflict }
