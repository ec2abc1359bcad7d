package config

const (
	// MaxFolderNameLength is the maximum length for folder names.
	// Matches the form-level limit the frontend enforces (1-30 chars).
	MaxFolderNameLength = 30

	// MaxFileNameLength is the maximum length for file names.
	// Same as folder names for consistency.
	MaxFileNameLength = 30

	// MaxUsernameLength and MaxPasswordLength bound sign-up fields.
	MaxUsernameLength = 10
	MaxPasswordLength = 16

	// MaxPathLength is the maximum length for full materialized paths.
	// Longer paths indicate overly deep hierarchies (anti-pattern).
	MaxPathLength = 500

	// MaxUploadBytes caps a single multipart upload.
	MaxUploadBytes = 50 << 20
)
