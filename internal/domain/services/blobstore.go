package services

import (
	"context"
	"io"
)

// BlobStore is the external collaborator holding physical bytes. It
// accepts a stream and returns an opaque retrieval URL - the physicalRef
// recorded on File. Nothing in this core interprets the URL.
type BlobStore interface {
	// Put stores the stream under a caller-chosen key and returns the
	// retrieval URL
	Put(ctx context.Context, key string, r io.Reader) (string, error)

	// Delete removes previously stored bytes. Best effort: record
	// deletion does not roll back on blob failure.
	Delete(ctx context.Context, ref string) error
}
