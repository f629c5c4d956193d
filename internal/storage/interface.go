package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by GetFile when nothing is stored at the path
var ErrNotFound = errors.New("storage: file not found")

// StorageClient defines the interface for report artifact storage. Paths are
// slash-separated and relative to the storage root.
type StorageClient interface {
	// Close closes the storage client
	Close() error

	// StoreFile stores a file at the specified path, replacing any previous content
	StoreFile(ctx context.Context, filePath string, fileData []byte) error

	// GetFile retrieves a file from the specified path
	GetFile(ctx context.Context, filePath string) ([]byte, error)

	// ListReports returns report folder paths that contain an index page,
	// newest first. A non-positive limit returns all of them.
	ListReports(ctx context.Context, limit int) ([]string, error)
}
