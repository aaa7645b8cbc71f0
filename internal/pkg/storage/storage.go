package storage

import (
	"context"
	"io"
)

// Storage is the interface for avatar object storage backends.
type Storage interface {
	// Put stores an object under the given key.
	Put(ctx context.Context, key string, reader io.Reader, contentType string) error

	// Get retrieves an object by key.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes an object by key. Deleting a missing object is not an error.
	Delete(ctx context.Context, key string) error

	// GetURL returns the public URL for a stored object.
	GetURL(key string) string
}
