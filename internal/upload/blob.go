package upload

import (
	"context"
	"io"
)

// BlobStore abstracts durable byte storage for uploaded files.
type BlobStore interface {
	// Save writes the stream under the given name and reports the number
	// of bytes written. Implementations must not leave partial artifacts
	// behind on failure.
	Save(ctx context.Context, name string, r io.Reader, size int64) (int64, error)
	// Open returns a reader over the stored bytes.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	// Exists reports whether bytes are stored under the name.
	Exists(ctx context.Context, name string) (bool, error)
	// Remove deletes the stored bytes.
	Remove(ctx context.Context, name string) error
}
