// Package storage provides the narrow object-store interface the insight
// pipeline needs and its Amazon S3 implementation.
package storage

import (
	"context"
	"io"
	"time"
)

// ObjectInfo contains metadata about a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ContentType  string
	LastModified time.Time
}

// Storage defines the interface for object storage operations. The bucket is
// addressed per call because each request names its own storage location.
type Storage interface {
	// Head returns metadata for the object at the given key without reading
	// its body. A missing object surfaces as an errors.NotFound AppError so
	// callers can distinguish it from transport faults.
	Head(ctx context.Context, bucket, key string) (*ObjectInfo, error)

	// Download returns a reader for the object at the given key.
	// The caller is responsible for closing the returned ReadCloser.
	Download(ctx context.Context, bucket, key string) (io.ReadCloser, error)
}
