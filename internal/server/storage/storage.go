// Package storage abstracts the object store holding file content. The rest
// of the server addresses objects only through derived keys; this package
// owns buckets, credentials and call timeouts.
package storage

import (
	"context"
	"io"
	"time"
)

// ObjectStorage is the capability the file lifecycle consumes: write, delete
// and presign objects by key. Implementations apply their own call timeouts;
// a timed-out call surfaces as a plain error and is never retried here.
type ObjectStorage interface {
	// Put writes the content stream as a private object under key.
	Put(ctx context.Context, key string, body io.Reader, size int64) error

	// Delete removes the object under key.
	Delete(ctx context.Context, key string) error

	// PresignGet returns a time-limited URL granting direct read access to
	// the object under key.
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}
