// Package cache provides an optional read-through cache for file metadata.
// The cache is never authoritative: delete and share invalidate entries, and
// a miss simply falls back to the database.
package cache

import (
	"context"

	"github.com/dmitrijs2005/fileshare/internal/server/models"
)

// FileCache caches file metadata rows by file id.
type FileCache interface {
	// Get returns the cached file, or (nil, nil) on a miss.
	Get(ctx context.Context, id string) (*models.File, error)

	// Set stores the file under its id.
	Set(ctx context.Context, file *models.File) error

	// Delete drops the cached entry for id, if any.
	Delete(ctx context.Context, id string) error
}
