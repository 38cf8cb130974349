// Package files persists file metadata rows. Content bytes never pass
// through here; they live in object storage under a derived key.
package files

import (
	"context"

	"github.com/dmitrijs2005/fileshare/internal/server/models"
)

// Repository is the persistence contract for file metadata.
type Repository interface {
	// Create inserts a new file row.
	Create(ctx context.Context, file *models.File) error

	// GetByID returns the file with the given id, or common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*models.File, error)

	// Delete removes the file row. Permission rows cascade at the schema
	// level, but the lifecycle manager deletes them explicitly first.
	Delete(ctx context.Context, id string) error

	// ListForUser returns the files the user holds any permission on,
	// newest upload first, with the user's level attached to each row.
	ListForUser(ctx context.Context, userID string, limit, offset int) ([]*models.AccessibleFile, error)

	// TotalSizeForUser sums size_bytes over every file the user can access,
	// ignoring pagination.
	TotalSizeForUser(ctx context.Context, userID string) (int64, error)

	// CountForUser counts every file the user can access.
	CountForUser(ctx context.Context, userID string) (int64, error)
}
