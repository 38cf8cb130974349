// Package permissions persists the (file, user) → level mapping. The schema
// enforces at most one row per pair; while a file exists exactly one row per
// file carries the full level (the owner's).
package permissions

import (
	"context"

	"github.com/dmitrijs2005/fileshare/internal/server/models"
)

// Repository is the persistence contract for file permissions.
type Repository interface {
	// Create inserts a permission row. A duplicate (file, user) pair
	// returns common.ErrorAlreadyExists.
	Create(ctx context.Context, perm *models.Permission) error

	// Get returns the permission for the (file, user) pair, or
	// common.ErrorNotFound.
	Get(ctx context.Context, fileID, userID string) (*models.Permission, error)

	// GrantRead ensures a read-level row exists for the pair. Concurrent
	// grants for the same pair are absorbed: the insert does nothing on
	// conflict, so the pair never gets two rows.
	GrantRead(ctx context.Context, fileID, userID string) error

	// RevokeRead removes the pair's read-level row. Revoking an absent
	// permission is a no-op, not an error. Full-level rows are untouched.
	RevokeRead(ctx context.Context, fileID, userID string) error

	// DeleteAllForFile removes every permission row of the file.
	DeleteAllForFile(ctx context.Context, fileID string) error

	// Owner returns the id of the user holding the full permission on the
	// file, or common.ErrorNotFound.
	Owner(ctx context.Context, fileID string) (string, error)
}
