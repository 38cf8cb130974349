// Package users persists user accounts. The file lifecycle only reads users
// (to resolve share targets); mutation happens through registration and
// activation.
package users

import (
	"context"

	"github.com/dmitrijs2005/fileshare/internal/server/models"
)

// Repository is the persistence contract for user accounts.
type Repository interface {
	// Create inserts a new user. A duplicate email returns
	// common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) error

	// GetByID returns the user with the given id, or common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*models.User, error)

	// GetByEmail returns the user with the given email, or common.ErrorNotFound.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// Activate marks the user as active. Missing users return
	// common.ErrorNotFound.
	Activate(ctx context.Context, id string) error
}
