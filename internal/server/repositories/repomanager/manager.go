// Package repomanager vends repository implementations bound to a database
// handle, so services can run the same repositories inside or outside a
// transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/fileshare/internal/dbx"
	"github.com/dmitrijs2005/fileshare/internal/server/repositories/files"
	"github.com/dmitrijs2005/fileshare/internal/server/repositories/permissions"
	"github.com/dmitrijs2005/fileshare/internal/server/repositories/users"
)

// RepositoryManager returns repositories bound to the provided DBTX
// (*sql.DB or *sql.Tx) and exposes a schema migration hook.
type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Files(db dbx.DBTX) files.Repository
	Permissions(db dbx.DBTX) permissions.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
