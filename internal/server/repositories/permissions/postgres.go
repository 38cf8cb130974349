package permissions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/fileshare/internal/common"
	"github.com/dmitrijs2005/fileshare/internal/dbx"
	"github.com/dmitrijs2005/fileshare/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the PostgreSQL error code for unique constraint breaches.
const uniqueViolation = "23505"

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, perm *models.Permission) error {
	query := `
		INSERT INTO file_permissions (file_id, user_id, permission, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.ExecContext(ctx, query, perm.FileID, perm.UserID, string(perm.Level), perm.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, fileID, userID string) (*models.Permission, error) {
	query := `
		SELECT file_id, user_id, permission, created_at FROM file_permissions
		WHERE file_id=$1 AND user_id=$2
	`
	perm := &models.Permission{}
	err := r.db.QueryRowContext(ctx, query, fileID, userID).
		Scan(&perm.FileID, &perm.UserID, &perm.Level, &perm.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return perm, nil
}

func (r *PostgresRepository) GrantRead(ctx context.Context, fileID, userID string) error {
	query := `
		INSERT INTO file_permissions (file_id, user_id, permission, created_at)
		VALUES ($1, $2, 'R', now())
		ON CONFLICT (file_id, user_id) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query, fileID, userID); err != nil {
		return fmt.Errorf("failed to grant read permission: %w", err)
	}
	return nil
}

func (r *PostgresRepository) RevokeRead(ctx context.Context, fileID, userID string) error {
	query := `DELETE FROM file_permissions WHERE file_id=$1 AND user_id=$2 AND permission='R'`
	if _, err := r.db.ExecContext(ctx, query, fileID, userID); err != nil {
		return fmt.Errorf("failed to revoke read permission: %w", err)
	}
	return nil
}

func (r *PostgresRepository) DeleteAllForFile(ctx context.Context, fileID string) error {
	query := `DELETE FROM file_permissions WHERE file_id=$1`
	if _, err := r.db.ExecContext(ctx, query, fileID); err != nil {
		return fmt.Errorf("failed to delete file permissions: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Owner(ctx context.Context, fileID string) (string, error) {
	query := `SELECT user_id FROM file_permissions WHERE file_id=$1 AND permission='F'`
	var userID string
	err := r.db.QueryRowContext(ctx, query, fileID).Scan(&userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("db error: %w", err)
	}
	return userID, nil
}
