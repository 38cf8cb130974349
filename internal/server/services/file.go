package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/fileshare/internal/common"
	"github.com/dmitrijs2005/fileshare/internal/dbx"
	"github.com/dmitrijs2005/fileshare/internal/format"
	"github.com/dmitrijs2005/fileshare/internal/logging"
	"github.com/dmitrijs2005/fileshare/internal/server/cache"
	"github.com/dmitrijs2005/fileshare/internal/server/config"
	"github.com/dmitrijs2005/fileshare/internal/server/models"
	"github.com/dmitrijs2005/fileshare/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/fileshare/internal/server/storage"
)

// ShareAction is one entry's verb in a share batch.
type ShareAction string

const (
	// ActionGrant gives the target user read access.
	ActionGrant ShareAction = "grant"
	// ActionRevoke removes the target user's read access.
	ActionRevoke ShareAction = "revoke"
)

// Valid reports whether a is a known share action.
func (a ShareAction) Valid() bool {
	return a == ActionGrant || a == ActionRevoke
}

// ShareRequest is one entry of a share batch.
type ShareRequest struct {
	UserID string
	Action ShareAction
}

// FileListEntry is one row of a file listing, with sizes and dates already
// rendered for display.
type FileListEntry struct {
	ID        string
	Name      string
	Extension string
	SizeBytes int64
	Size      string
	Uploaded  string
	Level     models.Level
}

// FileListing is one page of a user's accessible files plus aggregates over
// the full accessible set, not just the page.
type FileListing struct {
	Files          []FileListEntry
	Page           int
	PageSize       int
	TotalCount     int64
	TotalSizeBytes int64
	TotalSize      string
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// FileService owns the file lifecycle: upload, download, delete, share and
// listing. It is the only component that touches both the metadata store and
// the object store, and it sequences the two so that metadata never references
// a missing object. The one tolerated inconsistency is the reverse: a stray
// object no metadata points at, left behind when a cleanup step fails.
type FileService struct {
	db      *sql.DB
	rm      repomanager.RepositoryManager
	storage storage.ObjectStorage
	cache   cache.FileCache
	cfg     *config.Config
	log     logging.Logger
}

// NewFileService wires the file lifecycle. fileCache may be nil to run
// without a metadata cache.
func NewFileService(db *sql.DB, rm repomanager.RepositoryManager, st storage.ObjectStorage,
	fileCache cache.FileCache, cfg *config.Config, log logging.Logger) *FileService {
	return &FileService{
		db:      db,
		rm:      rm,
		storage: st,
		cache:   fileCache,
		cfg:     cfg,
		log:     log.With("component", "fileservice"),
	}
}

// fileExtension extracts the part of the filename after the last dot.
func fileExtension(filename string) (string, error) {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 || idx == len(filename)-1 {
		return "", fmt.Errorf("%w: %q has no extension", common.ErrorInvalidFilename, filename)
	}
	return filename[idx+1:], nil
}

// Upload stores the content stream and records the file with a full permission
// for the owner. The metadata rows are staged in an open transaction and the
// object is written before commit: a failed write rolls everything back, and a
// failed commit after a successful write triggers a best-effort object delete.
func (s *FileService) Upload(ctx context.Context, ownerID, filename string, size int64, body io.Reader) (*models.File, error) {
	if size > s.cfg.MaxUploadBytes {
		return nil, fmt.Errorf("%w: %d bytes exceeds the %d byte limit",
			common.ErrorPayloadTooLarge, size, s.cfg.MaxUploadBytes)
	}
	if size < 0 {
		return nil, fmt.Errorf("%w: negative size", common.ErrorValidation)
	}

	ext, err := fileExtension(filename)
	if err != nil {
		return nil, err
	}

	file := &models.File{
		ID:               uuid.NewString(),
		OriginalFilename: filename,
		Size:             size,
		FileExtension:    ext,
		UploadDate:       time.Now(),
	}
	key := file.StorageKey(ownerID)

	objectWritten := false
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.rm.Files(tx).Create(ctx, file); err != nil {
			return fmt.Errorf("create file row: %w", err)
		}
		if err := s.rm.Permissions(tx).Create(ctx, &models.Permission{
			FileID:    file.ID,
			UserID:    ownerID,
			Level:     models.LevelFull,
			CreatedAt: file.UploadDate,
		}); err != nil {
			return fmt.Errorf("create owner permission: %w", err)
		}
		if err := s.storage.Put(ctx, key, body, size); err != nil {
			return fmt.Errorf("%w: %v", common.ErrorStorage, err)
		}
		objectWritten = true
		return nil
	})
	if err != nil {
		if objectWritten {
			// The commit failed after the object landed. Remove the object so
			// the only possible leftover is a stray blob, never a metadata row
			// pointing at nothing.
			if delErr := s.storage.Delete(ctx, key); delErr != nil {
				s.log.Warn(ctx, "orphaned object left after failed commit",
					"key", key, "error", delErr)
			}
		}
		return nil, err
	}

	s.log.Info(ctx, "file uploaded", "file_id", file.ID, "size", size)
	return file, nil
}

// Download returns a presigned URL for the file's content, valid for the
// configured TTL. Any permission level suffices.
func (s *FileService) Download(ctx context.Context, userID, fileID string) (string, error) {
	file, err := s.getFile(ctx, fileID)
	if err != nil {
		return "", err
	}

	perm, err := s.rm.Permissions(s.db).Get(ctx, fileID, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorPermissionDenied
		}
		return "", err
	}
	switch perm.Level {
	case models.LevelRead, models.LevelFull:
	default:
		return "", common.ErrorPermissionDenied
	}

	ownerID, err := s.rm.Permissions(s.db).Owner(ctx, fileID)
	if err != nil {
		return "", fmt.Errorf("resolve owner: %w", err)
	}

	url, err := s.storage.PresignGet(ctx, file.StorageKey(ownerID), s.cfg.DownloadURLTTL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrorStorage, err)
	}
	return url, nil
}

// Delete removes the file's content and metadata. Only the full-permission
// holder may delete. The object is removed first; if that fails the metadata
// stays intact and the caller can retry. A metadata failure after the object
// is gone leaves rows pointing at nothing only until the transaction's
// retry — the object delete is idempotent, so retrying the whole operation
// converges.
func (s *FileService) Delete(ctx context.Context, userID, fileID string) error {
	file, err := s.rm.Files(s.db).GetByID(ctx, fileID)
	if err != nil {
		return err
	}

	if err := s.requireFull(ctx, fileID, userID); err != nil {
		return err
	}

	if err := s.storage.Delete(ctx, file.StorageKey(userID)); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorStorage, err)
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.rm.Permissions(tx).DeleteAllForFile(ctx, fileID); err != nil {
			return fmt.Errorf("delete permissions: %w", err)
		}
		if err := s.rm.Files(tx).Delete(ctx, fileID); err != nil {
			return fmt.Errorf("delete file row: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, fileID)
	s.log.Info(ctx, "file deleted", "file_id", fileID)
	return nil
}

// Share applies a batch of grant/revoke entries to the file's permissions.
// Only the full-permission holder may share. The batch is all-or-nothing:
// every entry is validated before any is applied, and application runs in one
// transaction.
func (s *FileService) Share(ctx context.Context, ownerID, fileID string, reqs []ShareRequest) error {
	if len(reqs) == 0 {
		return fmt.Errorf("%w: empty share batch", common.ErrorValidation)
	}

	if _, err := s.rm.Files(s.db).GetByID(ctx, fileID); err != nil {
		return err
	}
	if err := s.requireFull(ctx, fileID, ownerID); err != nil {
		return err
	}

	for _, req := range reqs {
		if !req.Action.Valid() {
			return fmt.Errorf("%w: unknown action %q", common.ErrorValidation, req.Action)
		}
		if req.UserID == ownerID {
			return common.ErrorSelfShare
		}
		target, err := s.rm.Users(s.db).GetByID(ctx, req.UserID)
		if err != nil {
			return fmt.Errorf("share target %s: %w", req.UserID, err)
		}
		if !target.IsActive {
			return fmt.Errorf("share target %s: %w", req.UserID, common.ErrorUserNotActive)
		}
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		perms := s.rm.Permissions(tx)
		for _, req := range reqs {
			var err error
			switch req.Action {
			case ActionGrant:
				err = perms.GrantRead(ctx, fileID, req.UserID)
			case ActionRevoke:
				err = perms.RevokeRead(ctx, fileID, req.UserID)
			}
			if err != nil {
				return fmt.Errorf("%s for user %s: %w", req.Action, req.UserID, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, fileID)
	s.log.Info(ctx, "permissions updated", "file_id", fileID, "entries", len(reqs))
	return nil
}

// List returns one page of the user's accessible files, newest first, plus
// size and count aggregates over the whole accessible set.
func (s *FileService) List(ctx context.Context, userID string, page, pageSize int) (*FileListing, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	filesRepo := s.rm.Files(s.db)

	rows, err := filesRepo.ListForUser(ctx, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	totalSize, err := filesRepo.TotalSizeForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("total size: %w", err)
	}
	count, err := filesRepo.CountForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count files: %w", err)
	}

	listing := &FileListing{
		Files:          make([]FileListEntry, 0, len(rows)),
		Page:           page,
		PageSize:       pageSize,
		TotalCount:     count,
		TotalSizeBytes: totalSize,
		TotalSize:      format.FileSize(totalSize),
	}
	for _, row := range rows {
		listing.Files = append(listing.Files, FileListEntry{
			ID:        row.ID,
			Name:      row.OriginalFilename,
			Extension: row.FileExtension,
			SizeBytes: row.Size,
			Size:      format.FileSize(row.Size),
			Uploaded:  format.UploadTime(row.UploadDate),
			Level:     row.Level,
		})
	}
	return listing, nil
}

// requireFull verifies userID holds the full permission on the file. A
// missing or read-level permission is reported identically, so a caller
// cannot distinguish "no access" from "read-only access".
func (s *FileService) requireFull(ctx context.Context, fileID, userID string) error {
	perm, err := s.rm.Permissions(s.db).Get(ctx, fileID, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorPermissionDenied
		}
		return err
	}
	if perm.Level != models.LevelFull {
		return common.ErrorPermissionDenied
	}
	return nil
}

// getFile reads file metadata through the cache when one is configured.
// Cache failures degrade to database reads.
func (s *FileService) getFile(ctx context.Context, fileID string) (*models.File, error) {
	if s.cache != nil {
		file, err := s.cache.Get(ctx, fileID)
		if err != nil {
			s.log.Warn(ctx, "metadata cache read failed", "file_id", fileID, "error", err)
		} else if file != nil {
			return file, nil
		}
	}

	file, err := s.rm.Files(s.db).GetByID(ctx, fileID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, file); err != nil {
			s.log.Warn(ctx, "metadata cache write failed", "file_id", fileID, "error", err)
		}
	}
	return file, nil
}

// invalidate drops the file's cached metadata, best effort.
func (s *FileService) invalidate(ctx context.Context, fileID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, fileID); err != nil {
		s.log.Warn(ctx, "metadata cache invalidation failed", "file_id", fileID, "error", err)
	}
}
