// Package models defines the data models persisted in the database.
package models

import (
	"fmt"
	"time"
)

// File describes metadata for an uploaded file. The content bytes live in
// object storage under a key derived by StorageKey; no key column is
// persisted.
type File struct {
	// ID is the opaque unique identifier, generated at creation.
	ID string
	// OriginalFilename is the name the file was uploaded with.
	OriginalFilename string
	// Size is the declared content length in bytes.
	Size int64
	// FileExtension is the part of the filename after the last dot.
	FileExtension string
	// UploadDate is set at creation and never changes.
	UploadDate time.Time
}

// StorageKey derives the object-store address of the file's content from the
// owning user's id. The key is always reconstructible from the file row plus
// the holder of the full permission, so it is never stored.
func (f *File) StorageKey(ownerID string) string {
	return fmt.Sprintf("user_%s/%s_%s", ownerID, f.ID, f.OriginalFilename)
}

// AccessibleFile is a listing row: a file plus the requesting user's
// permission level on it.
type AccessibleFile struct {
	File
	Level Level
}
