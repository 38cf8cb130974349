package models

import "time"

// Level is a file permission level. The set is closed: files have exactly one
// full-permission holder (the owner) and zero or more read-permission holders.
type Level string

const (
	// LevelRead allows retrieving the file's content.
	LevelRead Level = "R"
	// LevelFull is owner-level access: read, share and delete.
	LevelFull Level = "F"
)

// Valid reports whether l is one of the known levels.
func (l Level) Valid() bool {
	switch l {
	case LevelRead, LevelFull:
		return true
	}
	return false
}

// Permission binds a user to a file at a level. At most one row exists per
// (file, user) pair.
type Permission struct {
	FileID    string
	UserID    string
	Level     Level
	CreatedAt time.Time
}
