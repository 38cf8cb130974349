package models

import "time"

// User is an account that can own and access files. Inactive users cannot be
// shared with.
type User struct {
	ID           string
	Email        string
	PasswordHash []byte
	IsActive     bool
	CreatedAt    time.Time
}
