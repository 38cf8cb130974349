// Package common defines sentinel errors shared across the service layers.
// Callers match them with errors.Is; the HTTP layer maps them to status codes.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Permission evaluation.
	ErrorPermissionDenied = errors.New("permission denied")

	// Validation errors, detected before any mutation.
	ErrorValidation      = errors.New("validation error")
	ErrorPayloadTooLarge = errors.New("payload too large")
	ErrorInvalidFilename = errors.New("invalid filename")
	ErrorSelfShare       = errors.New("cannot share a file with yourself")
	ErrorUserNotActive   = errors.New("user is not activated")

	// Object-store failures. Multi-step operations wrap the underlying
	// cause so the caller can retry manually.
	ErrorStorage = errors.New("object storage error")

	// Auth errors.
	ErrorUnauthorized = errors.New("unauthorized")
	ErrInvalidToken   = errors.New("invalid token")

	// Generic internal flow control.
	ErrorInternal = errors.New("internal error")
)
