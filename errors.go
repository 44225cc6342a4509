package filedock

import "errors"

var (
	// ErrNotFound is returned when a file or user record is not found
	ErrNotFound = errors.New("not found")
	// ErrInternal is returned when an internal error occurs
	ErrInternal = errors.New("internal error")
	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
	// ErrAccessDenied is returned when a user does not own the requested file
	ErrAccessDenied = errors.New("access denied")
	// ErrConflict is returned when registration collides with an existing identity
	ErrConflict = errors.New("conflict")
)
