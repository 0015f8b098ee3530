package ports

import "errors"

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
	// ErrInvalidPayload is returned by validators when a persisted payload
	// does not match the expected layout.
	ErrInvalidPayload = errors.New("invalid payload")
)
