package apperr

import "errors"

// Infrastructure-level sentinels shared by repositories, services and handlers.
var (
	// ErrInvalid is returned when the input fails domain validation.
	ErrInvalid = errors.New("invalid input")
	// ErrConflict indicates a uniqueness or state conflict (HTTP 409).
	ErrConflict = errors.New("conflict")
	// ErrNotFound indicates that the requested resource does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized means the caller did not present valid credentials.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden means the caller is authenticated but lacks the role.
	ErrForbidden = errors.New("forbidden")
)
