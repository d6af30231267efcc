package apperr

import (
	"errors"
	"fmt"
)

// Code is a machine-readable business failure reported to API callers.
type Code string

// Assignment failures.
const (
	CodeOrderNotFound           Code = "ORDER_NOT_FOUND"
	CodeOrderNotReady           Code = "ORDER_NOT_READY"
	CodeOrderAlreadyAssigned    Code = "ORDER_ALREADY_ASSIGNED"
	CodeNoDriversAvailable      Code = "NO_DRIVERS_AVAILABLE"
	CodeNotPendingForThisDriver Code = "NOT_PENDING_FOR_THIS_DRIVER"
	CodeOfferExpired            Code = "OFFER_EXPIRED"
	CodeDriverProfileNotFound   Code = "DRIVER_PROFILE_NOT_FOUND"
	CodeInvalidInput            Code = "INVALID_INPUT"
)

// Error is a typed business failure. Two errors match under errors.Is
// when their codes are equal.
type Error struct {
	Code   Code
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Detail)
}

// Is reports code equality so sentinels below work with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// Unwrap maps business codes onto the coarse infrastructure sentinels.
func (e *Error) Unwrap() error {
	switch e.Code {
	case CodeOrderNotFound, CodeDriverProfileNotFound:
		return ErrNotFound
	case CodeInvalidInput:
		return ErrInvalid
	default:
		return ErrConflict
	}
}

// New returns a business error with an optional detail message.
func New(code Code, detail string) error {
	return &Error{Code: code, Detail: detail}
}

// Sentinels for errors.Is checks.
var (
	ErrOrderNotFound           error = &Error{Code: CodeOrderNotFound}
	ErrOrderNotReady           error = &Error{Code: CodeOrderNotReady}
	ErrOrderAlreadyAssigned    error = &Error{Code: CodeOrderAlreadyAssigned}
	ErrNoDriversAvailable      error = &Error{Code: CodeNoDriversAvailable}
	ErrNotPendingForThisDriver error = &Error{Code: CodeNotPendingForThisDriver}
	ErrOfferExpired            error = &Error{Code: CodeOfferExpired}
	ErrDriverProfileNotFound   error = &Error{Code: CodeDriverProfileNotFound}
)

// CodeOf extracts the business code from err, if any.
func CodeOf(err error) (Code, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return "", false
}
