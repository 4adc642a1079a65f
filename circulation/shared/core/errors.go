package core

import (
	"errors"
	"fmt"
)

// The error kinds every rejection maps to. Callers match them with errors.Is,
// the transport layer maps them to status codes.
var (
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrOutOfStock       = errors.New("out of stock")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidRenewal   = errors.New("invalid renewal")
	ErrInvalidRequest   = errors.New("invalid request")
	ErrUnauthorized     = errors.New("unauthorized")
)

// The reasons of an ErrInvalidRenewal.
const (
	RenewalReasonAlreadyReturned = "already returned"
	RenewalReasonLimitReached    = "renewal limit reached"
	RenewalReasonOutstandingFine = "outstanding fine"
)

// NotFound wraps ErrNotFound with a description of what was not found.
func NotFound(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// Conflict wraps ErrConflict with a description of the conflicting state.
func Conflict(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

// OutOfStock wraps ErrOutOfStock.
func OutOfStock(bookID BookIDString) error {
	return fmt.Errorf("%w: book %s has no available copies", ErrOutOfStock, bookID)
}

// PermissionDenied wraps ErrPermissionDenied with the missing capability.
func PermissionDenied(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrPermissionDenied, fmt.Sprintf(format, args...))
}

// InvalidRenewal wraps ErrInvalidRenewal with one of the RenewalReason constants.
func InvalidRenewal(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidRenewal, reason)
}

// InvalidRequest wraps ErrInvalidRequest with a description of the rejected input.
func InvalidRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

// Unauthorized wraps ErrUnauthorized.
func Unauthorized(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUnauthorized, fmt.Sprintf(format, args...))
}

// IsDomainError reports whether err carries one of the domain error kinds.
func IsDomainError(err error) bool {
	for _, kind := range []error{
		ErrNotFound, ErrConflict, ErrOutOfStock, ErrPermissionDenied,
		ErrInvalidRenewal, ErrInvalidRequest, ErrUnauthorized,
	} {
		if errors.Is(err, kind) {
			return true
		}
	}

	return false
}
