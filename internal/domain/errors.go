package domain

import "errors"

// Error kinds. Every domain error unwraps to exactly one of these so callers
// can dispatch on the kind with errors.Is.
var (
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrNotFound     = errors.New("resource not found")
	ErrPersistence  = errors.New("persistence failure")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// Error is a domain error carrying its kind
type Error struct {
	kind error
	msg  string
}

// NewError creates a domain error of the given kind
func NewError(kind error, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

func (e *Error) Error() string { return e.msg }

// Unwrap exposes the kind to errors.Is
func (e *Error) Unwrap() error { return e.kind }

// Shared domain errors
var (
	ErrTenantNotFound   = NewError(ErrNotFound, "tenant not found")
	ErrOperatorNotFound = NewError(ErrNotFound, "operator not found")
	ErrNameRequired     = NewError(ErrValidation, "name is required")
	ErrNameTooLong      = NewError(ErrValidation, "name exceeds maximum length")
	ErrInvalidAmount    = NewError(ErrValidation, "amount must be positive")
	ErrInvalidDueDate   = NewError(ErrValidation, "due date cannot fall on a Sunday")
	ErrElevatedRole     = NewError(ErrForbidden, "manager or admin role required")
	ErrAdminRole        = NewError(ErrForbidden, "admin role required")
)

// Validation constants
const (
	MaxNameLength        = 255
	MaxDescriptionLength = 500
)

// Kind returns the taxonomy kind of err, or nil for errors outside the domain
func Kind(err error) error {
	for _, k := range []error{ErrValidation, ErrConflict, ErrNotFound, ErrUnauthorized, ErrForbidden, ErrPersistence} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}
