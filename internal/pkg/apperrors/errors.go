package apperrors

import (
	"fmt"

	"github.com/pkg/errors"
)

// ValidationError is a client input failure. Row is the 1-based index of the
// offending submission row, or 0 when the error is not row-scoped.
type ValidationError struct {
	Row     int
	Message string
}

func (e *ValidationError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("row %d: %s", e.Row, e.Message)
	}
	return e.Message
}

func NewValidation(message string) *ValidationError {
	return &ValidationError{Message: message}
}

func NewRowValidation(row int, message string) *ValidationError {
	return &ValidationError{Row: row, Message: message}
}

type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

func NewNotFound(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string {
	return e.Message
}

func NewForbidden(message string) *ForbiddenError {
	return &ForbiddenError{Message: message}
}

// ConflictError reports a lifecycle precondition failure: the row was not in
// the status the operation requires.
type ConflictError struct {
	Expected string
	Actual   string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("status conflict: expected %s, actual %s", e.Expected, e.Actual)
}

func NewConflict(expected, actual string) *ConflictError {
	return &ConflictError{Expected: expected, Actual: actual}
}

// WrapPersistence attaches the failing operation and a stack trace to a
// storage error.
func WrapPersistence(err error, op string) error {
	return errors.Wrapf(err, "persistence: %s", op)
}
