// Package apperrors holds the error kinds shared by the store, the dashboard
// engines and the HTTP layer.
package apperrors

import (
	"errors"
	"fmt"
)

// Error kinds, checked with errors.Is
var (
	ErrStorage    = errors.New("storage error")
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
)

// Error carries the failing operation alongside its kind
type Error struct {
	Op   string // e.g. "insert deadline"
	Kind error  // one of the Err* kinds above
	Err  error  // underlying cause, may be nil
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Kind)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the error kind as well as the wrapped cause.
func (e *Error) Is(target error) bool {
	return e.Kind == target
}

// Storage wraps a database failure. A nil err yields nil.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Kind: ErrStorage, Err: err}
}

// Validation wraps malformed input
func Validation(op string, err error) error {
	return &Error{Op: op, Kind: ErrValidation, Err: err}
}

// NotFound reports a missing row
func NotFound(op string) error {
	return &Error{Op: op, Kind: ErrNotFound}
}
