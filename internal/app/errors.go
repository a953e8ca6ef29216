package app

import (
	"errors"
	"fmt"
)

// ErrQuit signals a clean shutdown request from the host.
var ErrQuit = errors.New("app: quit requested")

// InitError wraps a component initialization failure. Startup halts on the
// first one; there is no partial-degradation mode for the backend.
type InitError struct {
	Component string
	Err       error
}

// Error returns the error message.
func (e *InitError) Error() string {
	return fmt.Sprintf("app: initializing %s: %v", e.Component, e.Err)
}

// Unwrap returns the underlying error.
func (e *InitError) Unwrap() error {
	return e.Err
}
