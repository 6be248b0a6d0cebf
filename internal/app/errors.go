package app

import "errors"

// ErrInvalidOverride is returned for an override that is not key=value.
var ErrInvalidOverride = errors.New("invalid override, want key=value")

// InitError represents an initialization error.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return "init " + e.Component + ": " + e.Err.Error()
}

func (e *InitError) Unwrap() error {
	return e.Err
}
