package convert

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/termconf/internal/config/document"
)

// Errors returned by conversion operations.
var (
	// ErrTypeMismatch indicates the document's shape doesn't match the
	// requested destination type.
	ErrTypeMismatch = errors.New("invalid type")

	// ErrRequiredKeyMissing indicates a mandatory key is absent.
	ErrRequiredKeyMissing = errors.New("required key missing")
)

// TypeMismatchError is returned when a rule cannot convert a document.
type TypeMismatchError struct {
	// Expected names the destination type.
	Expected string
	// Actual is the document's shape.
	Actual document.Kind
}

// Error implements the error interface.
func (e *TypeMismatchError) Error() string {
	if e.Expected == "" {
		return ErrTypeMismatch.Error()
	}
	return fmt.Sprintf("%s: expected %s, got %s", ErrTypeMismatch, e.Expected, e.Actual)
}

// Is implements error matching for TypeMismatchError.
func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// KeyedError attributes a conversion failure to the key it was read from.
type KeyedError struct {
	// Key is the object key whose value failed to convert.
	Key string
	// Err is the underlying failure.
	Err error
}

// Error implements the error interface.
func (e *KeyedError) Error() string {
	return fmt.Sprintf("error parsing %q: %v", e.Key, e.Err)
}

// Unwrap returns the underlying error.
func (e *KeyedError) Unwrap() error {
	return e.Err
}

// Path returns the chain of keys from this error down to the innermost
// keyed failure, e.g. ["initialPosition"] or ["keybindings", "keys"].
func (e *KeyedError) Path() []string {
	path := []string{e.Key}
	var inner *KeyedError
	if errors.As(e.Err, &inner) {
		path = append(path, inner.Path()...)
	}
	return path
}

// DottedPath returns Path joined with dots.
func (e *KeyedError) DottedPath() string {
	return strings.Join(e.Path(), ".")
}

func mismatch(expected string, d document.Document) error {
	return &TypeMismatchError{Expected: expected, Actual: d.Kind()}
}
