// Package errors provides error wrapping utilities and the error kinds
// surfaced by the launcher.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Error kinds. Every error returned to the trigger matches exactly one of
// these via Is.
var (
	// ErrConfig is returned once at startup when configuration is unusable.
	ErrConfig = stderrors.New("configuration error")
	// ErrProvision is returned when launching an instance for a record fails.
	ErrProvision = stderrors.New("provisioning error")
)

// Wrap wraps an error with additional context information.
// If err is nil, it returns nil without wrapping.
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Join returns an error wrapping errs, or nil if all are nil.
func Join(errs ...error) error {
	return stderrors.Join(errs...)
}
