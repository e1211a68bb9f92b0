package errors

import (
	"errors"
	"fmt"
)

// Common error categories for the session server
var (
	// Configuration errors - surfaced synchronously, never retried
	ErrConflictingConfig = errors.New("conflicting connection configuration")

	// Session store errors
	ErrConnection = errors.New("session store connection failed")
	ErrIndexSetup = errors.New("session store index setup failed")
	ErrStorage    = errors.New("session store operation failed")

	// User repository errors
	ErrUserNotFound = errors.New("user not found")

	// General errors
	ErrNotFound = errors.New("not found")
	ErrInternal = errors.New("internal error")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Classify ties err to one of the category sentinels above so callers can
// match the category with errors.Is while still unwrapping the cause.
func Classify(category, err error, msg string) error {
	if err == nil {
		return fmt.Errorf("%s: %w", msg, category)
	}
	return fmt.Errorf("%s: %w: %w", msg, category, err)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
