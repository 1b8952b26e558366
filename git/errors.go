package git

import (
	"errors"
	"fmt"
)

// Sentinel errors that can be checked with errors.Is().
// These wrap underlying go-git errors while providing a stable API for consumers.

// ErrInvalidRef is returned when an argument or option is malformed, or an
// operation is not possible for the repository layout (e.g. a bare repo).
var ErrInvalidRef = errors.New("invalid reference")

// ErrEmptyCommit is returned when a commit is requested with nothing staged
// and empty commits were not allowed.
var ErrEmptyCommit = errors.New("nothing to commit")

// ErrNoHead is returned when an operation needs a HEAD commit but the
// repository has none yet.
var ErrNoHead = errors.New("repository has no HEAD commit")

// WrapError wraps an error with additional context while preserving
// the ability to check against sentinel errors using errors.Is().
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// WrapErrorf wraps an error with formatted additional context while preserving
// the ability to check against sentinel errors using errors.Is().
func WrapErrorf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}
