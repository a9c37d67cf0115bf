// Package errors provides sentinel errors and error types for movetree.
// It defines common error conditions and a structured parse error that
// preserves context while allowing inspection with errors.Is() and
// errors.As().
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrIllegalMove indicates a move that is not legal in the position
	// it was played from.
	ErrIllegalMove = errors.New("illegal move")

	// ErrNoGame indicates that no game could be found in the input.
	ErrNoGame = errors.New("no game found")
)

// ParseError wraps a parse-time error with input location context.
// Parse errors are diagnostic only: the builder always yields a
// best-effort tree, so a ParseError never aborts a parse.
type ParseError struct {
	Err    error  // The underlying error
	Offset int    // Byte offset into the movetext (0-based)
	Line   int    // Line number (1-based, 0 if unknown)
	Got    string // The offending input text, if applicable
}

// Error returns a formatted error message with location and context.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Line > 0 {
		msg = fmt.Sprintf("line %d (offset %d)", e.Line, e.Offset)
	} else if e.Offset > 0 {
		msg = fmt.Sprintf("offset %d", e.Offset)
	}
	if e.Got != "" {
		msg += fmt.Sprintf(": unexpected %q", e.Got)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying error, enabling errors.Is() and
// errors.As() to work through the ParseError wrapper.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the
// underlying error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}
