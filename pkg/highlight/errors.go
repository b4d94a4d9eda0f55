package highlight

import (
	"errors"
	"fmt"
)

// ErrInvalidPattern matches any PatternError via errors.Is.
var ErrInvalidPattern = errors.New("invalid pattern")

// PatternError reports a query that is not a valid match pattern.
// It is not retryable: the caller either searches without highlighting or
// aborts, and makes that choice once per invocation.
type PatternError struct {
	Pattern string // the query as supplied
	Err     error  // underlying compile error
}

// Error implements the error interface.
func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %v", e.Pattern, e.Err)
}

// Unwrap returns the underlying compile error.
func (e *PatternError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrInvalidPattern.
func (e *PatternError) Is(target error) bool {
	return target == ErrInvalidPattern
}
