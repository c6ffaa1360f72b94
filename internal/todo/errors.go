package todo

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned when there is no input to decode at all,
	// as opposed to input that fails to decode.
	ErrInvalidArgument = errors.New("invalid argument: input is nil")

	// ErrMissingCompletionDate is returned when a line starts with the
	// completion marker but no valid completion date follows it.
	ErrMissingCompletionDate = errors.New("completion date was not present after completion marker")
)

// ParseError describes a line that could not be decoded.
type ParseError struct {
	Line int    // 1-based line number, 0 when unknown
	Raw  string // the offending line
	Err  error  // underlying error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s: %q", e.Line, e.Err, e.Raw)
	}
	return fmt.Sprintf("%s: %q", e.Err, e.Raw)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
