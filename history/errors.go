package history

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidID is returned for an id that names no node in the log.
	ErrInvalidID = errors.New("invalid log id")
	// ErrCorruptLog marks a log whose recorded actions cannot be replayed, or
	// whose persisted form is inconsistent.
	ErrCorruptLog = errors.New("corrupt log")
)

// SeekError is a replay failure while seeking. It wraps both ErrCorruptLog
// and the error the round returned for the offending node.
type SeekError struct {
	Target ID
	At     ID
	Err    error
}

func (e *SeekError) Error() string {
	return fmt.Sprintf("seek %s: replay failed at node %s: %v", e.Target, e.At, e.Err)
}

func (e *SeekError) Unwrap() []error { return []error{ErrCorruptLog, e.Err} }

func invalidID(id ID) error {
	return fmt.Errorf("%w: %s", ErrInvalidID, id)
}

func corrupt(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrCorruptLog, fmt.Sprintf(format, args...))
}
