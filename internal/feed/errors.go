package feed

import (
	"errors"
	"fmt"
)

// ErrInvalidLimit is delivered when a caller asks for a negative number of entries.
var ErrInvalidLimit = errors.New("limit must not be negative")

// TransportError wraps any failure to obtain the raw feed: connection errors,
// non-2xx statuses (see collector.StatusError) and body read failures.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("fetch feed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError means the payload is not JSON or lacks the feed object.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode feed: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// MappingError is scoped to one entry. The pipeline skips the entry and keeps going.
type MappingError struct {
	Rank  int
	Field string
	Err   error
}

func (e *MappingError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("entry %d: missing %s", e.Rank, e.Field)
	}
	return fmt.Sprintf("entry %d: %s: %v", e.Rank, e.Field, e.Err)
}

func (e *MappingError) Unwrap() error { return e.Err }
