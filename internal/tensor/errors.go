package tensor

import (
	"errors"
	"fmt"
)

var (
	// ErrDecode is matched by every DecodeError.
	ErrDecode = errors.New("tensor: decode failed")

	// ErrUnsupported is returned by Decode for extensions it does not handle.
	ErrUnsupported = errors.New("tensor: unsupported file extension")
)

// DecodeError reports a file whose content does not match its declared
// type or shape.
type DecodeError struct {
	Path   string
	Reason string

	// Expected and Actual are payload sizes in bytes. Both are zero when
	// the failure is not a size mismatch.
	Expected int
	Actual   int

	Err error
}

func (e *DecodeError) Error() string {
	msg := "decode"
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Expected != e.Actual {
		msg += fmt.Sprintf(" (expected %d bytes, got %d)", e.Expected, e.Actual)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DecodeError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrDecode}
	}
	return []error{ErrDecode, e.Err}
}
