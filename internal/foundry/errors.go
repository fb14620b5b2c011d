package foundry

import (
	"errors"
	"fmt"

	"geofoundry/internal/tensor"
)

// Sentinel errors, matched with errors.Is.
var (
	ErrNotFound         = errors.New("foundry: folder not found")
	ErrLookup           = errors.New("foundry: lookup failed")
	ErrFormatAssumption = errors.New("foundry: record format assumption violated")
	ErrCollision        = errors.New("foundry: stem collision")

	// ErrDecode is matched by decode failures of individual files.
	ErrDecode = tensor.ErrDecode
)

// DecodeError is the codec's error, surfaced unchanged by Load.
type DecodeError = tensor.DecodeError

// NotFoundError reports a missing foundry folder.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	msg := "foundry folder " + e.Path + " does not exist"
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg + " (create it with the geometry conversion step)"
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// LookupError reports an index outside a name dictionary, or a stem that
// was not loaded.
type LookupError struct {
	Dict  string // dictionary label, or "array" for stem lookups
	Stem  string
	Index int
	Size  int
}

func (e *LookupError) Error() string {
	if e.Stem != "" {
		return fmt.Sprintf("foundry: no array %q loaded", e.Stem)
	}
	return fmt.Sprintf("foundry: %s name index %d out of range [0, %d)", e.Dict, e.Index, e.Size)
}

func (e *LookupError) Unwrap() error { return ErrLookup }

// FormatAssumptionError reports an array that does not have the layout a
// field extraction relies on.
type FormatAssumptionError struct {
	Stem   string
	Reason string
}

func (e *FormatAssumptionError) Error() string {
	if e.Stem == "" {
		return "foundry: record format: " + e.Reason
	}
	return fmt.Sprintf("foundry: %s record format: %s", e.Stem, e.Reason)
}

func (e *FormatAssumptionError) Unwrap() error { return ErrFormatAssumption }

// CollisionError reports two files mapping to the same stem.
type CollisionError struct {
	Stem          string
	First, Second string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("foundry: %s and %s both map to stem %q", e.First, e.Second, e.Stem)
}

func (e *CollisionError) Unwrap() error { return ErrCollision }
