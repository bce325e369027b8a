package network

import (
	"errors"
	"fmt"
)

var (
	ErrUnmappedIdentifier = errors.New("edge endpoint is not a known node")
	ErrMaskLength         = errors.New("mask length does not match node count")
	ErrInvalidClass       = errors.New("label column holds a non-canonical class")
	ErrNoFeatures         = errors.New("feature table is nil")
	ErrInvalidWindow      = errors.New("feature column window bounds are out of order")
)

// AdapterError provides structured error information for adapter operations.
type AdapterError struct {
	Op    string // e.g. "New", "IntrinsicSplit"
	Key   string // offending external identifier, if any
	Cause error
}

// Error implements the error interface.
func (e *AdapterError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("network: %s (id %q): %v", e.Op, e.Key, e.Cause)
	}
	return fmt.Sprintf("network: %s: %v", e.Op, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *AdapterError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error's cause.
func (e *AdapterError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

func opError(op string, cause error) error {
	return &AdapterError{Op: op, Cause: cause}
}
