package dataset

import (
	"errors"
	"fmt"
)

var (
	ErrMissingColumn  = errors.New("expected column is missing")
	ErrMissingLabel   = errors.New("transaction has no class label")
	ErrDuplicateLabel = errors.New("transaction labelled more than once")
	ErrUnknownDataset = errors.New("unknown dataset")
	ErrLengthMismatch = errors.New("time steps and classes differ in length")
)

// LoadError provides structured error information for loader stages.
type LoadError struct {
	Op    string // stage: "read", "harmonize", "labels", "masks", "build"
	Table string // "features", "edges" or "classes"
	Path  string
	Cause error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	switch {
	case e.Path != "":
		return fmt.Sprintf("dataset: %s %s %s: %v", e.Op, e.Table, e.Path, e.Cause)
	case e.Table != "":
		return fmt.Sprintf("dataset: %s %s: %v", e.Op, e.Table, e.Cause)
	default:
		return fmt.Sprintf("dataset: %s: %v", e.Op, e.Cause)
	}
}

// Unwrap returns the underlying cause for error chain support.
func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error's cause.
func (e *LoadError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}
