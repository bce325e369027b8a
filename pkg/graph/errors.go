package graph

import (
	"errors"
	"fmt"
)

var (
	ErrNodeNotFound = errors.New("node not found")
	ErrNodeExists   = errors.New("node already exists")
	ErrEdgeNotFound = errors.New("edge not found")
	ErrValueType    = errors.New("value type mismatch")
)

// GraphError provides structured error information for graph operations.
type GraphError struct {
	Op     string // e.g. "AddEdge"
	Entity string // "node" or "edge"
	ID     uint64
	Role   string // endpoint role for edge operations: "source" or "target"
	Cause  error
}

func (e *GraphError) Error() string {
	if e.Role != "" {
		return fmt.Sprintf("%s: %s %s %d: %v", e.Op, e.Role, e.Entity, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s %d: %v", e.Op, e.Entity, e.ID, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *GraphError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error's cause.
func (e *GraphError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

// IsNotFound returns true if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNodeNotFound) || errors.Is(err, ErrEdgeNotFound)
}
