package table

import (
	"errors"
	"fmt"
)

var (
	ErrColumnNotFound  = errors.New("column not found")
	ErrDuplicateColumn = errors.New("duplicate column")
	ErrDuplicateKey    = errors.New("duplicate key")
	ErrShape           = errors.New("shape mismatch")
	ErrMaskLength      = errors.New("mask length does not match row count")
	ErrEmptyInput      = errors.New("empty input")
)

// ParseError reports a cell that could not be converted to a number.
type ParseError struct {
	Row    int // 1-based data row, header excluded
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("row %d column %q: cannot parse %q: %v", e.Row, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
