package table

import (
	"fmt"
)

// Column is a named float64 column.
type Column struct {
	Name   string
	Values []float64
}

// Frame is an immutable table keyed by an external identifier column.
type Frame struct {
	keyName string
	keys    []string
	cols    []Column
	byName  map[string]int
}

// NewFrame builds a Frame. Keys must be unique and every column must have
// len(keys) values. The slices are retained, not copied; callers must not
// modify them afterwards.
func NewFrame(keyName string, keys []string, cols []Column) (*Frame, error) {
	seen := make(map[string]struct{}, len(keys))
	for i, k := range keys {
		if _, dup := seen[k]; dup {
			return nil, fmt.Errorf("%w: %q at row %d", ErrDuplicateKey, k, i)
		}
		seen[k] = struct{}{}
	}
	return newFrame(keyName, keys, cols)
}

// newFrame skips the key uniqueness scan for frames derived from a valid one.
func newFrame(keyName string, keys []string, cols []Column) (*Frame, error) {
	f := &Frame{
		keyName: keyName,
		keys:    keys,
		cols:    cols,
		byName:  make(map[string]int, len(cols)),
	}
	for i, c := range cols {
		if len(c.Values) != len(keys) {
			return nil, fmt.Errorf("%w: column %q has %d values, want %d", ErrShape, c.Name, len(c.Values), len(keys))
		}
		if c.Name == keyName {
			return nil, fmt.Errorf("%w: %q collides with the key column", ErrDuplicateColumn, c.Name)
		}
		if _, dup := f.byName[c.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, c.Name)
		}
		f.byName[c.Name] = i
	}
	return f, nil
}

// Len returns the number of rows.
func (f *Frame) Len() int { return len(f.keys) }

// Width returns the number of value columns (the key column excluded).
func (f *Frame) Width() int { return len(f.cols) }

// KeyName returns the name of the key column.
func (f *Frame) KeyName() string { return f.keyName }

// Keys returns a copy of the key column in row order.
func (f *Frame) Keys() []string {
	out := make([]string, len(f.keys))
	copy(out, f.keys)
	return out
}

// Key returns the key of row i.
func (f *Frame) Key(i int) string { return f.keys[i] }

// Names returns the value column names in order.
func (f *Frame) Names() []string {
	out := make([]string, len(f.cols))
	for i, c := range f.cols {
		out[i] = c.Name
	}
	return out
}

// Has reports whether a value column exists.
func (f *Frame) Has(name string) bool {
	_, ok := f.byName[name]
	return ok
}

// Column returns a copy of the named value column.
func (f *Frame) Column(name string) ([]float64, error) {
	i, ok := f.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	out := make([]float64, len(f.cols[i].Values))
	copy(out, f.cols[i].Values)
	return out, nil
}

// At returns the value at row r of the named column.
func (f *Frame) At(r int, name string) (float64, error) {
	i, ok := f.byName[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	return f.cols[i].Values[r], nil
}

// Rename returns a frame with columns renamed by mapping. The key column can
// be renamed too. Names absent from the frame are ignored, as are renames
// onto the same name.
func (f *Frame) Rename(mapping map[string]string) (*Frame, error) {
	keyName := f.keyName
	if to, ok := mapping[keyName]; ok {
		keyName = to
	}
	cols := make([]Column, len(f.cols))
	for i, c := range f.cols {
		name := c.Name
		if to, ok := mapping[name]; ok {
			name = to
		}
		cols[i] = Column{Name: name, Values: c.Values}
	}
	return newFrame(keyName, f.keys, cols)
}

// Select returns a frame holding only the named columns, in the given order.
func (f *Frame) Select(names ...string) (*Frame, error) {
	cols := make([]Column, 0, len(names))
	for _, n := range names {
		i, ok := f.byName[n]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, n)
		}
		cols = append(cols, f.cols[i])
	}
	return newFrame(f.keyName, f.keys, cols)
}

// Drop returns a frame without the named columns. Every name must exist.
func (f *Frame) Drop(names ...string) (*Frame, error) {
	drop := make(map[string]struct{}, len(names))
	for _, n := range names {
		if _, ok := f.byName[n]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, n)
		}
		drop[n] = struct{}{}
	}
	cols := make([]Column, 0, len(f.cols))
	for _, c := range f.cols {
		if _, skip := drop[c.Name]; !skip {
			cols = append(cols, c)
		}
	}
	return newFrame(f.keyName, f.keys, cols)
}

// Without is Drop that tolerates missing names.
func (f *Frame) Without(names ...string) *Frame {
	present := make([]string, 0, len(names))
	for _, n := range names {
		if f.Has(n) {
			present = append(present, n)
		}
	}
	out, _ := f.Drop(present...)
	return out
}

// WithColumn returns a frame with the column replaced, or appended when new.
func (f *Frame) WithColumn(name string, values []float64) (*Frame, error) {
	cols := make([]Column, len(f.cols), len(f.cols)+1)
	copy(cols, f.cols)
	if i, ok := f.byName[name]; ok {
		cols[i] = Column{Name: name, Values: values}
	} else {
		cols = append(cols, Column{Name: name, Values: values})
	}
	return newFrame(f.keyName, f.keys, cols)
}

// Filter returns the rows whose mask entry is true, preserving order.
func (f *Frame) Filter(mask []bool) (*Frame, error) {
	if len(mask) != len(f.keys) {
		return nil, fmt.Errorf("%w: %d vs %d rows", ErrMaskLength, len(mask), len(f.keys))
	}
	n := 0
	for _, m := range mask {
		if m {
			n++
		}
	}

	keys := make([]string, 0, n)
	for i, m := range mask {
		if m {
			keys = append(keys, f.keys[i])
		}
	}
	cols := make([]Column, len(f.cols))
	for j, c := range f.cols {
		vals := make([]float64, 0, n)
		for i, m := range mask {
			if m {
				vals = append(vals, c.Values[i])
			}
		}
		cols[j] = Column{Name: c.Name, Values: vals}
	}
	return newFrame(f.keyName, keys, cols)
}

// Float32Rows returns the value columns as a row-major float32 slice of
// length Len()*Width().
func (f *Frame) Float32Rows() []float32 {
	rows, width := len(f.keys), len(f.cols)
	out := make([]float32, rows*width)
	for j, c := range f.cols {
		for i, v := range c.Values {
			out[i*width+j] = float32(v)
		}
	}
	return out
}
