package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ReadOptions controls ReadCSV.
type ReadOptions struct {
	// Header reports whether the first record names the columns. Without a
	// header, columns are named by position: "0", "1", ...
	Header bool
	// Comma is the field delimiter; zero means ','.
	Comma rune
}

// Records is a raw string table as read from a delimited file.
type Records struct {
	header []string
	rows   [][]string
	index  map[string]int
}

// ReadCSV reads every record from r. All records must have the same number
// of fields.
func ReadCSV(r io.Reader, opts ReadOptions) (*Records, error) {
	reader := csv.NewReader(r)
	if opts.Comma != 0 {
		reader.Comma = opts.Comma
	}
	reader.TrimLeadingSpace = true

	first, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyInput
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	var header []string
	var rows [][]string
	if opts.Header {
		header = make([]string, len(first))
		for i, h := range first {
			header[i] = strings.TrimSpace(h)
		}
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	} else {
		header = make([]string, len(first))
		for i := range first {
			header[i] = strconv.Itoa(i)
		}
		rows = append(rows, first)
	}

	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		rows = append(rows, rec)
	}

	return NewRecords(header, rows)
}

// NewRecords wraps an in-memory string table. Header names must be unique.
func NewRecords(header []string, rows [][]string) (*Records, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		if _, dup := index[h]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, h)
		}
		index[h] = i
	}
	for i, row := range rows {
		if len(row) != len(header) {
			return nil, fmt.Errorf("%w: row %d has %d fields, header has %d", ErrShape, i+1, len(row), len(header))
		}
	}
	return &Records{header: header, rows: rows, index: index}, nil
}

// Header returns the column names.
func (r *Records) Header() []string {
	out := make([]string, len(r.header))
	copy(out, r.header)
	return out
}

// Len returns the number of data rows.
func (r *Records) Len() int { return len(r.rows) }

// Has reports whether a column exists.
func (r *Records) Has(name string) bool {
	_, ok := r.index[name]
	return ok
}

// Rename returns records with header names replaced by mapping.
func (r *Records) Rename(mapping map[string]string) (*Records, error) {
	header := make([]string, len(r.header))
	for i, h := range r.header {
		if to, ok := mapping[h]; ok {
			header[i] = to
		} else {
			header[i] = h
		}
	}
	return NewRecords(header, r.rows)
}

// Column returns the raw string values of a column.
func (r *Records) Column(name string) ([]string, error) {
	i, ok := r.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	out := make([]string, len(r.rows))
	for j, row := range r.rows {
		out[j] = strings.TrimSpace(row[i])
	}
	return out, nil
}

// Frame converts the records into a Frame keyed by keyColumn. Every other
// column is parsed as float64; an empty cell becomes NaN.
func (r *Records) Frame(keyColumn string) (*Frame, error) {
	keys, err := r.Column(keyColumn)
	if err != nil {
		return nil, err
	}

	cols := make([]Column, 0, len(r.header)-1)
	for ci, name := range r.header {
		if name == keyColumn {
			continue
		}
		vals := make([]float64, len(r.rows))
		for ri, row := range r.rows {
			v, err := parseCell(row[ci])
			if err != nil {
				return nil, &ParseError{Row: ri + 1, Column: name, Value: row[ci], Err: err}
			}
			vals[ri] = v
		}
		cols = append(cols, Column{Name: name, Values: vals})
	}
	return NewFrame(keyColumn, keys, cols)
}

// EdgeList converts two identifier columns into an EdgeList.
func (r *Records) EdgeList(src, dst string) (*EdgeList, error) {
	s, err := r.Column(src)
	if err != nil {
		return nil, err
	}
	d, err := r.Column(dst)
	if err != nil {
		return nil, err
	}
	return NewEdgeList(s, d)
}

func parseCell(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}
