// Package tensor holds dense row-major arrays in the layout graph-learning
// frameworks expect: float32 features, int64 labels and a 2xE edge index.
package tensor

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnsupportedDevice = errors.New("unsupported device")
	ErrShape             = errors.New("tensor shape mismatch")
)

// Device names where tensor data lives. Only host memory is available.
type Device string

const CPU Device = "cpu"

// ParseDevice normalizes a device name. The empty string means CPU.
func ParseDevice(s string) (Device, error) {
	switch d := Device(strings.ToLower(strings.TrimSpace(s))); d {
	case "", CPU:
		return CPU, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedDevice, s)
	}
}

// Matrix is a row-major float32 matrix.
type Matrix struct {
	Rows   int
	Cols   int
	Data   []float32
	Device Device
}

// NewMatrix wraps data as a rows x cols matrix on the CPU.
func NewMatrix(rows, cols int, data []float32) (*Matrix, error) {
	if rows*cols != len(data) {
		return nil, fmt.Errorf("%w: %dx%d needs %d values, got %d", ErrShape, rows, cols, rows*cols, len(data))
	}
	return &Matrix{Rows: rows, Cols: cols, Data: data, Device: CPU}, nil
}

// Ones returns a rows x cols matrix filled with 1.
func Ones(rows, cols int) *Matrix {
	data := make([]float32, rows*cols)
	for i := range data {
		data[i] = 1
	}
	return &Matrix{Rows: rows, Cols: cols, Data: data, Device: CPU}
}

// At returns element (r, c).
func (m *Matrix) At(r, c int) float32 { return m.Data[r*m.Cols+c] }

// Row returns row r. The slice aliases the matrix.
func (m *Matrix) Row(r int) []float32 { return m.Data[r*m.Cols : (r+1)*m.Cols] }

// Shape returns (rows, cols).
func (m *Matrix) Shape() (int, int) { return m.Rows, m.Cols }

// SelectRows copies the rows whose mask entry is true.
func (m *Matrix) SelectRows(mask []bool) (*Matrix, error) {
	if len(mask) != m.Rows {
		return nil, fmt.Errorf("%w: mask has %d entries for %d rows", ErrShape, len(mask), m.Rows)
	}
	data := make([]float32, 0, len(m.Data))
	n := 0
	for r, keep := range mask {
		if keep {
			data = append(data, m.Row(r)...)
			n++
		}
	}
	return &Matrix{Rows: n, Cols: m.Cols, Data: data, Device: m.Device}, nil
}

// To places the matrix on a device.
func (m *Matrix) To(d Device) (*Matrix, error) {
	dev, err := ParseDevice(string(d))
	if err != nil {
		return nil, err
	}
	out := *m
	out.Device = dev
	return &out, nil
}

// Vector is an int64 vector.
type Vector struct {
	Data   []int64
	Device Device
}

// NewVector wraps data as a CPU vector.
func NewVector(data []int64) *Vector {
	return &Vector{Data: data, Device: CPU}
}

// Len returns the number of elements.
func (v *Vector) Len() int { return len(v.Data) }

// Select copies the elements whose mask entry is true.
func (v *Vector) Select(mask []bool) (*Vector, error) {
	if len(mask) != len(v.Data) {
		return nil, fmt.Errorf("%w: mask has %d entries for %d elements", ErrShape, len(mask), len(v.Data))
	}
	out := make([]int64, 0, len(v.Data))
	for i, keep := range mask {
		if keep {
			out = append(out, v.Data[i])
		}
	}
	return &Vector{Data: out, Device: v.Device}, nil
}

// To places the vector on a device.
func (v *Vector) To(d Device) (*Vector, error) {
	dev, err := ParseDevice(string(d))
	if err != nil {
		return nil, err
	}
	out := *v
	out.Device = dev
	return &out, nil
}

// EdgeIndex is a 2xE int64 array: row 0 holds sources, row 1 targets.
type EdgeIndex struct {
	Src []int64
	Dst []int64
}

// Len returns E.
func (e *EdgeIndex) Len() int { return len(e.Src) }

// Shape returns (2, E).
func (e *EdgeIndex) Shape() (int, int) { return 2, len(e.Src) }

// GraphData is the graph-learning view of a dataset.
type GraphData struct {
	X          *Matrix
	Y          *Vector
	EdgeIndex  *EdgeIndex
	EdgeWeight []float32

	// Masks are nil when the dataset carries none.
	TrainMask []bool
	ValMask   []bool
	TestMask  []bool
}

// NumNodes returns the number of rows in X.
func (g *GraphData) NumNodes() int { return g.X.Rows }

// NumEdges returns the number of edge index columns.
func (g *GraphData) NumEdges() int { return g.EdgeIndex.Len() }

// Split is a supervised train/test partition.
type Split struct {
	XTrain *Matrix
	XTest  *Matrix
	YTrain *Vector
	YTest  *Vector
}
