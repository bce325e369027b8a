package tensor

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseDevice(t *testing.T) {
	tests := []struct {
		in      string
		want    Device
		wantErr bool
	}{
		{"", CPU, false},
		{"cpu", CPU, false},
		{" CPU ", CPU, false},
		{"cuda", "", true},
		{"cuda:0", "", true},
	}
	for _, tt := range tests {
		got, err := ParseDevice(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnsupportedDevice) {
				t.Errorf("ParseDevice(%q) error = %v, want ErrUnsupportedDevice", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseDevice(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestMatrix(t *testing.T) {
	if _, err := NewMatrix(2, 2, []float32{1}); !errors.Is(err, ErrShape) {
		t.Errorf("NewMatrix short data error = %v", err)
	}

	m, err := NewMatrix(3, 2, []float32{1, 2, 3, 4, 5, 6})
	if err != nil {
		t.Fatal(err)
	}
	if m.At(1, 1) != 4 {
		t.Errorf("At(1,1) = %v", m.At(1, 1))
	}

	sel, err := m.SelectRows([]bool{true, false, true})
	if err != nil {
		t.Fatal(err)
	}
	if r, c := sel.Shape(); r != 2 || c != 2 {
		t.Errorf("SelectRows shape = %dx%d", r, c)
	}
	if !reflect.DeepEqual(sel.Data, []float32{1, 2, 5, 6}) {
		t.Errorf("SelectRows data = %v", sel.Data)
	}

	empty, err := m.SelectRows([]bool{false, false, false})
	if err != nil {
		t.Fatal(err)
	}
	if empty.Rows != 0 || len(empty.Data) != 0 {
		t.Errorf("empty selection = %+v", empty)
	}

	if _, err := m.SelectRows([]bool{true}); !errors.Is(err, ErrShape) {
		t.Errorf("short mask error = %v", err)
	}
	if _, err := m.To("tpu"); !errors.Is(err, ErrUnsupportedDevice) {
		t.Errorf("To(tpu) error = %v", err)
	}
}

func TestOnes(t *testing.T) {
	m := Ones(3, 1)
	if m.Rows != 3 || m.Cols != 1 {
		t.Fatalf("shape = %dx%d", m.Rows, m.Cols)
	}
	for i, v := range m.Data {
		if v != 1 {
			t.Errorf("Data[%d] = %v", i, v)
		}
	}
}

func TestVector(t *testing.T) {
	v := NewVector([]int64{1, 0, 2})
	sel, err := v.Select([]bool{false, true, true})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(sel.Data, []int64{0, 2}) {
		t.Errorf("Select = %v", sel.Data)
	}
	moved, err := v.To("")
	if err != nil || moved.Device != CPU {
		t.Errorf("To(\"\") = %v, %v", moved, err)
	}
}
