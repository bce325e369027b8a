package labels

import (
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestFromRaw(t *testing.T) {
	tests := []struct {
		raw  int64
		want Class
	}{
		{1, Illicit},
		{2, Licit},
		{3, Unknown},
	}
	for _, tt := range tests {
		got, err := FromRaw(tt.raw)
		if err != nil {
			t.Fatalf("FromRaw(%d) error: %v", tt.raw, err)
		}
		if got != tt.want {
			t.Errorf("FromRaw(%d) = %v, want %v", tt.raw, got, tt.want)
		}
	}

	if _, err := FromRaw(0); !errors.Is(err, ErrUnknownClass) {
		t.Errorf("FromRaw(0) error = %v, want ErrUnknownClass", err)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Class
		wantErr bool
	}{
		{"1", Illicit, false},
		{" 2 ", Licit, false},
		{"3", Unknown, false},
		{"1.0", Illicit, false},
		{"unknown", Unknown, false},
		{"Illicit", Illicit, false},
		{"LICIT", Licit, false},
		{"2.5", 0, true},
		{"4", 0, true},
		{"fraud", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownClass) {
					t.Errorf("Parse(%q) error = %v, want ErrUnknownClass", tt.in, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("Parse(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
			}
		})
	}
}

func TestClassString(t *testing.T) {
	if Illicit.String() != "illicit" || Licit.String() != "licit" || Unknown.String() != "unknown" {
		t.Error("unexpected class names")
	}
	if Class(9).String() != "class(9)" {
		t.Errorf("Class(9).String() = %q", Class(9).String())
	}
	if Unknown.Known() || !Illicit.Known() || !Licit.Known() {
		t.Error("Known() mismatch")
	}
}

func TestHistogram(t *testing.T) {
	h := Histogram([]Class{Illicit, Licit, Unknown, Unknown})
	if h["illicit"] != 1 || h["licit"] != 1 || h["unknown"] != 2 {
		t.Errorf("Histogram = %v", h)
	}
	if empty := Histogram(nil); len(empty) != 3 {
		t.Errorf("Histogram(nil) should list every class, got %v", empty)
	}
}

// The raw mapping is a pure function onto {0, 1, 2}.
func TestClassMappingProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("raw domain maps onto canonical classes", prop.ForAll(
		func(raw int64) bool {
			first, err := FromRaw(raw)
			if err != nil {
				return false
			}
			second, _ := FromRaw(raw)
			return first == second && first.Valid()
		},
		gen.Int64Range(1, 3),
	))

	properties.Property("values outside the raw domain are rejected", prop.ForAll(
		func(raw int64) bool {
			_, err := FromRaw(raw)
			return errors.Is(err, ErrUnknownClass)
		},
		gen.Int64().SuchThat(func(v int64) bool { return v < 1 || v > 3 }),
	))

	properties.TestingRun(t)
}
