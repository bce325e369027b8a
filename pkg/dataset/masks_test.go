package dataset

import (
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/dd0wney/cluso-fraudnet/pkg/labels"
)

func TestDeriveMasks(t *testing.T) {
	tests := []struct {
		name  string
		time  float64
		class labels.Class
		want  [3]bool
	}{
		{"early licit", 1, labels.Licit, [3]bool{true, false, false}},
		{"last train step", 29, labels.Illicit, [3]bool{true, false, false}},
		{"first val step", 30, labels.Licit, [3]bool{false, true, false}},
		{"last val step", 39, labels.Illicit, [3]bool{false, true, false}},
		{"first test step", 40, labels.Licit, [3]bool{false, false, true}},
		{"late unknown", 49, labels.Unknown, [3]bool{false, false, false}},
		{"early unknown", 1, labels.Unknown, [3]bool{false, false, false}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := DeriveMasks([]float64{tt.time}, []labels.Class{tt.class}, DefaultThresholds())
			if err != nil {
				t.Fatal(err)
			}
			got := [3]bool{m.Train[0], m.Val[0], m.Test[0]}
			if got != tt.want {
				t.Errorf("masks = %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := DeriveMasks([]float64{1}, nil, DefaultThresholds()); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("length mismatch error = %v", err)
	}
}

// TestMaskInvariants checks split membership over random nodes
func TestMaskInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("unknown nodes are in no split, known nodes in exactly one", prop.ForAll(
		func(steps []int, raw []uint8) bool {
			n := len(steps)
			if len(raw) < n {
				n = len(raw)
			}
			times := make([]float64, n)
			classes := make([]labels.Class, n)
			for i := 0; i < n; i++ {
				times[i] = float64(steps[i])
				classes[i] = labels.All[int(raw[i])%len(labels.All)]
			}

			m, err := DeriveMasks(times, classes, DefaultThresholds())
			if err != nil {
				return false
			}
			train, val, test := m.Counts()
			known := 0
			for i, c := range classes {
				member := 0
				for _, in := range []bool{m.Train[i], m.Val[i], m.Test[i]} {
					if in {
						member++
					}
				}
				if c == labels.Unknown && member != 0 {
					return false
				}
				if c != labels.Unknown {
					if member != 1 {
						return false
					}
					known++
				}
			}
			return train+val+test == known
		},
		gen.SliceOf(gen.IntRange(1, 49)),
		gen.SliceOf(gen.UInt8()),
	))

	properties.TestingRun(t)
}
