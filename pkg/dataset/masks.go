package dataset

import (
	"fmt"

	"github.com/dd0wney/cluso-fraudnet/pkg/labels"
)

// Thresholds bound the time-based split: train is time < TrainEnd, val is
// TrainEnd <= time < ValEnd, test is time >= ValEnd.
type Thresholds struct {
	TrainEnd float64 `yaml:"train_end"`
	ValEnd   float64 `yaml:"val_end"`
}

// DefaultThresholds returns the Elliptic temporal split at steps 30 and 40.
func DefaultThresholds() Thresholds {
	return Thresholds{TrainEnd: 30, ValEnd: 40}
}

// Masks are per-node split memberships aligned with node order.
type Masks struct {
	Train []bool
	Val   []bool
	Test  []bool
}

// Counts returns how many nodes each mask selects.
func (m Masks) Counts() (train, val, test int) {
	for i := range m.Train {
		if m.Train[i] {
			train++
		}
		if m.Val[i] {
			val++
		}
		if m.Test[i] {
			test++
		}
	}
	return train, val, test
}

// DeriveMasks assigns every labelled node to exactly one split by time
// step. Nodes of unknown class belong to none.
func DeriveMasks(timeSteps []float64, classes []labels.Class, th Thresholds) (Masks, error) {
	if len(timeSteps) != len(classes) {
		return Masks{}, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(timeSteps), len(classes))
	}
	m := Masks{
		Train: make([]bool, len(classes)),
		Val:   make([]bool, len(classes)),
		Test:  make([]bool, len(classes)),
	}
	for i, c := range classes {
		if c == labels.Unknown {
			continue
		}
		t := timeSteps[i]
		switch {
		case t < th.TrainEnd:
			m.Train[i] = true
		case t < th.ValEnd:
			m.Val[i] = true
		case t >= th.ValEnd:
			m.Test[i] = true
		}
	}
	return m, nil
}
