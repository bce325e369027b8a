// Package labels defines the canonical transaction classes and the mapping
// from the raw dataset encoding.
//
// Raw datasets encode classes as 1 (illicit), 2 (licit) and 3 or "unknown"
// (unlabelled). Canonical classes are Licit=0, Illicit=1, Unknown=2, which
// puts the two labelled classes first so they can be used directly as
// binary targets.
package labels

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownClass is returned for raw values outside the raw domain.
var ErrUnknownClass = errors.New("labels: unknown raw class value")

// Class is a canonical transaction class.
type Class int64

const (
	Licit   Class = 0
	Illicit Class = 1
	Unknown Class = 2
)

// All lists the canonical classes in numeric order.
var All = []Class{Licit, Illicit, Unknown}

// String returns the lower-case class name.
func (c Class) String() string {
	switch c {
	case Licit:
		return "licit"
	case Illicit:
		return "illicit"
	case Unknown:
		return "unknown"
	default:
		return "class(" + strconv.FormatInt(int64(c), 10) + ")"
	}
}

// Known reports whether c carries a label usable for training.
func (c Class) Known() bool {
	return c == Licit || c == Illicit
}

// Valid reports whether c is one of the canonical classes.
func (c Class) Valid() bool {
	return c == Licit || c == Illicit || c == Unknown
}

// rawToCanonical is total over the raw integer domain {1, 2, 3}.
var rawToCanonical = map[int64]Class{
	1: Illicit,
	2: Licit,
	3: Unknown,
}

// FromRaw maps a raw integer class to its canonical class.
func FromRaw(raw int64) (Class, error) {
	c, ok := rawToCanonical[raw]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownClass, raw)
	}
	return c, nil
}

// FromFloat maps a raw class read from a numeric column.
func FromFloat(raw float64) (Class, error) {
	i := int64(raw)
	if float64(i) != raw {
		return 0, fmt.Errorf("%w: %g", ErrUnknownClass, raw)
	}
	return FromRaw(i)
}

// Parse maps a raw class as it appears in a file. Integer encodings
// ("1", "2", "3", "1.0") and the names "illicit", "licit" and "unknown"
// are accepted, case-insensitively.
func Parse(s string) (Class, error) {
	t := strings.ToLower(strings.TrimSpace(s))
	switch t {
	case "illicit":
		return Illicit, nil
	case "licit":
		return Licit, nil
	case "unknown":
		return Unknown, nil
	}

	if i, err := strconv.ParseInt(t, 10, 64); err == nil {
		return FromRaw(i)
	}
	if f, err := strconv.ParseFloat(t, 64); err == nil {
		return FromFloat(f)
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownClass, s)
}

// Histogram counts classes by name.
func Histogram(classes []Class) map[string]int {
	out := make(map[string]int, len(All))
	for _, c := range All {
		out[c.String()] = 0
	}
	for _, c := range classes {
		out[c.String()]++
	}
	return out
}
