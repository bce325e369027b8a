// Package schema holds per-dataset feature column windows.
//
// Some datasets keep their canonical feature columns at fixed positional
// names. A Window names that range so the adapter can select it without
// knowing which dataset it is serving.
package schema

import "strconv"

// Window selects canonical numeric column names [Start, End), or
// [Start, FullEnd) when the full feature set is requested.
type Window struct {
	Start   int
	End     int
	FullEnd int
}

// Valid reports whether the bounds are ordered.
func (w Window) Valid() bool {
	return w.Start >= 0 && w.Start < w.End && w.End <= w.FullEnd
}

// Columns returns the canonical column names covered by the window.
func (w Window) Columns(isFull bool) []string {
	end := w.End
	if isFull {
		end = w.FullEnd
	}
	out := make([]string, 0, end-w.Start)
	for i := w.Start; i < end; i++ {
		out = append(out, strconv.Itoa(i))
	}
	return out
}

// Elliptic covers the 93 local features, plus the 72 aggregated ones and the
// 17 auxiliary columns when full.
var Elliptic = Window{Start: 2, End: 95, FullEnd: 184}

var windows = map[string]Window{
	"elliptic": Elliptic,
}

// Lookup returns the window registered for name.
func Lookup(name string) (Window, bool) {
	w, ok := windows[name]
	return w, ok
}
