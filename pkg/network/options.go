package network

import (
	"github.com/dd0wney/cluso-fraudnet/pkg/logging"
	"github.com/dd0wney/cluso-fraudnet/pkg/metrics"
	"github.com/dd0wney/cluso-fraudnet/pkg/schema"
)

// Option configures an Adapter.
type Option func(*Adapter)

// WithDirected keeps edges one-way. The default is undirected.
func WithDirected(directed bool) Option {
	return func(a *Adapter) { a.directed = directed }
}

// WithMasks attaches split masks aligned with feature row order. Any of
// them may be nil.
func WithMasks(train, val, test []bool) Option {
	return func(a *Adapter) {
		a.train = cloneMask(train)
		a.val = cloneMask(val)
		a.test = cloneMask(test)
	}
}

// WithName names the dataset. A schema window registered under the name is
// used by Features unless WithSchema overrides it.
func WithName(name string) Option {
	return func(a *Adapter) { a.name = name }
}

// WithSchema sets the feature column window explicitly.
func WithSchema(w schema.Window) Option {
	return func(a *Adapter) {
		a.window = w
		a.hasWindow = true
		a.windowSet = true
	}
}

// WithLogger sets the logger. The default discards output.
func WithLogger(l logging.Logger) Option {
	return func(a *Adapter) { a.logger = l }
}

// WithMetrics records export counts and durations in r.
func WithMetrics(r *metrics.Registry) Option {
	return func(a *Adapter) { a.metrics = r }
}

func cloneMask(m []bool) []bool {
	if m == nil {
		return nil
	}
	out := make([]bool, len(m))
	copy(out, m)
	return out
}
