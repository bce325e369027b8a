// Package network turns a transaction dataset into graph and tensor views.
//
// An Adapter is built once from a feature frame (one row per transaction,
// keyed by external identifier, with a canonical "class" column) and an
// edge list of external identifier pairs. Construction assigns dense node
// indices in row order, remaps the edges and, for undirected networks,
// appends the reverse of every edge. After New returns the Adapter is
// read-only, so every export may be called concurrently and repeatedly.
package network

import (
	"fmt"
	"time"

	"github.com/dd0wney/cluso-fraudnet/pkg/labels"
	"github.com/dd0wney/cluso-fraudnet/pkg/logging"
	"github.com/dd0wney/cluso-fraudnet/pkg/metrics"
	"github.com/dd0wney/cluso-fraudnet/pkg/schema"
	"github.com/dd0wney/cluso-fraudnet/pkg/table"
)

// LabelColumn holds the canonical class of each transaction.
const LabelColumn = "class"

// Adapter holds a remapped transaction network.
type Adapter struct {
	name     string
	directed bool

	features *table.Frame
	ids      *IDMap
	edges    []Pair
	classes  []labels.Class

	train, val, test []bool

	window    schema.Window
	hasWindow bool
	windowSet bool

	logger  logging.Logger
	metrics *metrics.Registry
}

// New builds an Adapter. Every edge endpoint must be a feature key, and the
// label column must hold canonical classes.
func New(features *table.Frame, edges *table.EdgeList, opts ...Option) (*Adapter, error) {
	if features == nil {
		return nil, opError("New", ErrNoFeatures)
	}

	a := &Adapter{
		features: features,
		logger:   logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if !a.windowSet {
		a.window, a.hasWindow = schema.Lookup(a.name)
	} else if !a.window.Valid() {
		return nil, opError("New", fmt.Errorf("%w: %+v", ErrInvalidWindow, a.window))
	}
	a.logger = a.logger.With(logging.Component("network"), logging.Dataset(a.name))

	timer := logging.StartTimer(a.logger, "network built")

	ids, err := NewIDMap(features.Keys())
	if err != nil {
		return nil, opError("New", err)
	}
	a.ids = ids

	if a.classes, err = readClasses(features); err != nil {
		return nil, err
	}

	if edges == nil {
		edges, _ = table.NewEdgeList(nil, nil)
	}
	if !a.directed {
		edges = edges.Concat(edges.Reversed())
	}
	if a.edges, err = a.remap(edges); err != nil {
		return nil, err
	}

	timer.End(
		logging.Count(a.ids.Len()),
		logging.Int("edges", len(a.edges)),
		logging.Bool("directed", a.directed),
	)
	return a, nil
}

func readClasses(features *table.Frame) ([]labels.Class, error) {
	col, err := features.Column(LabelColumn)
	if err != nil {
		return nil, opError("New", err)
	}
	classes := make([]labels.Class, len(col))
	for i, v := range col {
		c := labels.Class(int64(v))
		if float64(c) != v || !c.Valid() {
			return nil, &AdapterError{
				Op:    "New",
				Key:   features.Key(i),
				Cause: fmt.Errorf("%w: %v", ErrInvalidClass, v),
			}
		}
		classes[i] = c
	}
	return classes, nil
}

func (a *Adapter) remap(edges *table.EdgeList) ([]Pair, error) {
	pairs := make([]Pair, edges.Len())
	for i := range pairs {
		src, dst := edges.Edge(i)
		u, ok := a.ids.Index(src)
		if !ok {
			return nil, &AdapterError{Op: "New", Key: src, Cause: ErrUnmappedIdentifier}
		}
		v, ok := a.ids.Index(dst)
		if !ok {
			return nil, &AdapterError{Op: "New", Key: dst, Cause: ErrUnmappedIdentifier}
		}
		pairs[i] = Pair{Src: u, Dst: v}
	}
	return pairs, nil
}

// Name returns the dataset name.
func (a *Adapter) Name() string { return a.name }

// Directed reports whether edges were kept one-way.
func (a *Adapter) Directed() bool { return a.directed }

// NumNodes returns the number of transactions.
func (a *Adapter) NumNodes() int { return a.ids.Len() }

// NumEdges returns the number of remapped edges, reverse copies included.
func (a *Adapter) NumEdges() int { return len(a.edges) }

// IDs returns the identifier map.
func (a *Adapter) IDs() *IDMap { return a.ids }

// Edges returns a copy of the remapped edges in order.
func (a *Adapter) Edges() []Pair {
	out := make([]Pair, len(a.edges))
	copy(out, a.edges)
	return out
}

// Classes returns the canonical class of every node in index order.
func (a *Adapter) Classes() []labels.Class {
	out := make([]labels.Class, len(a.classes))
	copy(out, a.classes)
	return out
}

// Frame returns the feature frame the adapter was built from.
func (a *Adapter) Frame() *table.Frame { return a.features }

// FraudMap returns node index -> canonical class.
func (a *Adapter) FraudMap() map[int]labels.Class {
	out := make(map[int]labels.Class, len(a.classes))
	for i, c := range a.classes {
		out[i] = c
	}
	return out
}

// Masks returns the split masks as supplied, nil where absent.
func (a *Adapter) Masks() (train, val, test []bool) {
	return cloneMask(a.train), cloneMask(a.val), cloneMask(a.test)
}

// Window returns the feature column window in effect, if any.
func (a *Adapter) Window() (schema.Window, bool) {
	return a.window, a.hasWindow
}

func (a *Adapter) observe(format string, edges int, start time.Time, err error) {
	if a.metrics != nil {
		a.metrics.RecordExport(format, edges, time.Since(start), err)
	}
	if err != nil {
		a.logger.Error("export failed", logging.Format(format), logging.Error(err))
		return
	}
	a.logger.Debug("export complete", logging.Format(format), logging.Latency(time.Since(start)))
}
