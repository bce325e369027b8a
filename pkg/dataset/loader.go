// Package dataset loads transaction datasets into a network.Adapter.
//
// A load reads three tables (node features, edges, class labels), renames
// feature columns to their canonical names, maps raw classes to canonical
// ones, joins them to the features by transaction id and derives the
// time-based split masks.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-fraudnet/pkg/labels"
	"github.com/dd0wney/cluso-fraudnet/pkg/logging"
	"github.com/dd0wney/cluso-fraudnet/pkg/metrics"
	"github.com/dd0wney/cluso-fraudnet/pkg/network"
	"github.com/dd0wney/cluso-fraudnet/pkg/source"
	"github.com/dd0wney/cluso-fraudnet/pkg/table"
)

// Opener opens an input path for reading.
type Opener interface {
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}

// Loader reads datasets. It holds no per-load state and may be reused.
type Loader struct {
	name       string
	schema     *Schema
	directed   bool
	thresholds Thresholds
	opener     Opener
	logger     logging.Logger
	metrics    *metrics.Registry
}

// Option configures a Loader.
type Option func(*Loader)

// WithDataset selects a registered schema by name. The default is
// elliptic_pp.
func WithDataset(name string) Option {
	return func(l *Loader) { l.name = name }
}

// WithSchema uses s instead of a registered schema.
func WithSchema(s Schema) Option {
	return func(l *Loader) { l.schema = &s }
}

// WithDirected builds a directed network. The default is undirected.
func WithDirected(directed bool) Option {
	return func(l *Loader) { l.directed = directed }
}

// WithThresholds overrides the split time steps.
func WithThresholds(th Thresholds) Option {
	return func(l *Loader) { l.thresholds = th }
}

// WithOpener replaces the default path opener.
func WithOpener(o Opener) Option {
	return func(l *Loader) { l.opener = o }
}

// WithLogger sets the logger. The default discards output.
func WithLogger(lg logging.Logger) Option {
	return func(l *Loader) { l.logger = lg }
}

// WithMetrics records load and export metrics in r.
func WithMetrics(r *metrics.Registry) Option {
	return func(l *Loader) { l.metrics = r }
}

// NewLoader creates a Loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		name:       EllipticPP,
		thresholds: DefaultThresholds(),
		opener:     source.NewOpener(),
		logger:     logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads paths with a Loader configured by opts.
func Load(ctx context.Context, paths Paths, opts ...Option) (*network.Adapter, error) {
	return NewLoader(opts...).Load(ctx, paths)
}

// Load reads the three tables and builds the adapter.
func (l *Loader) Load(ctx context.Context, paths Paths) (*network.Adapter, error) {
	s, err := l.resolveSchema()
	if err != nil {
		return nil, &LoadError{Op: "schema", Cause: err}
	}

	log := l.logger.With(
		logging.Component("dataset"),
		logging.Dataset(s.Name),
		logging.RunID(uuid.NewString()),
	)
	timer := logging.StartTimer(log, "dataset loaded")

	adapter, err := l.load(ctx, log, s, paths)
	if err != nil {
		stage := "unknown"
		var le *LoadError
		if errors.As(err, &le) {
			stage = le.Op
		}
		if l.metrics != nil {
			l.metrics.RecordLoadError(stage)
		}
		timer.EndError(err)
		return nil, err
	}

	adapter.Publish()
	st := adapter.Stats()
	timer.End(
		logging.Count(st.Nodes),
		logging.Int("edges", st.Edges),
		logging.Int("train", st.Train),
		logging.Int("val", st.Val),
		logging.Int("test", st.Test),
	)
	return adapter, nil
}

func (l *Loader) resolveSchema() (Schema, error) {
	if l.schema != nil {
		return *l.schema, nil
	}
	return LookupSchema(l.name)
}

func (l *Loader) load(ctx context.Context, log logging.Logger, s Schema, paths Paths) (*network.Adapter, error) {
	features, err := l.readFeatures(ctx, log, s, paths.Features)
	if err != nil {
		return nil, err
	}

	classes, err := l.readClasses(ctx, log, paths.Classes)
	if err != nil {
		return nil, err
	}

	features, nodeClasses, err := joinClasses(log, features, classes)
	if err != nil {
		return nil, &LoadError{Op: "labels", Table: "classes", Path: paths.Classes, Cause: err}
	}

	times, err := features.Column(TimeColumn)
	if err != nil {
		return nil, &LoadError{Op: "masks", Table: "features", Cause: err}
	}
	masks, err := DeriveMasks(times, nodeClasses, l.thresholds)
	if err != nil {
		return nil, &LoadError{Op: "masks", Table: "features", Cause: err}
	}
	train, val, test := masks.Counts()
	log.Debug("masks derived",
		logging.Float64("train_end", l.thresholds.TrainEnd),
		logging.Float64("val_end", l.thresholds.ValEnd),
		logging.Int("train", train),
		logging.Int("val", val),
		logging.Int("test", test),
	)

	edges, err := l.readEdges(ctx, log, paths.Edges)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, &LoadError{Op: "build", Cause: err}
	}
	adapter, err := network.New(features, edges,
		network.WithName(s.Name),
		network.WithDirected(l.directed),
		network.WithMasks(masks.Train, masks.Val, masks.Test),
		network.WithLogger(log),
		network.WithMetrics(l.metrics),
	)
	if err != nil {
		return nil, &LoadError{Op: "build", Cause: err}
	}
	return adapter, nil
}

func (l *Loader) readTable(ctx context.Context, log logging.Logger, name, path string, header bool) (*table.Records, error) {
	if err := ctx.Err(); err != nil {
		return nil, &LoadError{Op: "read", Table: name, Path: path, Cause: err}
	}
	start := time.Now()

	rc, err := l.opener.Open(ctx, path)
	if err != nil {
		return nil, &LoadError{Op: "read", Table: name, Path: path, Cause: err}
	}
	defer rc.Close()

	recs, err := table.ReadCSV(rc, table.ReadOptions{Header: header})
	if err != nil {
		return nil, &LoadError{Op: "read", Table: name, Path: path, Cause: err}
	}

	elapsed := time.Since(start)
	if l.metrics != nil {
		l.metrics.RecordTableLoad(name, recs.Len(), elapsed)
	}
	log.Debug("table read",
		logging.Table(name),
		logging.Path(path),
		logging.Rows(recs.Len()),
		logging.Columns(len(recs.Header())),
		logging.Latency(elapsed),
	)
	return recs, nil
}

func (l *Loader) readFeatures(ctx context.Context, log logging.Logger, s Schema, path string) (*table.Frame, error) {
	recs, err := l.readTable(ctx, log, "features", path, s.FeaturesHeader)
	if err != nil {
		return nil, err
	}

	recs, err = recs.Rename(s.Rename)
	if err != nil {
		return nil, &LoadError{Op: "harmonize", Table: "features", Path: path, Cause: err}
	}
	if err := requireColumns(recs, KeyColumn, TimeColumn); err != nil {
		return nil, &LoadError{Op: "harmonize", Table: "features", Path: path, Cause: err}
	}

	frame, err := recs.Frame(KeyColumn)
	if err != nil {
		return nil, &LoadError{Op: "harmonize", Table: "features", Path: path, Cause: err}
	}
	return frame.Without(ClassColumn), nil
}

func (l *Loader) readClasses(ctx context.Context, log logging.Logger, path string) (map[string]labels.Class, error) {
	recs, err := l.readTable(ctx, log, "classes", path, true)
	if err != nil {
		return nil, err
	}
	if err := requireColumns(recs, KeyColumn, ClassColumn); err != nil {
		return nil, &LoadError{Op: "labels", Table: "classes", Path: path, Cause: err}
	}

	keys, _ := recs.Column(KeyColumn)
	raw, _ := recs.Column(ClassColumn)
	out := make(map[string]labels.Class, len(keys))
	for i, k := range keys {
		c, err := labels.Parse(raw[i])
		if err != nil {
			return nil, &LoadError{Op: "labels", Table: "classes", Path: path, Cause: fmt.Errorf("row %d: %w", i+1, err)}
		}
		if _, dup := out[k]; dup {
			return nil, &LoadError{Op: "labels", Table: "classes", Path: path, Cause: fmt.Errorf("%w: %q at row %d", ErrDuplicateLabel, k, i+1)}
		}
		out[k] = c
	}
	return out, nil
}

func (l *Loader) readEdges(ctx context.Context, log logging.Logger, path string) (*table.EdgeList, error) {
	recs, err := l.readTable(ctx, log, "edges", path, true)
	if err != nil {
		return nil, err
	}
	if err := requireColumns(recs, EdgeSrc, EdgeDst); err != nil {
		return nil, &LoadError{Op: "read", Table: "edges", Path: path, Cause: err}
	}
	edges, err := recs.EdgeList(EdgeSrc, EdgeDst)
	if err != nil {
		return nil, &LoadError{Op: "read", Table: "edges", Path: path, Cause: err}
	}
	return edges, nil
}

// joinClasses appends the canonical class column, matching rows by key.
func joinClasses(log logging.Logger, features *table.Frame, classes map[string]labels.Class) (*table.Frame, []labels.Class, error) {
	n := features.Len()
	values := make([]float64, n)
	nodeClasses := make([]labels.Class, n)
	for i := 0; i < n; i++ {
		key := features.Key(i)
		c, ok := classes[key]
		if !ok {
			return nil, nil, fmt.Errorf("%w: %q", ErrMissingLabel, key)
		}
		nodeClasses[i] = c
		values[i] = float64(c)
	}
	if extra := len(classes) - n; extra > 0 {
		log.Warn("class labels without a feature row ignored", logging.Count(extra))
	}

	out, err := features.WithColumn(ClassColumn, values)
	if err != nil {
		return nil, nil, err
	}
	return out, nodeClasses, nil
}

func requireColumns(recs *table.Records, names ...string) error {
	for _, n := range names {
		if !recs.Has(n) {
			return fmt.Errorf("%w: %q", ErrMissingColumn, n)
		}
	}
	return nil
}
