package dataset

import (
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/dd0wney/cluso-fraudnet/pkg/source"
)

// Canonical column names after harmonization.
const (
	KeyColumn   = "txId"
	TimeColumn  = "time_step"
	ClassColumn = "class"
	EdgeSrc     = "txId1"
	EdgeDst     = "txId2"
)

const (
	EllipticPP = "elliptic_pp"
	Elliptic   = "elliptic"
)

// Schema describes how one dataset release lays out its three files.
type Schema struct {
	Name string

	FeaturesFile string
	EdgesFile    string
	ClassesFile  string

	// FeaturesHeader is false for releases whose feature file has no header
	// row; its columns are then named "0", "1", ... before Rename applies.
	FeaturesHeader bool

	// Rename maps raw feature column names to canonical ones.
	Rename map[string]string
}

// AuxiliaryFeatures are the Elliptic++ per-transaction columns that follow
// the aggregated features, in canonical order starting at column 167.
var AuxiliaryFeatures = []string{
	"in_txs_degree", "out_txs_degree", "total_BTC", "fees", "size",
	"num_input_addresses", "num_output_addresses",
	"in_BTC_min", "in_BTC_max", "in_BTC_mean", "in_BTC_median", "in_BTC_total",
	"out_BTC_min", "out_BTC_max", "out_BTC_mean", "out_BTC_median", "out_BTC_total",
}

const (
	localFeatures     = 93
	aggregateFeatures = 72
	auxiliaryStart    = 167
)

// EllipticPPRename returns the Elliptic++ harmonization table:
// Local_feature_i -> i+1, Aggregate_feature_i -> i+94 and the auxiliary
// columns -> 167..183.
func EllipticPPRename() map[string]string {
	m := map[string]string{
		"txId":      KeyColumn,
		"Time step": TimeColumn,
	}
	for i := 1; i <= localFeatures; i++ {
		m["Local_feature_"+strconv.Itoa(i)] = strconv.Itoa(i + 1)
	}
	for i := 1; i <= aggregateFeatures; i++ {
		m["Aggregate_feature_"+strconv.Itoa(i)] = strconv.Itoa(i + 94)
	}
	for i, name := range AuxiliaryFeatures {
		m[name] = strconv.Itoa(auxiliaryStart + i)
	}
	return m
}

var schemas = map[string]Schema{
	EllipticPP: {
		Name:           EllipticPP,
		FeaturesFile:   "txs_features.csv",
		EdgesFile:      "txs_edgelist.csv",
		ClassesFile:    "txs_classes.csv",
		FeaturesHeader: true,
		Rename:         EllipticPPRename(),
	},
	Elliptic: {
		Name:         Elliptic,
		FeaturesFile: "elliptic_txs_features.csv",
		EdgesFile:    "elliptic_txs_edgelist.csv",
		ClassesFile:  "elliptic_txs_classes.csv",
		Rename: map[string]string{
			"0": KeyColumn,
			"1": TimeColumn,
		},
	},
}

// LookupSchema returns the schema registered under name.
func LookupSchema(name string) (Schema, error) {
	s, ok := schemas[name]
	if !ok {
		return Schema{}, fmt.Errorf("%w: %q (known: %s)", ErrUnknownDataset, name, strings.Join(Names(), ", "))
	}
	return s, nil
}

// Names lists the registered dataset names.
func Names() []string {
	out := make([]string, 0, len(schemas))
	for n := range schemas {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Paths locates the three input tables.
type Paths struct {
	Features string `yaml:"features" validate:"required,datapath"`
	Edges    string `yaml:"edges" validate:"required,datapath"`
	Classes  string `yaml:"classes" validate:"required,datapath"`
}

// DefaultPaths places the schema's conventional file names under dir,
// which may be a local directory or an s3:// prefix.
func DefaultPaths(dir, name string) (Paths, error) {
	s, err := LookupSchema(name)
	if err != nil {
		return Paths{}, err
	}
	join := filepath.Join
	if source.IsRemote(dir) {
		join = func(elem ...string) string {
			return "s3://" + path.Join(strings.TrimPrefix(elem[0], "s3://"), elem[1])
		}
	}
	return Paths{
		Features: join(dir, s.FeaturesFile),
		Edges:    join(dir, s.EdgesFile),
		Classes:  join(dir, s.ClassesFile),
	}, nil
}
