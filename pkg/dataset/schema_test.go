package dataset

import (
	"errors"
	"strconv"
	"testing"
)

func TestEllipticPPRename(t *testing.T) {
	m := EllipticPPRename()

	tests := map[string]string{
		"txId":                 "txId",
		"Time step":            "time_step",
		"Local_feature_1":      "2",
		"Local_feature_93":     "94",
		"Aggregate_feature_1":  "95",
		"Aggregate_feature_72": "166",
		"in_txs_degree":        "167",
		"fees":                 "170",
		"out_BTC_total":        "183",
	}
	for from, want := range tests {
		if got := m[from]; got != want {
			t.Errorf("rename[%q] = %q, want %q", from, got, want)
		}
	}

	// every canonical feature column 2..183 is produced exactly once
	seen := make(map[string]bool)
	for _, to := range m {
		if seen[to] {
			t.Errorf("canonical name %q produced twice", to)
		}
		seen[to] = true
	}
	for i := 2; i < 184; i++ {
		if !seen[strconv.Itoa(i)] {
			t.Errorf("canonical column %d missing", i)
		}
	}
}

func TestLookupSchema(t *testing.T) {
	for _, name := range Names() {
		s, err := LookupSchema(name)
		if err != nil {
			t.Fatalf("LookupSchema(%q): %v", name, err)
		}
		if s.Name != name {
			t.Errorf("schema %q has Name %q", name, s.Name)
		}
	}
	if _, err := LookupSchema("ethereum"); !errors.Is(err, ErrUnknownDataset) {
		t.Errorf("unknown dataset error = %v", err)
	}
}

func TestDefaultPaths(t *testing.T) {
	tests := []struct {
		dir, name string
		want      Paths
	}{
		{
			"/data", EllipticPP,
			Paths{"/data/txs_features.csv", "/data/txs_edgelist.csv", "/data/txs_classes.csv"},
		},
		{
			"s3://bucket/elliptic/", Elliptic,
			Paths{
				"s3://bucket/elliptic/elliptic_txs_features.csv",
				"s3://bucket/elliptic/elliptic_txs_edgelist.csv",
				"s3://bucket/elliptic/elliptic_txs_classes.csv",
			},
		},
	}
	for _, tt := range tests {
		got, err := DefaultPaths(tt.dir, tt.name)
		if err != nil {
			t.Fatalf("DefaultPaths(%q, %q): %v", tt.dir, tt.name, err)
		}
		if got != tt.want {
			t.Errorf("DefaultPaths(%q, %q) = %+v, want %+v", tt.dir, tt.name, got, tt.want)
		}
	}

	if _, err := DefaultPaths("/data", "nope"); !errors.Is(err, ErrUnknownDataset) {
		t.Errorf("unknown dataset error = %v", err)
	}
}
