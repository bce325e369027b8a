package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dd0wney/cluso-fraudnet/pkg/dataset"
	"github.com/dd0wney/cluso-fraudnet/pkg/logging"
)

func TestDefault_Validates(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.Paths.Features != filepath.Join("data", "txs_features.csv") {
		t.Errorf("resolved features path = %q", cfg.Paths.Features)
	}
	if cfg.Level() != logging.InfoLevel {
		t.Errorf("Level() = %v", cfg.Level())
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	body := `
dataset: elliptic
dir: s3://datasets/elliptic
directed: true
split:
  train_end: 25
  val_end: 35
log_level: debug
metrics_file: /tmp/fraudnet.prom
s3:
  region: eu-west-1
  endpoint: http://localhost:9000
  use_path_style: true
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if cfg.Dataset != dataset.Elliptic || !cfg.Directed {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Split != (dataset.Thresholds{TrainEnd: 25, ValEnd: 35}) {
		t.Errorf("Split = %+v", cfg.Split)
	}
	if cfg.Paths.Edges != "s3://datasets/elliptic/elliptic_txs_edgelist.csv" {
		t.Errorf("Paths.Edges = %q", cfg.Paths.Edges)
	}
	if cfg.Device != "cpu" {
		t.Errorf("Device default lost: %q", cfg.Device)
	}
	if opts := cfg.S3.Options(); opts.Region != "eu-west-1" || !opts.UsePathStyle {
		t.Errorf("S3 options = %+v", opts)
	}
	if len(cfg.LoadOptions()) != 4 {
		t.Error("LoadOptions() should configure dataset, direction, split and opener")
	}
}

func TestParse_Errors(t *testing.T) {
	if _, err := Parse([]byte("datset: typo\n")); err == nil {
		t.Error("unknown key should be rejected")
	}
	if _, err := Parse([]byte("split: [1, 2]\n")); err == nil {
		t.Error("wrong type should be rejected")
	}
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("empty document: %v", err)
	}
	if cfg.Dataset != dataset.EllipticPP {
		t.Errorf("empty document lost defaults: %+v", cfg)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file should fail")
	}
}

func TestValidate_CollectsErrors(t *testing.T) {
	cfg := Default()
	cfg.Split = dataset.Thresholds{TrainEnd: 40, ValEnd: 30}
	cfg.Device = "cuda"
	cfg.LogLevel = "verbose"
	cfg.S3.AccessKeyID = "AKIA"
	cfg.Paths.Features = "s3://bucket-only"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	msg := err.Error()
	for _, want := range []string{"split.train_end", "device", "LogLevel", "s3.secret_access_key", "Features"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q does not mention %s", msg, want)
		}
	}
}

func TestValidate_UnknownDataset(t *testing.T) {
	cfg := Default()
	cfg.Dataset = "ethereum"
	cfg.Paths = dataset.Paths{Features: "f.csv", Edges: "e.csv", Classes: "c.csv"}
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "dataset") {
		t.Errorf("Validate() = %v", err)
	}

	cfg.Paths = dataset.Paths{}
	if err := cfg.Validate(); err == nil {
		t.Error("paths cannot be resolved for an unknown dataset")
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"FRAUDNET_DATASET":   "elliptic",
		"FRAUDNET_DIRECTED":  "true",
		"FRAUDNET_TRAIN_END": "20",
		"FRAUDNET_FEATURES":  "/x/f.csv",
		"FRAUDNET_LOG_LEVEL": "warn",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	if err := cfg.applyEnv(lookup); err != nil {
		t.Fatalf("applyEnv: %v", err)
	}
	if cfg.Dataset != "elliptic" || !cfg.Directed || cfg.Split.TrainEnd != 20 || cfg.Paths.Features != "/x/f.csv" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Level() != logging.WarnLevel {
		t.Errorf("Level() = %v", cfg.Level())
	}
	if cfg.Split.ValEnd != 40 {
		t.Errorf("unset variable changed ValEnd to %v", cfg.Split.ValEnd)
	}

	env["FRAUDNET_DIRECTED"] = "sometimes"
	env["FRAUDNET_VAL_END"] = "forty"
	err := cfg.applyEnv(lookup)
	if err == nil || !strings.Contains(err.Error(), "FRAUDNET_DIRECTED") || !strings.Contains(err.Error(), "FRAUDNET_VAL_END") {
		t.Errorf("applyEnv bad values = %v", err)
	}

	t.Setenv("FRAUDNET_METRICS_FILE", "/tmp/m.prom")
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatal(err)
	}
	if cfg.MetricsFile != "/tmp/m.prom" {
		t.Errorf("MetricsFile = %q", cfg.MetricsFile)
	}
}
