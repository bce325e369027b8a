// Command fraudnet loads a transaction dataset, builds the requested
// network view and prints a summary.
//
//	fraudnet -dataset elliptic_pp -dir ./data -format analytics
//	fraudnet -config run.yaml -metrics-file /var/lib/node_exporter/fraudnet.prom
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dd0wney/cluso-fraudnet/pkg/config"
	"github.com/dd0wney/cluso-fraudnet/pkg/dataset"
	"github.com/dd0wney/cluso-fraudnet/pkg/logging"
	"github.com/dd0wney/cluso-fraudnet/pkg/metrics"
	"github.com/dd0wney/cluso-fraudnet/pkg/network"
)

type options struct {
	configFile  string
	dataset     string
	dir         string
	features    string
	edges       string
	classes     string
	directed    bool
	format      string
	metricsFile string
	device      string
	top         int
}

func main() {
	var opts options
	flag.StringVar(&opts.configFile, "config", "", "YAML run configuration")
	flag.StringVar(&opts.dataset, "dataset", "", "Dataset schema: "+strings.Join(dataset.Names(), ", "))
	flag.StringVar(&opts.dir, "dir", "", "Directory or s3:// prefix holding the dataset files")
	flag.StringVar(&opts.features, "features", "", "Path to the node features table")
	flag.StringVar(&opts.edges, "edges", "", "Path to the edge list")
	flag.StringVar(&opts.classes, "classes", "", "Path to the class labels table")
	flag.BoolVar(&opts.directed, "directed", false, "Keep edges one-way")
	flag.StringVar(&opts.format, "format", network.FormatAnalytics, "Export: general, analytics or tensor")
	flag.StringVar(&opts.metricsFile, "metrics-file", "", "Write Prometheus metrics to this textfile")
	flag.StringVar(&opts.device, "device", "", "Tensor device for the intrinsic split")
	flag.IntVar(&opts.top, "top", 10, "Number of top-ranked transactions to show")
	flag.Parse()

	if err := run(opts); err != nil {
		logging.ErrorLog("run failed", logging.Error(err))
		fmt.Fprintln(os.Stderr, errorStyle.Render("fraudnet: "+err.Error()))
		os.Exit(1)
	}
}

func run(opts options) error {
	switch opts.format {
	case network.FormatGeneral, network.FormatAnalytics, network.FormatTensor:
	default:
		return fmt.Errorf("unknown format %q (want general, analytics or tensor)", opts.format)
	}

	cfg, err := buildConfig(opts)
	if err != nil {
		return err
	}

	logging.SetDefaultLogger(logging.NewJSONLogger(os.Stderr, cfg.Level()))
	logging.Debug("configuration resolved",
		logging.Dataset(cfg.Dataset),
		logging.String("features", cfg.Paths.Features),
		logging.String("edges", cfg.Paths.Edges),
		logging.String("classes", cfg.Paths.Classes),
		logging.Bool("directed", cfg.Directed),
	)
	reg := metrics.DefaultRegistry()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loadOpts := append(cfg.LoadOptions(),
		dataset.WithLogger(logging.With(logging.Format(opts.format))),
		dataset.WithMetrics(reg),
	)
	adapter, err := dataset.Load(ctx, cfg.Paths, loadOpts...)
	if err != nil {
		return err
	}

	sections := []section{statsSection(adapter.Stats())}
	var s section
	switch opts.format {
	case network.FormatGeneral:
		s, err = generalSection(adapter)
	case network.FormatAnalytics:
		s, err = analyticsSection(adapter, opts.top)
	case network.FormatTensor:
		s, err = tensorSection(adapter, cfg.Device)
	}
	if err != nil {
		return err
	}
	sections = append(sections, s)

	fmt.Println(render(cfg.Dataset, sections))

	if cfg.MetricsFile != "" {
		if err := reg.WriteTextfile(cfg.MetricsFile); err != nil {
			return err
		}
		logging.Info("metrics written", logging.Path(cfg.MetricsFile))
	}
	return nil
}

// buildConfig layers defaults, the config file, the environment and flags.
func buildConfig(opts options) (*config.Config, error) {
	cfg := config.Default()
	if opts.configFile != "" {
		var err error
		if cfg, err = config.Load(opts.configFile); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	override := func(name string, dst *string, v string) {
		if set[name] {
			*dst = v
		}
	}
	override("dataset", &cfg.Dataset, opts.dataset)
	override("dir", &cfg.Dir, opts.dir)
	override("features", &cfg.Paths.Features, opts.features)
	override("edges", &cfg.Paths.Edges, opts.edges)
	override("classes", &cfg.Paths.Classes, opts.classes)
	override("metrics-file", &cfg.MetricsFile, opts.metricsFile)
	override("device", &cfg.Device, opts.device)
	if set["directed"] {
		cfg.Directed = opts.directed
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration:\n%w", err)
	}
	return cfg, nil
}
