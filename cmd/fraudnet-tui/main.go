// Command fraudnet-tui is an interactive browser for a loaded transaction
// network: dataset stats, per-node rows, temporal splits, neighbourhoods and
// PageRank.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dd0wney/cluso-fraudnet/pkg/config"
	"github.com/dd0wney/cluso-fraudnet/pkg/dataset"
	"github.com/dd0wney/cluso-fraudnet/pkg/logging"
	"github.com/dd0wney/cluso-fraudnet/pkg/metrics"
)

type options struct {
	configFile string
	dataset    string
	dir        string
	directed   bool
	logFile    string
}

func main() {
	var opts options
	flag.StringVar(&opts.configFile, "config", "", "YAML run configuration")
	flag.StringVar(&opts.dataset, "dataset", "", "Dataset schema")
	flag.StringVar(&opts.dir, "dir", "", "Directory or s3:// prefix holding the dataset files")
	flag.BoolVar(&opts.directed, "directed", false, "Keep edges one-way")
	flag.StringVar(&opts.logFile, "log-file", "", "Write JSON logs to this file")
	flag.Parse()

	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("fraudnet-tui: "+err.Error()))
		os.Exit(1)
	}
}

func run(opts options) error {
	cfg := config.Default()
	if opts.configFile != "" {
		var err error
		if cfg, err = config.Load(opts.configFile); err != nil {
			return err
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "dataset":
			cfg.Dataset = opts.dataset
		case "dir":
			cfg.Dir = opts.dir
		case "directed":
			cfg.Directed = opts.directed
		}
	})
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration:\n%w", err)
	}

	// The terminal belongs to the UI, so logs go to a file or nowhere.
	logger := logging.NewNopLogger()
	if opts.logFile != "" {
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		logger = logging.NewJSONLogger(f, cfg.Level())
	}
	reg := metrics.DefaultRegistry()

	load := func() tea.Msg {
		opts := append(cfg.LoadOptions(), dataset.WithLogger(logger), dataset.WithMetrics(reg))
		a, err := dataset.Load(context.Background(), cfg.Paths, opts...)
		if err != nil {
			return loadErrMsg{err}
		}
		return newLoadedMsg(a, reg)
	}

	p := tea.NewProgram(initialModel(cfg.Dataset, load), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
