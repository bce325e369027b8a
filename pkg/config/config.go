// Package config describes one dataset run: which dataset, where its files
// live, how the network is built and where logs and metrics go.
//
// Configuration comes from a YAML file, then FRAUDNET_* environment
// variables override individual fields.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-fraudnet/pkg/dataset"
	"github.com/dd0wney/cluso-fraudnet/pkg/logging"
	"github.com/dd0wney/cluso-fraudnet/pkg/source"
	"github.com/dd0wney/cluso-fraudnet/pkg/tensor"
	"github.com/dd0wney/cluso-fraudnet/pkg/validation"
)

// Config is a dataset run.
type Config struct {
	Dataset  string             `yaml:"dataset" validate:"required,dataset_name"`
	Dir      string             `yaml:"dir"`
	Paths    dataset.Paths      `yaml:"paths"`
	Directed bool               `yaml:"directed"`
	Split    dataset.Thresholds `yaml:"split"`
	Device   string             `yaml:"device"`

	LogLevel    string   `yaml:"log_level" validate:"omitempty,oneof=debug info warn error DEBUG INFO WARN ERROR"`
	MetricsFile string   `yaml:"metrics_file"`
	S3          S3Config `yaml:"s3"`
}

// S3Config holds remote storage settings.
type S3Config struct {
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint" validate:"omitempty,url"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	UsePathStyle    bool   `yaml:"use_path_style"`
}

// Options converts the settings for the source opener.
func (s S3Config) Options() source.S3Options {
	return source.S3Options{
		Region:          s.Region,
		Endpoint:        s.Endpoint,
		AccessKeyID:     s.AccessKeyID,
		SecretAccessKey: s.SecretAccessKey,
		UsePathStyle:    s.UsePathStyle,
	}
}

// Default returns the Elliptic++ run with the standard temporal split.
func Default() *Config {
	return &Config{
		Dataset:  dataset.EllipticPP,
		Dir:      "data",
		Split:    dataset.DefaultThresholds(),
		Device:   string(tensor.CPU),
		LogLevel: "info",
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from FRAUDNET_* variables.
func (c *Config) ApplyEnv() error {
	return c.applyEnv(os.LookupEnv)
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := map[string]*string{
		"FRAUDNET_DATASET":              &c.Dataset,
		"FRAUDNET_DIR":                  &c.Dir,
		"FRAUDNET_FEATURES":             &c.Paths.Features,
		"FRAUDNET_EDGES":                &c.Paths.Edges,
		"FRAUDNET_CLASSES":              &c.Paths.Classes,
		"FRAUDNET_DEVICE":               &c.Device,
		"FRAUDNET_LOG_LEVEL":            &c.LogLevel,
		"FRAUDNET_METRICS_FILE":         &c.MetricsFile,
		"FRAUDNET_S3_REGION":            &c.S3.Region,
		"FRAUDNET_S3_ENDPOINT":          &c.S3.Endpoint,
		"FRAUDNET_S3_ACCESS_KEY_ID":     &c.S3.AccessKeyID,
		"FRAUDNET_S3_SECRET_ACCESS_KEY": &c.S3.SecretAccessKey,
	}
	for env, dst := range str {
		if v, ok := lookup(env); ok {
			*dst = v
		}
	}

	var errs []error
	flags := map[string]*bool{
		"FRAUDNET_DIRECTED":          &c.Directed,
		"FRAUDNET_S3_USE_PATH_STYLE": &c.S3.UsePathStyle,
	}
	for env, dst := range flags {
		if v, ok := lookup(env); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", env, err))
				continue
			}
			*dst = b
		}
	}

	floats := map[string]*float64{
		"FRAUDNET_TRAIN_END": &c.Split.TrainEnd,
		"FRAUDNET_VAL_END":   &c.Split.ValEnd,
	}
	for env, dst := range floats {
		if v, ok := lookup(env); ok {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", env, err))
				continue
			}
			*dst = f
		}
	}
	return errors.Join(errs...)
}

// ResolvePaths fills empty input paths from Dir and the dataset's
// conventional file names.
func (c *Config) ResolvePaths() error {
	if c.Paths.Features != "" && c.Paths.Edges != "" && c.Paths.Classes != "" {
		return nil
	}
	def, err := dataset.DefaultPaths(c.Dir, c.Dataset)
	if err != nil {
		return err
	}
	if c.Paths.Features == "" {
		c.Paths.Features = def.Features
	}
	if c.Paths.Edges == "" {
		c.Paths.Edges = def.Edges
	}
	if c.Paths.Classes == "" {
		c.Paths.Classes = def.Classes
	}
	return nil
}

// Validate resolves paths and checks every field, reporting all problems.
func (c *Config) Validate() error {
	if err := c.ResolvePaths(); err != nil {
		return err
	}
	structErr := validation.Struct(c)

	cv := validation.NewConfigValidator("Config").
		Less("split.train_end", c.Split.TrainEnd, "split.val_end", c.Split.ValEnd).
		OneOf("dataset", c.Dataset, dataset.Names()).
		Custom("device", func() error {
			_, err := tensor.ParseDevice(c.Device)
			return err
		}).
		When(c.S3.AccessKeyID != "", func(cv *validation.ConfigValidator) {
			cv.Required("s3.secret_access_key", c.S3.SecretAccessKey)
		})

	return errors.Join(structErr, cv.Validate())
}

// Level returns the configured log level.
func (c *Config) Level() logging.Level {
	return logging.ParseLevel(c.LogLevel)
}

// LoadOptions converts the run settings into loader options.
func (c *Config) LoadOptions() []dataset.Option {
	return []dataset.Option{
		dataset.WithDataset(c.Dataset),
		dataset.WithDirected(c.Directed),
		dataset.WithThresholds(c.Split),
		dataset.WithOpener(source.NewOpener(source.WithS3(c.S3.Options()))),
	}
}
