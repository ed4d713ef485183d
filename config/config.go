// Package config holds the settings of the quadpack command.
//
// Values are layered: Default, then an optional JSON file (Load), then
// QUADPACK_* environment variables (LoadFromEnv), then command-line flags
// applied by the caller.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/arloliu/quadpack/blob"
	"github.com/arloliu/quadpack/errs"
	"github.com/arloliu/quadpack/format"
	"github.com/arloliu/quadpack/tree"
	"github.com/mitchellh/mapstructure"
	"github.com/rs/zerolog"
)

// Log output formats.
const (
	LogFormatAuto    = "auto"
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// Config holds the compression and logging settings.
type Config struct {
	TargetNodes int    `mapstructure:"target_nodes"` // node budget of threshold "auto", 0 for none
	Metric      string `mapstructure:"metric"`
	MinSize     int    `mapstructure:"min_size"`
	MaxDepth    int    `mapstructure:"max_depth"`
	Compression string `mapstructure:"compression"`
	BigEndian   bool   `mapstructure:"big_endian"`

	Log LogConfig `mapstructure:"log"`
}

// LogConfig controls the logger built by internal/logging.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // auto, console or json

	// File, when set, receives the log through a rotating writer.
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// Default returns the default config.
func Default() *Config {
	return &Config{
		TargetNodes: 0,
		Metric:      "variance",
		MinSize:     1,
		MaxDepth:    0,
		Compression: "none",
		BigEndian:   false,
		Log: LogConfig{
			Level:      "info",
			Format:     LogFormatAuto,
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// Load reads a JSON config file on top of Default. An empty path returns the
// defaults. Unknown keys are rejected.
//
// Returns:
//   - *Config: loaded config, not yet validated
//   - error: errs.ErrIO when the file cannot be read, or a decode error
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read config: %w", errs.ErrIO, err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.decode(raw); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) decode(raw map[string]any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           c,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return err
	}

	return dec.Decode(raw)
}

// Validate checks every field.
func (c *Config) Validate() error {
	if c.TargetNodes < 0 {
		return fmt.Errorf("%w: target node count %d", errs.ErrInvalidThreshold, c.TargetNodes)
	}
	if _, err := format.ParseMetricType(c.Metric); err != nil {
		return err
	}
	if _, err := format.ParseCompressionType(c.Compression); err != nil {
		return err
	}
	if c.MinSize < 1 {
		return fmt.Errorf("invalid min size %d: must be at least 1", c.MinSize)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("invalid max depth %d: must not be negative", c.MaxDepth)
	}

	return c.Log.Validate()
}

// Validate checks the logging fields.
func (l *LogConfig) Validate() error {
	if _, err := zerolog.ParseLevel(strings.ToLower(l.Level)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", l.Level, err)
	}

	switch l.Format {
	case LogFormatAuto, LogFormatConsole, LogFormatJSON:
	default:
		return fmt.Errorf("invalid log format %q", l.Format)
	}

	if l.MaxSizeMB < 0 || l.MaxBackups < 0 || l.MaxAgeDays < 0 {
		return fmt.Errorf("invalid log rotation settings: size=%d backups=%d age=%d",
			l.MaxSizeMB, l.MaxBackups, l.MaxAgeDays)
	}

	return nil
}

// BuilderOptions translates the tree settings.
func (c *Config) BuilderOptions() ([]tree.BuilderOption, error) {
	metric, err := format.ParseMetricType(c.Metric)
	if err != nil {
		return nil, err
	}

	return []tree.BuilderOption{
		tree.WithMetricType(metric),
		tree.WithMinSize(c.MinSize),
		tree.WithMaxDepth(c.MaxDepth),
	}, nil
}

// EncoderOptions translates the output settings.
func (c *Config) EncoderOptions() ([]blob.EncoderOption, error) {
	comp, err := format.ParseCompressionType(c.Compression)
	if err != nil {
		return nil, err
	}

	opts := []blob.EncoderOption{blob.WithCompression(comp)}
	if c.BigEndian {
		opts = append(opts, blob.WithBigEndian())
	}

	return opts, nil
}

// DecoderOptions translates the input settings used for raw files.
func (c *Config) DecoderOptions() []blob.DecoderOption {
	if c.BigEndian {
		return []blob.DecoderOption{blob.WithDecoderBigEndian()}
	}

	return nil
}
