// Package config provides configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by ApplyEnv.
const EnvPrefix = "FRAMEGRAB_"

// ErrInvalidConfiguration is returned by Validate.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Log levels accepted by Config.LogLevel.
var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Config represents the full configuration for framegrab.
type Config struct {
	// Input/Output
	InputPath string `yaml:"input" env:"INPUT"`
	OutputDir string `yaml:"output_frames_folder_path" env:"OUTPUT_FRAMES_FOLDER_PATH"`

	// Sampling: every Interval-th frame is stored.
	Interval int `yaml:"frame_rate" env:"FRAME_RATE"`

	// Output images
	JPEGQuality int  `yaml:"jpeg_quality" env:"JPEG_QUALITY"`
	MaxWidth    int  `yaml:"max_width" env:"MAX_WIDTH"`
	Stamp       bool `yaml:"stamp" env:"STAMP"`
	DryRun      bool `yaml:"dry_run" env:"DRY_RUN"`

	// Decoding
	Backend    string `yaml:"backend" env:"BACKEND"`
	FFmpegPath string `yaml:"ffmpeg_path" env:"FFMPEG_PATH"`

	// Reporting
	SummaryPath string `yaml:"summary" env:"SUMMARY"`
	LogLevel    string `yaml:"log_level" env:"LOG_LEVEL"`
	Quiet       bool   `yaml:"quiet" env:"QUIET"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		OutputDir:   "output/frames/",
		Interval:    30,
		JPEGQuality: 95,
		Backend:     "auto",
		LogLevel:    "info",
	}
}

// LoadFromFile loads configuration from a YAML file on top of the defaults.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// Load builds a Config from the defaults, an optional YAML file and the
// process environment, in that order of precedence.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path != "" {
		var err error
		if cfg, err = LoadFromFile(path); err != nil {
			return cfg, err
		}
	}

	if err := ApplyEnv(&cfg, nil); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ApplyEnv overrides cfg with FRAMEGRAB_* variables. When environ is nil the
// process environment is used. Unset variables leave fields untouched.
func ApplyEnv(cfg *Config, environ map[string]string) error {
	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return fmt.Errorf("environment: %w", err)
	}
	return nil
}

// Validate checks that the configuration can be run.
func (c Config) Validate() error {
	switch {
	case c.InputPath == "":
		return fmt.Errorf("%w: input video path is required", ErrInvalidConfiguration)
	case c.Interval <= 0:
		return fmt.Errorf("%w: frame_rate must be a positive integer, got %d", ErrInvalidConfiguration, c.Interval)
	case c.JPEGQuality < 1 || c.JPEGQuality > 100:
		return fmt.Errorf("%w: jpeg_quality must be between 1 and 100, got %d", ErrInvalidConfiguration, c.JPEGQuality)
	case c.MaxWidth < 0:
		return fmt.Errorf("%w: max_width must not be negative, got %d", ErrInvalidConfiguration, c.MaxWidth)
	case !logLevels[c.LogLevel]:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfiguration, c.LogLevel)
	case c.OutputDir == "" && !c.DryRun:
		return fmt.Errorf("%w: output_frames_folder_path is required", ErrInvalidConfiguration)
	}
	return nil
}
