package fimgen

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the YAML form of the generation options.
type Config struct {
	Path             string   `yaml:"path"`
	Jobs             int      `yaml:"jobs"`
	MaxBytes         int64    `yaml:"max_bytes"`
	MaxChunkLen      int      `yaml:"max_chunk_len"`
	TestRatio        float64  `yaml:"test_ratio"`
	Seed             uint64   `yaml:"seed"`
	TrainOut         string   `yaml:"train_out"`
	TestOut          string   `yaml:"test_out"`
	Append           *bool    `yaml:"append"`
	FlushTrailingRun bool     `yaml:"flush_trailing_run"`
	AllowParseErrors bool     `yaml:"allow_parse_errors"`
	UseGitignore     *bool    `yaml:"use_gitignore"`
	IgnoreDirs       []string `yaml:"ignore_dirs"`
}

// LoadConfig reads a YAML config file. Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig parses YAML config data.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Jobs < 0 {
		return fmt.Errorf("jobs must not be negative, got %d", c.Jobs)
	}
	if c.MaxChunkLen < 0 {
		return fmt.Errorf("max_chunk_len must not be negative, got %d", c.MaxChunkLen)
	}
	if c.TestRatio > 1 {
		return fmt.Errorf("test_ratio must be at most 1, got %g", c.TestRatio)
	}
	return nil
}

// GenerateOptions converts the config into options. Unset values stay zero
// so that Generate applies its defaults.
func (c Config) GenerateOptions() GenerateOptions {
	opts := GenerateOptions{
		Path:             c.Path,
		Jobs:             c.Jobs,
		MaxBytes:         c.MaxBytes,
		MaxChunkLen:      c.MaxChunkLen,
		TestRatio:        c.TestRatio,
		Seed:             c.Seed,
		TrainOut:         c.TrainOut,
		TestOut:          c.TestOut,
		FlushTrailingRun: c.FlushTrailingRun,
		AllowParseErrors: c.AllowParseErrors,
		IgnoreDirs:       c.IgnoreDirs,
	}
	if c.Append != nil {
		opts.Truncate = !*c.Append
	}
	if c.UseGitignore != nil {
		opts.SkipGitignore = !*c.UseGitignore
	}
	return opts
}
