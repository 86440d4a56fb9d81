package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML configuration file at path and returns a validated [Config].
// It is a convenience wrapper around [LoadFromReader] and [Validate].
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r and validates the result.
// Useful in tests where configs are constructed from string literals.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Server.LogLevel != "" && !cfg.Server.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("server.log_level %q is invalid; valid values: debug, info, warn, error", cfg.Server.LogLevel))
	}

	backend := cfg.Storage.Backend
	if backend != "" && !backend.IsValid() {
		errs = append(errs, fmt.Errorf("storage.backend %q is invalid; valid values: file, postgres", backend))
	}
	if backend == StoragePostgres && cfg.Storage.PostgresDSN == "" {
		errs = append(errs, errors.New("storage.postgres_dsn is required when storage.backend is postgres"))
	}
	if cfg.Storage.HistoryLimit < 0 {
		errs = append(errs, fmt.Errorf("storage.history_limit %d is negative", cfg.Storage.HistoryLimit))
	}

	if t := cfg.Analysis.PhoneticThreshold; t < 0 || t > 1 {
		errs = append(errs, fmt.Errorf("analysis.phonetic_threshold %.2f is out of range [0, 1]", t))
	}

	if backend == StorageFile && cfg.Storage.FilePath == "" {
		slog.Warn("storage.file_path is empty; history will be kept in the working directory",
			"default", DefaultHistoryPath)
	}

	return errors.Join(errs...)
}

// DefaultHistoryPath is where the file backend writes history when
// storage.file_path is not set.
const DefaultHistoryPath = "clarion-history.jsonl"

// HistoryPath returns the configured history file location, falling back
// to [DefaultHistoryPath].
func (c *Config) HistoryPath() string {
	if c.Storage.FilePath != "" {
		return c.Storage.FilePath
	}
	return DefaultHistoryPath
}

// SlogLevel maps the configured log level onto a slog.Level.
// An empty or unknown value maps to info.
func (l LogLevel) SlogLevel() slog.Level {
	switch l {
	case LogDebug:
		return slog.LevelDebug
	case LogWarn:
		return slog.LevelWarn
	case LogError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
