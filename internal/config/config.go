// Package config loads CLI settings from an optional YAML file and the
// environment. Command-line flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = "techhealth.yaml"

// Environment variables that override file values.
const (
	EnvLogLevel = "TECHHEALTH_LOG_LEVEL"
	EnvStoreDir = "TECHHEALTH_STORE_DIR"
	EnvFormat   = "TECHHEALTH_FORMAT"
	EnvRedact   = "TECHHEALTH_REDACT"
)

// Output formats.
const (
	FormatJSON     = "json"
	FormatMarkdown = "md"
)

// Config is the merged CLI configuration.
type Config struct {
	Log    LogConfig    `yaml:"log"`
	Store  StoreConfig  `yaml:"store"`
	Output OutputConfig `yaml:"output"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type StoreConfig struct {
	Dir string `yaml:"dir"`
}

type OutputConfig struct {
	Format string `yaml:"format"`
	Redact bool   `yaml:"redact"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	dir := ".techhealth"
	if home, err := os.UserHomeDir(); err == nil {
		dir = filepath.Join(home, ".techhealth")
	}
	return Config{
		Log:    LogConfig{Level: "info"},
		Store:  StoreConfig{Dir: dir},
		Output: OutputConfig{Format: FormatJSON},
	}
}

// LoadConfig reads a YAML config file.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	return &cfg, nil
}

// Load builds the effective configuration: defaults, then the config file,
// then environment overrides. An empty path uses DefaultFile if it exists;
// an explicit path must exist.
func Load(path string, getenv func(string) string) (Config, error) {
	cfg := Defaults()

	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}
	if path != "" {
		fileCfg, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		cfg = fileCfg.MergeWithDefaults(cfg)
	}

	if err := cfg.ApplyEnv(getenv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// MergeWithDefaults returns a copy of c with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c
	if result.Log.Level == "" {
		result.Log.Level = defaults.Log.Level
	}
	if result.Store.Dir == "" {
		result.Store.Dir = defaults.Store.Dir
	}
	if result.Output.Format == "" {
		result.Output.Format = defaults.Output.Format
	}
	if !result.Output.Redact {
		result.Output.Redact = defaults.Output.Redact
	}
	return result
}

// ApplyEnv overrides fields from non-empty environment variables.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if getenv == nil {
		getenv = os.Getenv
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := getenv(EnvStoreDir); v != "" {
		c.Store.Dir = v
	}
	if v := getenv(EnvFormat); v != "" {
		c.Output.Format = v
	}
	if v := getenv(EnvRedact); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config error: %s: %w", EnvRedact, err)
		}
		c.Output.Redact = b
	}
	return nil
}

// Validate checks that the configuration has usable values.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case FormatJSON, FormatMarkdown:
	default:
		return fmt.Errorf("config error: unknown output format %q (want json or md)", c.Output.Format)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config error: unknown log level %q", c.Log.Level)
	}
	if c.Store.Dir == "" {
		return errors.New("config error: 'store.dir' must not be empty")
	}
	return nil
}
