// Package config loads cubes settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dhamidi/cubes/bag"
)

// DefaultPath is the config file looked up when none is given.
const DefaultPath = "cubes.yaml"

// Config holds all cubes configuration.
type Config struct {
	// Capacity used by the feasibility sum.
	Bag bag.Bag `yaml:"bag"`

	// Goroutines used to reduce records; 1 reduces sequentially.
	Workers int `yaml:"workers"`

	Log       LogConfig       `yaml:"log"`
	Workspace WorkspaceConfig `yaml:"workspace"`
}

// LogConfig configures commonlog.
type LogConfig struct {
	Verbosity int    `yaml:"verbosity"`
	File      string `yaml:"file"` // empty logs to stderr
}

// WorkspaceConfig configures directory scanning for `watch` and `lsp`.
type WorkspaceConfig struct {
	Extensions   []string `yaml:"extensions"`
	PollInterval string   `yaml:"poll_interval"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Bag:     bag.Default,
		Workers: 1,
		Workspace: WorkspaceConfig{
			Extensions:   []string{".games"},
			PollInterval: "1s",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate rejects settings no command can run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Bag.Red < 0 || c.Bag.Green < 0 || c.Bag.Blue < 0 {
		errs = append(errs, fmt.Errorf("bag capacities must not be negative: %v", c.Bag))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d", c.Workers))
	}
	if len(c.Workspace.Extensions) == 0 {
		errs = append(errs, errors.New("workspace.extensions must not be empty"))
	}
	if _, err := time.ParseDuration(c.Workspace.PollInterval); err != nil {
		errs = append(errs, fmt.Errorf("workspace.poll_interval: %w", err))
	}
	return errors.Join(errs...)
}

// GetPollInterval returns the workspace poll interval as a duration.
func (c *Config) GetPollInterval() time.Duration {
	d, err := time.ParseDuration(c.Workspace.PollInterval)
	if err != nil || d <= 0 {
		return time.Second
	}
	return d
}

func (c *Config) applyEnvOverrides() {
	if path := os.Getenv("CUBES_LOG_FILE"); path != "" {
		c.Log.File = path
	}
	if s := os.Getenv("CUBES_WORKERS"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			c.Workers = n
		}
	}
}
