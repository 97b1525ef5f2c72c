// Package config loads progman settings from a YAML file with environment
// overrides.
//
// Every field can be set in config.yaml under the home directory or through
// a PROGMAN_* variable; the environment wins. When resolution is left empty
// the mode is inferred: a network host plus a programs directory means
// hybrid, a host alone means network, anything else is local.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"progman/internal/domain"
)

// FileName is the config file looked up in the home directory.
const FileName = "config.yaml"

// Mode selects where programs are resolved from.
type Mode string

const (
	ModeLocal   Mode = "local"
	ModeNetwork Mode = "network"
	ModeHybrid  Mode = "hybrid"
)

var (
	ErrUnknownMode = errors.New("unknown resolution mode")
	ErrNeedsHost   = errors.New("resolution mode requires network.host")
)

// Config is the on-disk configuration.
type Config struct {
	Resolution Mode          `yaml:"resolution,omitempty"`
	Programs   string        `yaml:"programs,omitempty"`
	Network    NetworkConfig `yaml:"network"`
	Logging    LoggingConfig `yaml:"logging"`
}

// NetworkConfig describes the network endpoint.
type NetworkConfig struct {
	Host    string `yaml:"host,omitempty"`
	Network string `yaml:"network,omitempty"`
	Timeout string `yaml:"timeout,omitempty"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the settings used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Network: NetworkConfig{
			Network: "testnet3",
			Timeout: "30s",
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads path over the defaults and applies environment overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to path.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("PROGMAN_RESOLUTION"); v != "" {
		c.Resolution = Mode(v)
	}
	if v := os.Getenv("PROGMAN_PROGRAMS"); v != "" {
		c.Programs = v
	}
	if v := os.Getenv("PROGMAN_HOST"); v != "" {
		c.Network.Host = v
	}
	if v := os.Getenv("PROGMAN_NETWORK"); v != "" {
		c.Network.Network = v
	}
	if v := os.Getenv("PROGMAN_TIMEOUT"); v != "" {
		c.Network.Timeout = v
	}
	if v := os.Getenv("PROGMAN_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Validate checks the resolution mode against the network settings.
func (c *Config) Validate() error {
	switch c.Resolution {
	case "", ModeLocal:
	case ModeNetwork, ModeHybrid:
		if c.Network.Host == "" {
			return fmt.Errorf("%w: %s", ErrNeedsHost, c.Resolution)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMode, c.Resolution)
	}
	if _, err := c.timeout(); err != nil {
		return err
	}
	return nil
}

// Mode returns the configured or inferred resolution mode.
func (c *Config) Mode() Mode {
	if c.Resolution != "" {
		return c.Resolution
	}
	switch {
	case c.Network.Host != "" && c.Programs != "":
		return ModeHybrid
	case c.Network.Host != "":
		return ModeNetwork
	default:
		return ModeLocal
	}
}

// ProgramsDir returns the directory local programs are read from.
func (c *Config) ProgramsDir() string {
	if c.Programs == "" {
		return "."
	}
	return c.Programs
}

// NetworkConfig returns the network settings, or nil when no host is set.
func (c *Config) NetworkConfig() (*domain.NetworkConfig, error) {
	if c.Network.Host == "" {
		return nil, nil
	}
	timeout, err := c.timeout()
	if err != nil {
		return nil, err
	}
	return &domain.NetworkConfig{
		Host:    c.Network.Host,
		Network: c.Network.Network,
		Timeout: timeout,
	}, nil
}

func (c *Config) timeout() (time.Duration, error) {
	if c.Network.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Network.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid network.timeout %q: %w", c.Network.Timeout, err)
	}
	return d, nil
}
