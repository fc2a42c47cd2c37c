// Package config loads the catalogpatch service configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// Config holds all catalogpatch configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
	API      APIConfig      `yaml:"api"`
	Events   EventsConfig   `yaml:"events"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Address         string `yaml:"address"`
	ReadTimeout     string `yaml:"read_timeout"`
	WriteTimeout    string `yaml:"write_timeout"`
	ShutdownTimeout string `yaml:"shutdown_timeout"`
	MaxBodyBytes    int64  `yaml:"max_body_bytes"`
	// Development adds error details to problem responses.
	Development bool `yaml:"development"`
}

// DatabaseConfig selects and configures the product store.
type DatabaseConfig struct {
	Driver string `yaml:"driver"` // sqlite, memory
	DSN    string `yaml:"dsn"`
	Seed   bool   `yaml:"seed"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// APIConfig configures versioning and messages.
type APIConfig struct {
	DefaultVersion string   `yaml:"default_version"`
	Versions       []string `yaml:"versions"`
	Language       string   `yaml:"language"` // en, ja
}

// EventsConfig selects the event sink.
type EventsConfig struct {
	Sink string `yaml:"sink"` // log, outbox, none
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Address:         ":8080",
			ReadTimeout:     "15s",
			WriteTimeout:    "15s",
			ShutdownTimeout: "10s",
			MaxBodyBytes:    1 << 20,
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    filepath.Join("data", "catalog.db"),
			Seed:   true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		API: APIConfig{
			DefaultVersion: "1",
			Versions:       []string{"1", "2"},
			Language:       "en",
		},
		Events: EventsConfig{
			Sink: "log",
		},
	}
}

// Load loads configuration from a YAML file over the defaults, then applies
// environment overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("CATALOG_ADDR"); v != "" {
		c.Server.Address = v
	}
	if v := os.Getenv("CATALOG_DB_DSN"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("CATALOG_DB_DRIVER"); v != "" {
		c.Database.Driver = v
	}
	if v := os.Getenv("CATALOG_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("CATALOG_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("CATALOG_EVENT_SINK"); v != "" {
		c.Events.Sink = v
	}
}

func duration(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

// GetReadTimeout returns the server read timeout.
func (c *Config) GetReadTimeout() time.Duration { return duration(c.Server.ReadTimeout, 15*time.Second) }

// GetWriteTimeout returns the server write timeout.
func (c *Config) GetWriteTimeout() time.Duration {
	return duration(c.Server.WriteTimeout, 15*time.Second)
}

// GetShutdownTimeout returns the graceful shutdown deadline.
func (c *Config) GetShutdownTimeout() time.Duration {
	return duration(c.Server.ShutdownTimeout, 10*time.Second)
}

var (
	validDrivers = []string{"sqlite", "memory"}
	validLevels  = []string{"debug", "info", "warn", "error"}
	validFormats = []string{"json", "console"}
	validSinks   = []string{"log", "outbox", "none"}
)

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return true
		}
	}
	return false
}

// Validate validates the configuration and reports every problem found.
func (c *Config) Validate() error {
	var err error
	if c.Server.Address == "" {
		err = multierr.Append(err, fmt.Errorf("server.address is required"))
	}
	for name, v := range map[string]string{
		"server.read_timeout":     c.Server.ReadTimeout,
		"server.write_timeout":    c.Server.WriteTimeout,
		"server.shutdown_timeout": c.Server.ShutdownTimeout,
	} {
		if v == "" {
			continue
		}
		if _, perr := time.ParseDuration(v); perr != nil {
			err = multierr.Append(err, fmt.Errorf("%s: invalid duration %q", name, v))
		}
	}
	if c.Server.MaxBodyBytes <= 0 {
		err = multierr.Append(err, fmt.Errorf("server.max_body_bytes must be positive"))
	}
	if !oneOf(c.Database.Driver, validDrivers) {
		err = multierr.Append(err, fmt.Errorf("invalid database.driver: %s (valid: %v)", c.Database.Driver, validDrivers))
	}
	if strings.EqualFold(c.Database.Driver, "sqlite") && c.Database.DSN == "" {
		err = multierr.Append(err, fmt.Errorf("database.dsn is required for sqlite"))
	}
	if !oneOf(c.Logging.Level, validLevels) {
		err = multierr.Append(err, fmt.Errorf("invalid logging.level: %s (valid: %v)", c.Logging.Level, validLevels))
	}
	if !oneOf(c.Logging.Format, validFormats) {
		err = multierr.Append(err, fmt.Errorf("invalid logging.format: %s (valid: %v)", c.Logging.Format, validFormats))
	}
	if !oneOf(c.Events.Sink, validSinks) {
		err = multierr.Append(err, fmt.Errorf("invalid events.sink: %s (valid: %v)", c.Events.Sink, validSinks))
	}
	if strings.EqualFold(c.Events.Sink, "outbox") && !strings.EqualFold(c.Database.Driver, "sqlite") {
		err = multierr.Append(err, fmt.Errorf("events.sink outbox requires the sqlite driver"))
	}
	if len(c.API.Versions) == 0 {
		err = multierr.Append(err, fmt.Errorf("api.versions must not be empty"))
	}
	found := false
	for _, v := range c.API.Versions {
		if v == c.API.DefaultVersion {
			found = true
		}
	}
	if !found {
		err = multierr.Append(err, fmt.Errorf("api.default_version %q is not in api.versions", c.API.DefaultVersion))
	}
	return err
}
