// SPDX-License-Identifier: Apache-2.0

package frame

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LoggingConfiguration controls the logger built by NewLogger.
type LoggingConfiguration struct {
	Level  string `toml:"level"`  // zerolog level name, empty means info
	Format string `toml:"format"` // "console" or "json"
}

// MetricsConfiguration controls the Prometheus metrics of a Context.
type MetricsConfiguration struct {
	Namespace string `toml:"namespace"`
}

// Config sizes the regions owned by a Context.
type Config struct {
	PersistentMinBufferKB int                  `toml:"persistent_min_buffer_kb"`
	TemporaryCapacityKB   int                  `toml:"temporary_capacity_kb"`
	TemporaryGrowable     bool                 `toml:"temporary_growable"` // grow instead of failing when full
	Logging               LoggingConfiguration `toml:"logging"`
	Metrics               MetricsConfiguration `toml:"metrics"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		PersistentMinBufferKB: 1024,
		TemporaryCapacityKB:   4096,
		Logging: LoggingConfiguration{
			Level:  "info",
			Format: "console",
		},
		Metrics: MetricsConfiguration{
			Namespace: "frame",
		},
	}
}

// LoadConfig reads a TOML file on top of DefaultConfig. A missing file is not an error:
// the defaults are returned and a warning is logged. Any other failure to stat the
// file is returned.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat config: %w", err)
		}
		log.Warn().Str("path", path).Msg("Config file not found, using defaults")
		return cfg, nil
	}

	log.Info().Str("path", path).Msg("Loading configuration")
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := checkUndecoded(md); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseConfig decodes TOML text on top of DefaultConfig.
func ParseConfig(data string) (*Config, error) {
	cfg := DefaultConfig()
	md, err := toml.Decode(data, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := checkUndecoded(md); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func checkUndecoded(md toml.MetaData) error {
	keys := md.Undecoded()
	if len(keys) == 0 {
		return nil
	}
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}
	return fmt.Errorf("unknown config keys: %s", strings.Join(names, ", "))
}

// Validate checks configuration for errors.
func (c *Config) Validate() error {
	if c.PersistentMinBufferKB < 1 {
		return fmt.Errorf("persistent_min_buffer_kb must be >= 1, got %d", c.PersistentMinBufferKB)
	}
	if c.TemporaryCapacityKB < 1 {
		return fmt.Errorf("temporary_capacity_kb must be >= 1, got %d", c.TemporaryCapacityKB)
	}
	if _, err := parseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid logging level %q: %w", c.Logging.Level, err)
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("invalid logging format %q", c.Logging.Format)
	}
	return nil
}

func parseLevel(s string) (zerolog.Level, error) {
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	return zerolog.ParseLevel(s)
}
