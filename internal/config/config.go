// Package config provides configuration for the aspectd daemon using koanf.
// Values are loaded with priority: environment variables > config file >
// defaults. The config file is YAML; environment variables use the ASPECTD_
// prefix (e.g. ASPECTD_LISTEN, ASPECTD_LOG_LEVEL).
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

// Config is the aspectd daemon configuration.
type Config struct {
	// Listen is the address the HTTP server binds to.
	Listen string `koanf:"listen"`

	// LogLevel is the zerolog level: trace, debug, info, warn or error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects "json" (machine-readable, default) or "console".
	LogFormat string `koanf:"log_format"`

	// ReadTimeout and WriteTimeout bound request handling, in seconds.
	ReadTimeout  int `koanf:"read_timeout"`
	WriteTimeout int `koanf:"write_timeout"`

	// ShutdownTimeout bounds graceful shutdown, in seconds.
	ShutdownTimeout int `koanf:"shutdown_timeout"`

	// AdviceSelector is the selector the standard logging and metrics advice
	// are registered under.
	AdviceSelector string `koanf:"advice_selector"`
}

// Defaults returns the built-in configuration values.
func Defaults() map[string]any {
	return map[string]any{
		"listen":           ":8080",
		"log_level":        "info",
		"log_format":       "json",
		"read_timeout":     10,
		"write_timeout":    10,
		"shutdown_timeout": 15,
		"advice_selector":  "user.*",
	}
}

// Load loads configuration from defaults, an optional YAML file and the
// environment. An empty path skips file loading; a non-empty path must
// exist.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	for key, value := range Defaults() {
		k.Set(key, value)
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("ASPECTD_", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("loading environment config: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for values that would only fail later,
// at wiring time.
func (c *Config) Validate() error {
	if c.Listen == "" {
		return fmt.Errorf("listen address must not be empty")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	if c.LogFormat != "json" && c.LogFormat != "console" {
		return fmt.Errorf("invalid log_format %q: must be json or console", c.LogFormat)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown_timeout must be positive")
	}
	return nil
}

// envTransform converts environment variable names to config keys.
// Example: ASPECTD_LOG_LEVEL -> log_level
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, "ASPECTD_"))
}
