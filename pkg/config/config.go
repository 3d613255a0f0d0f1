// Package config loads the server configuration with the precedence
// defaults -> config file -> dotenv/env -> flag overrides.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultPath is the optional config file looked up in the working
	// directory.
	DefaultPath = "gmapsmcp.yaml"

	// EnvAPIKey supplies the Google Maps Platform credential.
	EnvAPIKey = "GOOGLE_MAPS_API_KEY"

	// EnvLogLevel overrides the log level (debug, info, warn, error).
	EnvLogLevel = "GMAPSMCP_LOG_LEVEL"
)

// Config is the full server configuration.
type Config struct {
	// APIKey is the Google Maps Platform credential. Required.
	APIKey string `yaml:"api_key"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// Overrides holds CLI flag values that take precedence over env, file and
// defaults. Only non-nil fields apply.
type Overrides struct {
	APIKey   *string
	LogLevel *string
}

// Options controls loading.
type Options struct {
	// Path is the config file path. Empty means DefaultPath, and a missing
	// file is not an error.
	Path      string
	Overrides *Overrides
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{LogLevel: "info"}
}

// Load builds the configuration. Dotenv files supply env vars for missing
// keys only, so real environment values always win over .env contents.
func Load(opts Options) (Config, error) {
	cfg := Default()

	for _, f := range []string{".env.local", ".env"} {
		if _, err := os.Stat(f); err == nil {
			if err := godotenv.Load(f); err != nil {
				return Config{}, fmt.Errorf("failed to load %s: %w", f, err)
			}
		}
	}

	path := opts.Path
	if path == "" {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("malformed config file %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// No file, keep defaults. An explicitly named missing file is
		// still an error.
		if opts.Path != "" {
			return Config{}, fmt.Errorf("cannot read config file %s: %w", path, err)
		}
	default:
		return Config{}, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	if v := os.Getenv(EnvAPIKey); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}

	if opts.Overrides != nil {
		if opts.Overrides.APIKey != nil && *opts.Overrides.APIKey != "" {
			cfg.APIKey = *opts.Overrides.APIKey
		}
		if opts.Overrides.LogLevel != nil && *opts.Overrides.LogLevel != "" {
			cfg.LogLevel = *opts.Overrides.LogLevel
		}
	}

	return cfg, nil
}

// Validate reports configuration the server cannot start with. A missing
// credential is fatal at startup, never discovered mid-request.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return errors.New("missing Google Maps API key: set " + EnvAPIKey + " or api_key in " + DefaultPath)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q: must be debug, info, warn or error", c.LogLevel)
	}
	return nil
}

// SlogLevel maps the configured level to a slog.Level.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
