// Package config loads mathcheck settings from an optional YAML file and
// MATHCHECK_* environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/abhisek/mathcheck/internal/mathcheck"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig wraps every validation failure reported by Validate.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the full application configuration.
type Config struct {
	Checker mathcheck.Config `yaml:"checker"`
	Server  ServerConfig     `yaml:"server"`
	Store   StoreConfig      `yaml:"store"`
	Log     LogConfig        `yaml:"log"`
}

// ServerConfig configures the HTTP checking service.
type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// MaxBodyBytes limits the size of a request body.
	MaxBodyBytes int64 `yaml:"max_body_bytes"`

	// LogVerdicts records every served comparison in the verdict log.
	LogVerdicts bool `yaml:"log_verdicts"`
}

// StoreConfig configures the verdict log database.
type StoreConfig struct {
	// Path is the SQLite file. Empty means the default XDG data path.
	Path string `yaml:"path"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level       string `yaml:"level"` // debug, info, warn, error
	Development bool   `yaml:"development"`
}

// DefaultConfig returns a Config with the standard grading limits.
func DefaultConfig() Config {
	return Config{
		Checker: mathcheck.DefaultConfig(),
		Server: ServerConfig{
			Addr:         "127.0.0.1:8087",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			MaxBodyBytes: 64 << 10,
			LogVerdicts:  true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty) and the environment, then validates it.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := decodeYAML(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := ApplyEnv(&cfg, os.Getenv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// decodeYAML overlays data onto cfg. Unknown keys are rejected so that a
// misspelled setting does not silently fall back to its default.
func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ApplyEnv overrides cfg with MATHCHECK_* variables read through getenv.
func ApplyEnv(cfg *Config, getenv func(string) string) error {
	if v := getenv("MATHCHECK_TOLERANCE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: MATHCHECK_TOLERANCE=%q: %v", ErrInvalidConfig, v, err)
		}
		cfg.Checker.Tolerance = f
	}
	if v := getenv("MATHCHECK_MAX_EXPONENT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: MATHCHECK_MAX_EXPONENT=%q: %v", ErrInvalidConfig, v, err)
		}
		cfg.Checker.MaxExponent = f
	}
	if v := getenv("MATHCHECK_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := getenv("MATHCHECK_DB"); v != "" {
		cfg.Store.Path = v
	}
	if v := getenv("MATHCHECK_LOG_LEVEL"); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}
	if v := getenv("MATHCHECK_LOG_DEV"); v != "" {
		dev, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: MATHCHECK_LOG_DEV=%q: %v", ErrInvalidConfig, v, err)
		}
		cfg.Log.Development = dev
	}
	return nil
}

// Validate checks every section of the configuration.
func (c Config) Validate() error {
	if err := c.Checker.Validate(); err != nil {
		return fmt.Errorf("%w: checker: %v", ErrInvalidConfig, err)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("%w: server.addr is empty", ErrInvalidConfig)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("%w: server.max_body_bytes = %d, must be > 0", ErrInvalidConfig, c.Server.MaxBodyBytes)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level = %q, must be debug, info, warn or error", ErrInvalidConfig, c.Log.Level)
	}
	return nil
}
