package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "mathcheck.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("MATHCHECK_TOLERANCE", "")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_File(t *testing.T) {
	p := writeConfig(t, `
checker:
  tolerance: 0.01
  max_exponent: 6
server:
  addr: ":9000"
  read_timeout: 2s
store:
  path: /tmp/verdicts.db
log:
  level: debug
`)

	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, 0.01, cfg.Checker.Tolerance)
	assert.Equal(t, 6.0, cfg.Checker.MaxExponent)
	assert.Equal(t, 64, cfg.Checker.MaxDepth, "unset keys keep their default")
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, 2*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, "/tmp/verdicts.db", cfg.Store.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Checker, cfg.Checker)
}

func TestLoad_UnknownKey(t *testing.T) {
	_, err := Load(writeConfig(t, "checker:\n  tolerence: 0.1\n"))
	require.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_InvalidValue(t *testing.T) {
	_, err := Load(writeConfig(t, "checker:\n  tolerance: -1\n"))
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	p := writeConfig(t, "checker:\n  tolerance: 0.01\n")
	t.Setenv("MATHCHECK_TOLERANCE", "0.05")
	t.Setenv("MATHCHECK_ADDR", ":7000")

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, 0.05, cfg.Checker.Tolerance)
	assert.Equal(t, ":7000", cfg.Server.Addr)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"MATHCHECK_TOLERANCE":    "0.002",
		"MATHCHECK_MAX_EXPONENT": "5",
		"MATHCHECK_DB":           "/data/v.db",
		"MATHCHECK_LOG_LEVEL":    "WARN",
		"MATHCHECK_LOG_DEV":      "true",
	}
	cfg := DefaultConfig()
	require.NoError(t, ApplyEnv(&cfg, func(k string) string { return env[k] }))

	assert.Equal(t, 0.002, cfg.Checker.Tolerance)
	assert.Equal(t, 5.0, cfg.Checker.MaxExponent)
	assert.Equal(t, "/data/v.db", cfg.Store.Path)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.True(t, cfg.Log.Development)
}

func TestApplyEnv_BadValues(t *testing.T) {
	for _, key := range []string{"MATHCHECK_TOLERANCE", "MATHCHECK_MAX_EXPONENT", "MATHCHECK_LOG_DEV"} {
		t.Run(key, func(t *testing.T) {
			cfg := DefaultConfig()
			err := ApplyEnv(&cfg, func(k string) string {
				if k == key {
					return "not-a-value"
				}
				return ""
			})
			require.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"bad checker", func(c *Config) { c.Checker.MaxDepth = 0 }},
		{"empty addr", func(c *Config) { c.Server.Addr = "" }},
		{"zero body limit", func(c *Config) { c.Server.MaxBodyBytes = 0 }},
		{"unknown level", func(c *Config) { c.Log.Level = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}
