package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 0.0, cfg.Holder.InitialValue)
	assert.Equal(t, 5*time.Second, cfg.Holder.ShutdownTimeout)
	assert.Equal(t, ":9000", cfg.Transport.GRPCAddress)
	assert.Equal(t, ":8080", cfg.Transport.HTTPAddress)
	assert.False(t, cfg.Transport.TLS.Enabled)
	assert.Equal(t, slog.LevelInfo, cfg.Log.Level)
}

func TestParseFlags(t *testing.T) {
	cfg, err := Parse([]string{
		"-holder.initial-value", "-2.25",
		"-ratelimit.writes-per-sec", "10",
		"-ratelimit.burst", "5",
		"-ratelimit.reject",
		"-transport.http-address", "",
		"-log.level", "debug",
	})
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, -2.25, cfg.Holder.InitialValue)
	assert.Equal(t, 10, cfg.RateLimit.WritesPerSecond)
	assert.Equal(t, 5, cfg.RateLimit.Burst)
	assert.True(t, cfg.RateLimit.Reject)
	assert.Empty(t, cfg.Transport.HTTPAddress)
	assert.Equal(t, slog.LevelDebug, cfg.Log.Level)
}

func TestParseRejectsStrayArguments(t *testing.T) {
	_, err := Parse([]string{"extra"})
	require.Error(t, err)
}

func TestConfigFileOverridesFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "holderd.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
holder:
  initial_value: 3.5
  shutdown_timeout: 2s
ratelimit:
  writes_per_sec: 100
transport:
  http_address: ""
log:
  level: warn
`), 0o600))

	cfg, err := Parse([]string{"-config.file", path, "-transport.grpc-address", ":7000"})
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 3.5, cfg.Holder.InitialValue)
	assert.Equal(t, 2*time.Second, cfg.Holder.ShutdownTimeout)
	assert.Equal(t, 100, cfg.RateLimit.WritesPerSecond)
	assert.Equal(t, ":7000", cfg.Transport.GRPCAddress)
	assert.Empty(t, cfg.Transport.HTTPAddress)
	assert.Equal(t, slog.LevelWarn, cfg.Log.Level)
}

func TestConfigFileRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "holderd.yaml")
	require.NoError(t, os.WriteFile(path, []byte("holder:\n  colour: blue\n"), 0o600))

	_, err := Parse([]string{"-config.file", path})
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		cfg, err := Parse(nil)
		require.NoError(t, err)
		return cfg
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"shutdown timeout", func(c *Config) { c.Holder.ShutdownTimeout = 0 }},
		{"negative rate", func(c *Config) { c.RateLimit.WritesPerSecond = -1 }},
		{"negative burst", func(c *Config) { c.RateLimit.Burst = -1 }},
		{"burst without rate", func(c *Config) { c.RateLimit.Burst = 3 }},
		{"no transport", func(c *Config) {
			c.Transport.GRPCAddress = ""
			c.Transport.HTTPAddress = ""
		}},
		{"tls without paths", func(c *Config) {
			c.Transport.TLS.Enabled = true
			c.Transport.TLS.KeyPath = ""
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(&cfg)
			require.Error(t, cfg.Validate())
		})
	}
}
