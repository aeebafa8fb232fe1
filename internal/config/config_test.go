package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/flightctl/romannumeral/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOrGenerateWritesDefaults(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, err := LoadOrGenerate(cfgFile)
	require.NoError(t, err)
	assert.FileExists(t, cfgFile)

	def := NewDefault()
	assert.Equal(t, def.Service.Address, cfg.Service.Address)
	assert.Equal(t, def.Converter.CacheCapacity, cfg.Converter.CacheCapacity)
	assert.Equal(t, def.Service.HealthChecks.LivenessPath, cfg.Service.HealthChecks.LivenessPath)

	info, err := os.Stat(cfgFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestLoadKeepsDefaultsForOmittedFields(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "config.yaml")
	contents := `
service:
  address: ":9090"
  rateLimit:
    enabled: true
    requests: 5
    window: 30s
converter:
  workers: 2
metrics: null
`
	require.NoError(t, os.WriteFile(cfgFile, []byte(contents), 0600))

	cfg, err := NewFromFile(cfgFile)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Service.Address)
	assert.Equal(t, "info", cfg.Service.LogLevel)
	assert.True(t, cfg.Service.RateLimit.Enabled)
	assert.Equal(t, 5, cfg.Service.RateLimit.Requests)
	assert.Equal(t, util.Duration(30*time.Second), cfg.Service.RateLimit.Window)
	assert.Equal(t, 2, cfg.Converter.Workers)
	assert.Equal(t, util.Duration(10*time.Minute), cfg.Converter.CacheTTL)
	require.NotNil(t, cfg.Metrics)
	assert.Equal(t, ":15690", cfg.Metrics.Address)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "reading config file")

	cfgFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("service: [1, 2"), 0600))
	_, err = Load(cfgFile)
	assert.ErrorContains(t, err, "decoding config")
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("ROMANNUMERAL_ADDRESS", "127.0.0.1:7000")
	t.Setenv("ROMANNUMERAL_LOG_LEVEL", "debug")
	t.Setenv("ROMANNUMERAL_METRICS_ENABLED", "true")
	t.Setenv("ROMANNUMERAL_CONVERTER_WORKERS", "8")
	t.Setenv("ROMANNUMERAL_CONVERTER_CACHE_TTL", "1m")
	t.Setenv("ROMANNUMERAL_RATE_LIMIT_ENABLED", "true")
	t.Setenv("ROMANNUMERAL_TRACING_ENDPOINT", "collector:4318")
	t.Setenv("ROMANNUMERAL_LOG_FILE", "/var/log/romannumeral/api.log")
	t.Setenv("ROMANNUMERAL_WATCH_CONFIG", "false")

	cfg := NewDefault()
	require.NoError(t, ApplyEnv(cfg))
	assert.Equal(t, "127.0.0.1:7000", cfg.Service.Address)
	assert.Equal(t, "debug", cfg.Service.LogLevel)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, 8, cfg.Converter.Workers)
	assert.Equal(t, util.Duration(time.Minute), cfg.Converter.CacheTTL)
	assert.True(t, cfg.Service.RateLimit.Enabled)
	assert.Equal(t, "collector:4318", cfg.Tracing.Endpoint)
	assert.False(t, cfg.Tracing.Enabled)
	assert.Equal(t, "/var/log/romannumeral/api.log", cfg.Service.LogFile.Path)
	assert.Equal(t, 100, cfg.Service.LogFile.MaxSizeMB)
	assert.False(t, cfg.Service.WatchConfig)
	// untouched settings keep their values
	assert.Equal(t, 300, cfg.Service.RateLimit.Requests)
	assert.Equal(t, ":15690", cfg.Metrics.Address)
}

func TestApplyEnvInvalid(t *testing.T) {
	t.Setenv("ROMANNUMERAL_CONVERTER_WORKERS", "many")
	err := ApplyEnv(NewDefault())
	assert.ErrorContains(t, err, "parsing environment overrides")
}

func TestConfigFileEnv(t *testing.T) {
	t.Setenv(ConfigFileEnv, "/etc/romannumeral/config.yaml")
	assert.Equal(t, "/etc/romannumeral/config.yaml", ConfigFile())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "empty address", mutate: func(c *Config) { c.Service.Address = " " }, wantErr: "service.address"},
		{name: "bad log level", mutate: func(c *Config) { c.Service.LogLevel = "loud" }, wantErr: "service.logLevel"},
		{name: "negative workers", mutate: func(c *Config) { c.Converter.Workers = -1 }, wantErr: "converter.workers"},
		{name: "cache without ttl", mutate: func(c *Config) { c.Converter.CacheTTL = 0 }, wantErr: "converter.cacheTTL"},
		{name: "cache disabled without ttl", mutate: func(c *Config) {
			c.Converter.CacheCapacity = 0
			c.Converter.CacheTTL = 0
		}},
		{name: "rate limit without requests", mutate: func(c *Config) {
			c.Service.RateLimit.Enabled = true
			c.Service.RateLimit.Requests = 0
		}, wantErr: "rateLimit.requests"},
		{name: "bad trusted proxy", mutate: func(c *Config) {
			c.Service.RateLimit.Enabled = true
			c.Service.RateLimit.TrustedProxies = []string{"10.0.0.0/8", "not-an-ip"}
		}, wantErr: "not-an-ip"},
		{name: "relative health path", mutate: func(c *Config) { c.Service.HealthChecks.ReadinessPath = "readyz" }, wantErr: "healthChecks"},
		{name: "metrics without address", mutate: func(c *Config) {
			c.Metrics.Enabled = true
			c.Metrics.Address = ""
		}, wantErr: "metrics.address"},
		{name: "negative log backups", mutate: func(c *Config) { c.Service.LogFile.MaxBackups = -1 }, wantErr: "service.logFile"},
		{name: "tracing endpoint with scheme", mutate: func(c *Config) {
			c.Tracing.Enabled = true
			c.Tracing.Endpoint = "http://collector:4318"
		}, wantErr: "tracing.endpoint"},
		{name: "tracing endpoint", mutate: func(c *Config) {
			c.Tracing.Enabled = true
			c.Tracing.Endpoint = "collector:4318"
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefault()
			tt.mutate(cfg)
			err := Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}

	assert.Error(t, Validate(&Config{}))
}

func TestConfigString(t *testing.T) {
	s := NewDefault().String()
	assert.Contains(t, s, `"address":":8080"`)
	assert.Contains(t, s, `"cacheTTL":"10m0s"`)
}

func TestWatchConfigCanBeDisabledInFile(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "config.yaml")
	cfg := NewDefault()
	cfg.Service.WatchConfig = false
	require.NoError(t, Save(cfg, cfgFile))

	loaded, err := NewFromFile(cfgFile)
	require.NoError(t, err)
	assert.False(t, loaded.Service.WatchConfig)
}
