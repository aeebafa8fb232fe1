package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	api "github.com/flightctl/romannumeral/api/v1"
	"github.com/flightctl/romannumeral/internal/util"
	"github.com/sirupsen/logrus"
	"sigs.k8s.io/yaml"
)

const (
	appName = "romannumeral"

	// EnvPrefix is prepended to every environment override.
	EnvPrefix = "ROMANNUMERAL_"
	// ConfigFileEnv overrides the location of the service config file.
	ConfigFileEnv = EnvPrefix + "CONFIG"
)

type Config struct {
	Service   *svcConfig       `json:"service,omitempty"`
	Converter *converterConfig `json:"converter,omitempty"`
	Metrics   *metricsConfig   `json:"metrics,omitempty"`
	Tracing   *tracingConfig   `json:"tracing,omitempty"`
}

type svcConfig struct {
	Address               string              `json:"address,omitempty" env:"ADDRESS"`
	LogLevel              string              `json:"logLevel,omitempty" env:"LOG_LEVEL"`
	LogFile               *LogFileConfig      `json:"logFile,omitempty"`
	WatchConfig           bool                `json:"watchConfig" env:"WATCH_CONFIG"`
	HttpReadTimeout       util.Duration       `json:"httpReadTimeout,omitempty"`
	HttpReadHeaderTimeout util.Duration       `json:"httpReadHeaderTimeout,omitempty"`
	HttpWriteTimeout      util.Duration       `json:"httpWriteTimeout,omitempty"`
	HttpIdleTimeout       util.Duration       `json:"httpIdleTimeout,omitempty"`
	HttpMaxHeaderBytes    int                 `json:"httpMaxHeaderBytes,omitempty"`
	HttpMaxRequestSize    int                 `json:"httpMaxRequestSize,omitempty"`
	HttpMaxUrlLength      int                 `json:"httpMaxUrlLength,omitempty"`
	HttpMaxNumHeaders     int                 `json:"httpMaxNumHeaders,omitempty"`
	RateLimit             *RateLimitConfig    `json:"rateLimit,omitempty"`
	HealthChecks          *HealthChecksConfig `json:"healthChecks,omitempty"`
}

// RateLimitConfig configures the per client IP limiter in front of the API.
type RateLimitConfig struct {
	Enabled        bool          `json:"enabled,omitempty" env:"RATE_LIMIT_ENABLED"`
	Requests       int           `json:"requests,omitempty" env:"RATE_LIMIT_REQUESTS"`
	Window         util.Duration `json:"window,omitempty" env:"RATE_LIMIT_WINDOW"`
	TrustedProxies []string      `json:"trustedProxies,omitempty"`
}

// LogFileConfig sends service logs to a size-rotated file. An empty Path keeps stderr.
type LogFileConfig struct {
	Path       string `json:"path,omitempty" env:"LOG_FILE"`
	MaxSizeMB  int    `json:"maxSizeMB,omitempty"`
	MaxBackups int    `json:"maxBackups,omitempty"`
	MaxAgeDays int    `json:"maxAgeDays,omitempty"`
	Compress   bool   `json:"compress,omitempty"`
}

type HealthChecksConfig struct {
	LivenessPath     string        `json:"livenessPath,omitempty"`
	ReadinessPath    string        `json:"readinessPath,omitempty"`
	ReadinessTimeout util.Duration `json:"readinessTimeout,omitempty"`
}

type converterConfig struct {
	// Workers bounds range conversion concurrency, 0 means GOMAXPROCS.
	Workers int `json:"workers,omitempty" env:"CONVERTER_WORKERS"`
	// CacheCapacity is the number of range results kept, 0 disables caching.
	CacheCapacity uint64        `json:"cacheCapacity,omitempty" env:"CONVERTER_CACHE_CAPACITY"`
	CacheTTL      util.Duration `json:"cacheTTL,omitempty" env:"CONVERTER_CACHE_TTL"`
}

type metricsConfig struct {
	Enabled        bool      `json:"enabled,omitempty" env:"METRICS_ENABLED"`
	Address        string    `json:"address,omitempty" env:"METRICS_ADDRESS"`
	SloMax         float64   `json:"sloMax,omitempty"`
	ApiLatencyBins []float64 `json:"apiLatencyBins,omitempty"`
}

type tracingConfig struct {
	Enabled bool `json:"enabled,omitempty" env:"TRACING_ENABLED"`
	// Endpoint is the OTLP/HTTP collector host:port, empty uses the exporter default.
	Endpoint string `json:"endpoint,omitempty" env:"TRACING_ENDPOINT"`
	Insecure bool   `json:"insecure,omitempty" env:"TRACING_INSECURE"`
}

func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	return filepath.Join(home, "."+appName)
}

func ConfigFile() string {
	if path := os.Getenv(ConfigFileEnv); path != "" {
		return path
	}
	return filepath.Join(ConfigDir(), "config.yaml")
}

func ClientConfigFile() string {
	return filepath.Join(ConfigDir(), "client.yaml")
}

func NewDefault() *Config {
	c := &Config{
		Service: &svcConfig{
			Address:               ":8080",
			LogLevel:              "info",
			WatchConfig:           true,
			HttpReadTimeout:       util.Duration(5 * time.Minute),
			HttpReadHeaderTimeout: util.Duration(5 * time.Minute),
			HttpWriteTimeout:      util.Duration(5 * time.Minute),
			HttpIdleTimeout:       util.Duration(5 * time.Minute),
			HttpMaxHeaderBytes:    32 * 1024,
			HttpMaxRequestSize:    50 * 1024,
			HttpMaxUrlLength:      2000,
			HttpMaxNumHeaders:     32,
			LogFile: &LogFileConfig{
				MaxSizeMB:  100,
				MaxBackups: 3,
				MaxAgeDays: 28,
			},
			RateLimit: &RateLimitConfig{
				Enabled:  false,
				Requests: 300,
				Window:   util.Duration(time.Minute),
			},
			HealthChecks: &HealthChecksConfig{
				LivenessPath:     api.ServerUrlHealthcheck,
				ReadinessPath:    api.ServerUrlReadyz,
				ReadinessTimeout: util.Duration(2 * time.Second),
			},
		},
		Converter: &converterConfig{
			Workers:       0,
			CacheCapacity: 256,
			CacheTTL:      util.Duration(10 * time.Minute),
		},
		Metrics: &metricsConfig{
			Enabled:        false,
			Address:        ":15690",
			SloMax:         4.0,
			ApiLatencyBins: []float64{1e-5, 1e-4, 1e-3, 1e-2, 1e-1, 1e0},
		},
		Tracing: &tracingConfig{
			Enabled: false,
		},
	}
	return c
}

func NewFromFile(cfgFile string) (*Config, error) {
	cfg, err := Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func LoadOrGenerate(cfgFile string) (*Config, error) {
	if _, err := os.Stat(cfgFile); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(cfgFile), os.FileMode(0755)); err != nil {
			return nil, fmt.Errorf("creating directory for config file: %w", err)
		}
		if err := Save(NewDefault(), cfgFile); err != nil {
			return nil, err
		}
	}
	return NewFromFile(cfgFile)
}

// Load reads cfgFile on top of the defaults, so omitted settings keep their
// default values.
func Load(cfgFile string) (*Config, error) {
	contents, err := os.ReadFile(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	c := NewDefault()
	if err := yaml.Unmarshal(contents, c); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	fillMissing(c)
	return c, nil
}

func Save(cfg *Config, cfgFile string) error {
	contents, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(cfgFile, contents, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// ApplyEnv overrides settings from ROMANNUMERAL_* environment variables.
func ApplyEnv(cfg *Config) error {
	fillMissing(cfg)
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parsing environment overrides: %w", err)
	}
	return nil
}

// fillMissing replaces sections explicitly nulled in a config file with defaults.
func fillMissing(cfg *Config) {
	def := NewDefault()
	if cfg.Service == nil {
		cfg.Service = def.Service
	}
	if cfg.Service.RateLimit == nil {
		cfg.Service.RateLimit = def.Service.RateLimit
	}
	if cfg.Service.LogFile == nil {
		cfg.Service.LogFile = def.Service.LogFile
	}
	if cfg.Service.HealthChecks == nil {
		cfg.Service.HealthChecks = def.Service.HealthChecks
	}
	if cfg.Converter == nil {
		cfg.Converter = def.Converter
	}
	if cfg.Metrics == nil {
		cfg.Metrics = def.Metrics
	}
	if cfg.Tracing == nil {
		cfg.Tracing = def.Tracing
	}
}

func Validate(cfg *Config) error {
	if cfg == nil || cfg.Service == nil || cfg.Converter == nil || cfg.Metrics == nil {
		return errors.New("config: service, converter and metrics sections are required")
	}

	var errs []error
	if strings.TrimSpace(cfg.Service.Address) == "" {
		errs = append(errs, errors.New("service.address must not be empty"))
	}
	if _, err := logrus.ParseLevel(cfg.Service.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("service.logLevel: %w", err))
	}
	if lf := cfg.Service.LogFile; lf != nil && (lf.MaxSizeMB < 0 || lf.MaxBackups < 0 || lf.MaxAgeDays < 0) {
		errs = append(errs, errors.New("service.logFile rotation limits must not be negative"))
	}
	if cfg.Service.HttpMaxRequestSize <= 0 || cfg.Service.HttpMaxUrlLength <= 0 || cfg.Service.HttpMaxNumHeaders <= 0 {
		errs = append(errs, errors.New("service request limits must be positive"))
	}
	if rl := cfg.Service.RateLimit; rl != nil && rl.Enabled {
		if rl.Requests <= 0 {
			errs = append(errs, errors.New("service.rateLimit.requests must be positive"))
		}
		if rl.Window <= 0 {
			errs = append(errs, errors.New("service.rateLimit.window must be positive"))
		}
		for _, proxy := range rl.TrustedProxies {
			if !validProxy(proxy) {
				errs = append(errs, fmt.Errorf("service.rateLimit.trustedProxies: invalid entry %q", proxy))
			}
		}
	}
	if hc := cfg.Service.HealthChecks; hc != nil {
		if !strings.HasPrefix(hc.LivenessPath, "/") || !strings.HasPrefix(hc.ReadinessPath, "/") {
			errs = append(errs, errors.New("service.healthChecks paths must start with '/'"))
		}
	}
	if cfg.Converter.Workers < 0 {
		errs = append(errs, errors.New("converter.workers must not be negative"))
	}
	if cfg.Converter.CacheCapacity > 0 && cfg.Converter.CacheTTL <= 0 {
		errs = append(errs, errors.New("converter.cacheTTL must be positive when caching is enabled"))
	}
	if cfg.Metrics.Enabled && strings.TrimSpace(cfg.Metrics.Address) == "" {
		errs = append(errs, errors.New("metrics.address must not be empty when metrics are enabled"))
	}
	if t := cfg.Tracing; t != nil && t.Enabled && strings.Contains(t.Endpoint, "://") {
		errs = append(errs, fmt.Errorf("tracing.endpoint must be host:port, got %q", t.Endpoint))
	}
	return errors.Join(errs...)
}

func validProxy(entry string) bool {
	s := strings.TrimSpace(entry)
	if strings.Contains(s, "/") {
		_, _, err := net.ParseCIDR(s)
		return err == nil
	}
	return net.ParseIP(s) != nil
}

func (cfg *Config) String() string {
	contents, err := json.Marshal(cfg)
	if err != nil {
		return "<error>"
	}
	return string(contents)
}
