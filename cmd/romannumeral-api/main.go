package main

import (
	"context"
	"errors"
	"net"
	"time"

	apiserver "github.com/flightctl/romannumeral/internal/api_server"
	"github.com/flightctl/romannumeral/internal/client"
	"github.com/flightctl/romannumeral/internal/config"
	"github.com/flightctl/romannumeral/internal/instrumentation"
	"github.com/flightctl/romannumeral/internal/instrumentation/tracing"
	"github.com/flightctl/romannumeral/internal/service"
	"github.com/flightctl/romannumeral/pkg/log"
	"github.com/flightctl/romannumeral/pkg/roman"
	"github.com/flightctl/romannumeral/pkg/shutdown"
)

const (
	clientRequestTimeout = 30 * time.Second
	tracerFlushTimeout   = 5 * time.Second
)

func main() {
	logger := log.InitLogs()
	logger.Println("Starting numeral API service")
	defer logger.Println("Numeral API service stopped")

	cfgFile := config.ConfigFile()
	cfg, err := config.LoadOrGenerate(cfgFile)
	if err != nil {
		logger.Fatalf("reading configuration: %v", err)
	}
	if lf := cfg.Service.LogFile; lf != nil && lf.Path != "" {
		logger.Printf("Writing logs to %s", lf.Path)
		logFile := log.SetFileOutput(logger, lf.Path, log.FileOptions{
			MaxSizeMB:  lf.MaxSizeMB,
			MaxBackups: lf.MaxBackups,
			MaxAgeDays: lf.MaxAgeDays,
			Compress:   lf.Compress,
		})
		defer logFile.Close()
	}
	logger.Printf("Using config: %s", cfg)
	log.SetLevel(logger, cfg.Service.LogLevel)

	// also write out a client config file
	if err := client.WriteConfig(config.ClientConfigFile(), clientServerURL(cfg.Service.Address), clientRequestTimeout); err != nil {
		logger.Warnf("writing client config: %v", err)
	}

	tracerShutdown, err := tracing.InitTracer(logger, cfg, "romannumeral-api")
	if err != nil {
		logger.Fatalf("initializing tracing: %v", err)
	}

	metrics := instrumentation.NewApiMetrics(cfg)
	converter := roman.NewConverter(roman.WithWorkers(cfg.Converter.Workers))
	logger.Infof("Range conversions use %d workers", converter.Workers())

	serviceHandler := service.NewServiceHandler(converter, logger.WithField("pkg", "service"), metrics, service.CacheOptions{
		Capacity: cfg.Converter.CacheCapacity,
		TTL:      time.Duration(cfg.Converter.CacheTTL),
	})

	listener, err := net.Listen("tcp", cfg.Service.Address)
	if err != nil {
		logger.Fatalf("creating listener: %s", err)
	}

	manager := shutdown.NewManager(logger).
		AddServer("api", apiserver.New(logger, cfg, listener, serviceHandler, metrics)).
		AddServer("range-cache", serviceHandler).
		AddCleanup("tracing", shutdown.LogFunc(logger, "Flushing traces", func() error {
			ctx, cancel := context.WithTimeout(context.Background(), tracerFlushTimeout)
			defer cancel()
			return tracerShutdown(ctx)
		})).
		AddCleanup("listener", shutdown.LogFunc(logger, "Releasing API listener", func() error {
			if err := listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
				return err
			}
			return nil
		}))

	if cfg.Metrics != nil && cfg.Metrics.Enabled {
		manager.AddServer("metrics", instrumentation.NewMetricsServer(logger, cfg, metrics))
	}

	if cfg.Service.WatchConfig {
		// only the log level applies without a restart
		manager.AddServer("config-watcher", config.NewWatcher(logger.WithField("pkg", "config"), cfgFile, func(updated *config.Config) {
			prev := logger.GetLevel()
			if lvl := log.SetLevel(logger, updated.Service.LogLevel); lvl != prev {
				logger.Infof("Log level changed from %s to %s", prev, lvl)
			}
		}))
	}

	// the API listener is bound above, so systemd may route traffic as soon as this runs
	manager.AddServer("systemd-notify", shutdown.NotifySystemd(logger))

	if err := manager.Run(context.Background()); err != nil {
		logger.Fatalf("Error running service: %s", err)
	}
}
