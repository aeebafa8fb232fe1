package instrumentation

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/flightctl/romannumeral/internal/config"
	"github.com/mackerelio/go-osstat/cpu"
	"github.com/mackerelio/go-osstat/memory"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

const (
	gracefulShutdownTimeout = 5 * time.Second
	readTimeout             = 5 * time.Second
	writeTimeout            = 10 * time.Second
	auditInterval           = 5 * time.Second
)

type MetricsServer struct {
	log      logrus.FieldLogger
	cfg      *config.Config
	registry *prometheus.Registry
	metrics  *ApiMetrics
}

func NewMetricsServer(
	log logrus.FieldLogger,
	cfg *config.Config,
	metrics *ApiMetrics,
) *MetricsServer {
	return &MetricsServer{
		log:      log,
		cfg:      cfg,
		metrics:  metrics,
		registry: prometheus.NewRegistry(),
	}
}

// Handler registers the metrics and returns the scrape handler.
func (m *MetricsServer) Handler() http.Handler {
	m.metrics.RegisterWith(m.registry)
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *MetricsServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         m.cfg.Metrics.Address,
		Handler:      m.Handler(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	go m.auditCpuWorker(ctx)
	go m.auditMemoryWorker(ctx)
	go m.auditDiskWorker(ctx)

	go func() {
		<-ctx.Done()
		m.log.Println("Shutdown signal received:", ctx.Err())
		ctxTimeout, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
		defer cancel()

		srv.SetKeepAlivesEnabled(false)
		_ = srv.Shutdown(ctxTimeout)
	}()

	m.log.Printf("Metrics listening on %s...", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, net.ErrClosed) && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (m *MetricsServer) auditCpuWorker(ctx context.Context) {
	var lastIdle uint64 = 0
	var lastTotal uint64 = 0

	ticker := time.NewTicker(auditInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.log.Debug("Stopping CPU audit")
			return
		case <-ticker.C:
			stats, err := cpu.Get()
			if err != nil {
				m.log.Errorf("Could not audit cpu usage: %v", err)
				continue
			}

			// stats from /proc/stat increase monotonically, so we must
			// compute the delta from our last audit
			if total := stats.Total - lastTotal; total > 0 {
				m.metrics.CpuUtilization.Set(1.0 - float64(stats.Idle-lastIdle)/float64(total))
			}
			lastIdle = stats.Idle
			lastTotal = stats.Total
		}
	}
}

func (m *MetricsServer) auditMemoryWorker(ctx context.Context) {
	ticker := time.NewTicker(auditInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.log.Debug("Stopping memory audit")
			return
		case <-ticker.C:
			stats, err := memory.Get()
			if err != nil {
				m.log.Errorf("Could not audit memory usage: %v", err)
				continue
			}
			if stats.Total > 0 {
				m.metrics.MemoryUtilization.Set(float64(stats.Used) / float64(stats.Total))
			}
		}
	}
}

func (m *MetricsServer) auditDiskWorker(ctx context.Context) {
	ticker := time.NewTicker(auditInterval)
	defer ticker.Stop()

	var stat unix.Statfs_t

	for {
		select {
		case <-ctx.Done():
			m.log.Debug("Stopping disk audit")
			return
		case <-ticker.C:
			if err := unix.Statfs("/", &stat); err != nil {
				m.log.Errorf("Could not audit disk usage: %v", err)
				continue
			}
			if stat.Blocks > 0 {
				m.metrics.DiskUtilization.Set(1.0 - float64(stat.Bfree)/float64(stat.Blocks))
			}
		}
	}
}
