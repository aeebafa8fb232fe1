package instrumentation

import (
	"net/http"
	"time"

	"github.com/flightctl/romannumeral/internal/config"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	OperationSingle = "single"
	OperationRange  = "range"

	OutcomeSuccess = "success"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

type ApiMetrics struct {
	SloMax float64

	SuccessLatency prometheus.Histogram
	ErrorLatency   prometheus.Histogram

	ApiTraffic prometheus.Counter

	SloViolations prometheus.Counter
	ClientErrors  prometheus.Counter
	ServerErrors  prometheus.Counter

	Conversions *prometheus.CounterVec
	RangeSize   prometheus.Histogram
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter

	CpuUtilization    prometheus.Gauge
	MemoryUtilization prometheus.Gauge
	DiskUtilization   prometheus.Gauge
}

func NewApiMetrics(cfg *config.Config) *ApiMetrics {
	bins := prometheus.DefBuckets
	sloMax := 0.0
	if cfg != nil && cfg.Metrics != nil {
		sloMax = cfg.Metrics.SloMax
		if len(cfg.Metrics.ApiLatencyBins) > 0 {
			bins = cfg.Metrics.ApiLatencyBins
		}
	}

	return &ApiMetrics{
		SloMax: sloMax,
		ApiTraffic: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "romannumeral_api_requests_total",
			Help: "Number of requests to the numeral API server",
		}),
		SuccessLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "romannumeral_api_latencies_success_seconds",
			Help:    "Distribution of latencies of responses that encountered no errors",
			Buckets: bins,
		}),
		ErrorLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "romannumeral_api_latencies_error_seconds",
			Help:    "Distribution of latencies of responses that encountered errors",
			Buckets: bins,
		}),
		SloViolations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "romannumeral_api_errors_slo_total",
			Help: "Number of successful responses that exceeded the latency SLO",
		}),
		ClientErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "romannumeral_api_errors_client_total",
			Help: "Number of responses with a client (4xx) error",
		}),
		ServerErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "romannumeral_api_errors_server_total",
			Help: "Number of responses with a server (5xx) error",
		}),
		Conversions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "romannumeral_conversions_total",
			Help: "Number of conversion requests by operation and outcome",
		}, []string{"operation", "outcome"}),
		RangeSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "romannumeral_range_size",
			Help:    "Number of values converted per range request",
			Buckets: prometheus.ExponentialBuckets(1, 4, 7),
		}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "romannumeral_range_cache_hits_total",
			Help: "Number of range requests served from the cache",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "romannumeral_range_cache_misses_total",
			Help: "Number of range requests that had to be computed",
		}),
		CpuUtilization: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "romannumeral_api_cpu_utilization",
			Help: "Server CPU utilization",
		}),
		MemoryUtilization: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "romannumeral_api_memory_utilization",
			Help: "Server memory utilization",
		}),
		DiskUtilization: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "romannumeral_api_disk_utilization",
			Help: "Server storage utilization",
		}),
	}
}

func (m *ApiMetrics) RegisterWith(reg prometheus.Registerer) {
	reg.MustRegister(
		m.SuccessLatency,
		m.ErrorLatency,
		m.ApiTraffic,
		m.SloViolations,
		m.ClientErrors,
		m.ServerErrors,
		m.Conversions,
		m.RangeSize,
		m.CacheHits,
		m.CacheMisses,
		m.CpuUtilization,
		m.MemoryUtilization,
		m.DiskUtilization,
	)
}

// ObserveConversion records the outcome of a conversion. size is the number
// of values produced and is only recorded for successful range conversions.
func (m *ApiMetrics) ObserveConversion(operation, outcome string, size int) {
	if m == nil {
		return
	}
	m.Conversions.WithLabelValues(operation, outcome).Inc()
	if operation == OperationRange && outcome == OutcomeSuccess {
		m.RangeSize.Observe(float64(size))
	}
}

func (m *ApiMetrics) ObserveCache(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.CacheHits.Inc()
	} else {
		m.CacheMisses.Inc()
	}
}

// We need to access the HTTP status code in our instrumentation middleware
// ResponseWriter does not let us do this, so wrap it in an
// interface that will catch and save the written status code
type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func NewLoggingResponseWriter(w http.ResponseWriter) *loggingResponseWriter {
	return &loggingResponseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (lw *loggingResponseWriter) WriteHeader(statusCode int) {
	lw.statusCode = statusCode
	lw.ResponseWriter.WriteHeader(statusCode)
}

func (m *ApiMetrics) ServerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		m.ApiTraffic.Inc()

		lw := NewLoggingResponseWriter(w)
		next.ServeHTTP(lw, r)
		statusClass := lw.statusCode - lw.statusCode%100

		switch statusClass {
		case 400:
			m.ClientErrors.Inc()
		case 500:
			m.ServerErrors.Inc()
		}

		thisLatency := time.Since(start).Seconds()
		if statusClass == 200 {
			if m.SloMax > 0 && thisLatency > m.SloMax {
				m.SloViolations.Inc()
			}
			m.SuccessLatency.Observe(thisLatency)
		} else {
			m.ErrorLatency.Observe(thisLatency)
		}
	})
}
