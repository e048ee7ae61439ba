package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the BLS
// client and its tool surfaces.
type Metrics struct {
	// Outbound BLS API metrics.
	APIRequests        *prometheus.CounterVec   // labels: mode={bulk,on_demand}, outcome={success,transport_error,api_error}
	APIRequestDuration *prometheus.HistogramVec // labels: mode={bulk,on_demand}
	RequestBatchSize   prometheus.Histogram

	// Cache metrics.
	CacheLookups   *prometheus.CounterVec // labels: result={hit,miss}
	RefreshSkipped prometheus.Counter
	CachedSeries   prometheus.Gauge

	// Tool boundary metrics.
	ToolCalls *prometheus.CounterVec // labels: tool, outcome={ok,error}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		APIRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bls_mcp",
			Name:      "api_requests_total",
			Help:      "BLS API requests by fetch mode and outcome.",
		}, []string{"mode", "outcome"}),
		APIRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "bls_mcp",
			Name:      "api_request_duration_seconds",
			Help:      "BLS API request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"mode"}),
		RequestBatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "bls_mcp",
			Name:      "request_batch_size",
			Help:      "Number of series IDs per outbound BLS API request.",
			Buckets:   []float64{1, 5, 10, 25, 50},
		}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bls_mcp",
			Name:      "cache_lookups_total",
			Help:      "Series cache lookups by result.",
		}, []string{"result"}),
		RefreshSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bls_mcp",
			Name:      "refresh_skipped_total",
			Help:      "Bulk refreshes skipped because the cache was still fresh.",
		}),
		CachedSeries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "bls_mcp",
			Name:      "cached_series",
			Help:      "Number of series currently held in the cache.",
		}),
		ToolCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bls_mcp",
			Name:      "tool_calls_total",
			Help:      "Tool invocations by tool name and outcome.",
		}, []string{"tool", "outcome"}),
	}

	prometheus.MustRegister(
		m.APIRequests,
		m.APIRequestDuration,
		m.RequestBatchSize,
		m.CacheLookups,
		m.RefreshSkipped,
		m.CachedSeries,
		m.ToolCalls,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		APIRequests:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "bls_mcp", Name: "api_requests_total"}, []string{"mode", "outcome"}),
		APIRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "bls_mcp", Name: "api_request_duration_seconds"}, []string{"mode"}),
		RequestBatchSize:   prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "bls_mcp", Name: "request_batch_size"}),
		CacheLookups:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "bls_mcp", Name: "cache_lookups_total"}, []string{"result"}),
		RefreshSkipped:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "bls_mcp", Name: "refresh_skipped_total"}),
		CachedSeries:       prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "bls_mcp", Name: "cached_series"}),
		ToolCalls:          prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "bls_mcp", Name: "tool_calls_total"}, []string{"tool", "outcome"}),
	}
}
