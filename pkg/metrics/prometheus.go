package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder exposes pipeline and cache metrics via Prometheus.
type Recorder struct {
	downloadsTotal *prometheus.CounterVec
	barsStored     *prometheus.CounterVec
	errorsTotal    *prometheus.CounterVec
	cacheOps       *prometheus.CounterVec
	latency        *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		downloadsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockvault_downloads_total",
				Help: "Pipeline runs by operation and outcome",
			},
			[]string{"operation", "status"},
		),
		barsStored: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockvault_bars_stored_total",
				Help: "Bars written to storage by granularity",
			},
			[]string{"granularity"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockvault_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		cacheOps: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockvault_cache_ops_total",
				Help: "Cache lookups by result",
			},
			[]string{"result"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stockvault_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordDownload records a pipeline run outcome.
func (r *Recorder) RecordDownload(operation, status string) {
	r.downloadsTotal.WithLabelValues(operation, status).Inc()
}

// RecordBarsStored records bars written to storage.
func (r *Recorder) RecordBarsStored(granularity string, count int) {
	r.barsStored.WithLabelValues(granularity).Add(float64(count))
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordCacheHit records a cache hit.
func (r *Recorder) RecordCacheHit() {
	r.cacheOps.WithLabelValues("hit").Inc()
}

// RecordCacheMiss records a cache miss.
func (r *Recorder) RecordCacheMiss() {
	r.cacheOps.WithLabelValues("miss").Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
