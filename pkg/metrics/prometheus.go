package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements usecase.Metrics using Prometheus.
type Recorder struct {
	lookupsTotal *prometheus.CounterVec
	fetchesTotal *prometheus.CounterVec
	fetchLatency *prometheus.HistogramVec
	panelPushes  prometheus.Counter
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		lookupsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stocklens_lookups_total",
				Help: "Total number of lookup cycles by outcome",
			},
			[]string{"outcome"},
		),
		fetchesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stocklens_fetches_total",
				Help: "Total number of upstream fetches by source and outcome",
			},
			[]string{"source", "outcome"},
		),
		fetchLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stocklens_fetch_duration_seconds",
				Help:    "Duration of upstream fetches in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"source"},
		),
		panelPushes: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "stocklens_panel_pushes_total",
				Help: "Total panel updates pushed over websocket",
			},
		),
	}
}

// RecordLookup records a lookup cycle outcome (started, rejected).
func (r *Recorder) RecordLookup(outcome string) {
	r.lookupsTotal.WithLabelValues(outcome).Inc()
}

// RecordFetch records an upstream fetch outcome (ok, error, stale).
func (r *Recorder) RecordFetch(source, outcome string) {
	r.fetchesTotal.WithLabelValues(source, outcome).Inc()
}

// RecordFetchLatency records upstream fetch latency in seconds.
func (r *Recorder) RecordFetchLatency(source string, seconds float64) {
	r.fetchLatency.WithLabelValues(source).Observe(seconds)
}

// RecordPanelPush records a panel update delivered to a live subscriber.
func (r *Recorder) RecordPanelPush() {
	r.panelPushes.Inc()
}
