// Package prometheus exposes WellNodal's operational metrics: HTTP traffic,
// geometry merges, physics-engine calls, and analysis-run outcomes.
package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "wellnodal"

// Metrics holds every collector the service registers.  Construct one per
// process with NewMetrics and share it; collectors are safe for concurrent
// use.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	MergeDuration prometheus.Histogram
	MergeSegments prometheus.Histogram
	MergeDropped  prometheus.Counter

	EngineCallDuration *prometheus.HistogramVec
	EngineCallErrors   *prometheus.CounterVec

	RunsTotal *prometheus.CounterVec
}

// NewMetrics builds a Metrics set on a fresh registry, including the standard
// Go and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route, and status code.",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		MergeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "geometry_merge_duration_seconds",
			Help:      "Wellbore geometry merge latency.",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1},
		}),
		MergeSegments: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "geometry_merge_segments",
			Help:      "Segments produced per geometry merge.",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100},
		}),
		MergeDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geometry_merge_rows_dropped_total",
			Help:      "Component rows excluded during geometry merges.",
		}),
		EngineCallDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "engine_call_duration_seconds",
			Help:      "Physics-engine call latency by operation.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		EngineCallErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "engine_call_errors_total",
			Help:      "Physics-engine call failures by operation and error code.",
		}, []string{"operation", "code"}),
		RunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analysis_runs_total",
			Help:      "Analysis runs by final status.",
		}, []string{"status"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.MergeDuration,
		m.MergeSegments,
		m.MergeDropped,
		m.EngineCallDuration,
		m.EngineCallErrors,
		m.RunsTotal,
	)
	return m
}

// Registry returns the registry backing the /metrics endpoint.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveMerge records one geometry merge.
func (m *Metrics) ObserveMerge(d time.Duration, segments, dropped int) {
	m.MergeDuration.Observe(d.Seconds())
	m.MergeSegments.Observe(float64(segments))
	if dropped > 0 {
		m.MergeDropped.Add(float64(dropped))
	}
}

// ObserveEngineCall records one physics-engine call; code is empty on
// success.
func (m *Metrics) ObserveEngineCall(operation string, d time.Duration, code string) {
	m.EngineCallDuration.WithLabelValues(operation).Observe(d.Seconds())
	if code != "" {
		m.EngineCallErrors.WithLabelValues(operation, code).Inc()
	}
}
