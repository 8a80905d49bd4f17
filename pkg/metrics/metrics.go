// Package metrics defines the Prometheus metric collectors used by the
// server and exposes an HTTP handler for scraping.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors for the server.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	SearchesTotal       *prometheus.CounterVec
	SearchLatency       prometheus.Histogram
	SearchResultsCount  prometheus.Histogram
	CandidatesFiltered  prometheus.Histogram
	RecordsLoaded       prometheus.Gauge
	DatasetReloadsTotal *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics with reg. Passing nil
// registers with the default registry; tests pass their own registry to
// avoid duplicate registration.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests by method, path, and status.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds.",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),
		SearchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "searches_total",
				Help: "Total searches by outcome (hit, zero_result, error).",
			},
			[]string{"outcome"},
		),
		SearchLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "search_latency_seconds",
				Help:    "Search latency in seconds.",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
		),
		SearchResultsCount: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "search_results_count",
				Help:    "Number of results returned per search.",
				Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
			},
		),
		CandidatesFiltered: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "search_candidates",
				Help:    "Number of index candidates evaluated per search.",
				Buckets: []float64{0, 10, 100, 1000, 10000, 100000},
			},
		),
		RecordsLoaded: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "dataset_records_loaded",
				Help: "Number of records in the active dataset.",
			},
		),
		DatasetReloadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dataset_reloads_total",
				Help: "Total dataset reloads by status.",
			},
			[]string{"status"},
		),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.SearchesTotal,
		m.SearchLatency,
		m.SearchResultsCount,
		m.CandidatesFiltered,
		m.RecordsLoaded,
		m.DatasetReloadsTotal,
	)

	return m
}

// Handler returns the Prometheus scrape HTTP handler for the default
// registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
