// Package metrics defines the Prometheus metric collectors used by the search
// engine and exposes an HTTP handler for scraping. A nil *Metrics is valid and
// records nothing, so library users can opt out.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors for the engine.
type Metrics struct {
	DocumentsAddedTotal    prometheus.Counter
	DocumentsRemovedTotal  *prometheus.CounterVec
	DocumentCount          prometheus.Gauge
	IndexedWords           prometheus.Gauge
	SearchQueriesTotal     *prometheus.CounterVec
	SearchLatency          *prometheus.HistogramVec
	SearchResultsCount     prometheus.Histogram
	MatchRequestsTotal     *prometheus.CounterVec
	CacheHitsTotal         prometheus.Counter
	CacheMissesTotal       prometheus.Counter
	NoResultRequests       prometheus.Gauge
	DuplicatesRemovedTotal prometheus.Counter
	HTTPRequestsTotal      *prometheus.CounterVec
	HTTPRequestDuration    *prometheus.HistogramVec
	HTTPRequestsInFlight   prometheus.Gauge
}

// New creates all collectors and registers them with reg. A nil reg means
// prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		DocumentsAddedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "documents_added_total",
				Help: "Total documents added to the index.",
			},
		),
		DocumentsRemovedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "documents_removed_total",
				Help: "Total documents removed from the index by execution policy.",
			},
			[]string{"policy"},
		),
		DocumentCount: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "document_count",
				Help: "Number of documents currently indexed.",
			},
		),
		IndexedWords: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "indexed_words",
				Help: "Number of distinct words in the inverted index.",
			},
		),
		SearchQueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "search_queries_total",
				Help: "Total search queries by policy and result type (hit, zero_result, error).",
			},
			[]string{"policy", "result_type"},
		),
		SearchLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "search_latency_seconds",
				Help:    "Search query latency in seconds.",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
			[]string{"policy"},
		),
		SearchResultsCount: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "search_results_count",
				Help:    "Number of results returned per search query.",
				Buckets: []float64{0, 1, 2, 3, 4, 5, 10, 25},
			},
		),
		MatchRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "match_requests_total",
				Help: "Total document match requests by policy.",
			},
			[]string{"policy"},
		),
		CacheHitsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "cache_hits_total",
				Help: "Total number of result cache hits.",
			},
		),
		CacheMissesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "cache_misses_total",
				Help: "Total number of result cache misses.",
			},
		),
		NoResultRequests: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "no_result_requests",
				Help: "Empty-result requests inside the request tracker window.",
			},
		),
		DuplicatesRemovedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "duplicates_removed_total",
				Help: "Total duplicate documents removed.",
			},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Requests to the stats and health endpoints by method, path and status code.",
			},
			[]string{"method", "path", "code"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Stats and health endpoint latency in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Stats and health requests currently being served.",
			},
		),
	}

	reg.MustRegister(
		m.DocumentsAddedTotal,
		m.DocumentsRemovedTotal,
		m.DocumentCount,
		m.IndexedWords,
		m.SearchQueriesTotal,
		m.SearchLatency,
		m.SearchResultsCount,
		m.MatchRequestsTotal,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
		m.NoResultRequests,
		m.DuplicatesRemovedTotal,
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPRequestsInFlight,
	)

	return m
}

// DocumentAdded records a successful insert and the new index size.
func (m *Metrics) DocumentAdded(docs, words int) {
	if m == nil {
		return
	}
	m.DocumentsAddedTotal.Inc()
	m.DocumentCount.Set(float64(docs))
	m.IndexedWords.Set(float64(words))
}

// DocumentRemoved records a removal and the new index size.
func (m *Metrics) DocumentRemoved(policy string, docs, words int) {
	if m == nil {
		return
	}
	m.DocumentsRemovedTotal.WithLabelValues(policy).Inc()
	m.DocumentCount.Set(float64(docs))
	m.IndexedWords.Set(float64(words))
}

// SearchCompleted records one FindTopDocuments call.
func (m *Metrics) SearchCompleted(policy string, results int, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	resultType := "hit"
	switch {
	case err != nil:
		resultType = "error"
	case results == 0:
		resultType = "zero_result"
	}
	m.SearchQueriesTotal.WithLabelValues(policy, resultType).Inc()
	m.SearchLatency.WithLabelValues(policy).Observe(elapsed.Seconds())
	if err == nil {
		m.SearchResultsCount.Observe(float64(results))
	}
}

func (m *Metrics) MatchCompleted(policy string) {
	if m == nil {
		return
	}
	m.MatchRequestsTotal.WithLabelValues(policy).Inc()
}

func (m *Metrics) CacheLookup(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.CacheHitsTotal.Inc()
	} else {
		m.CacheMissesTotal.Inc()
	}
}

func (m *Metrics) SetNoResultRequests(n int) {
	if m == nil {
		return
	}
	m.NoResultRequests.Set(float64(n))
}

func (m *Metrics) DuplicateRemoved() {
	if m == nil {
		return
	}
	m.DuplicatesRemovedTotal.Inc()
}

// HTTPStarted marks a request in flight and returns the func that records
// its outcome.
func (m *Metrics) HTTPStarted() func(method, path string, code int, elapsed time.Duration) {
	if m == nil {
		return func(string, string, int, time.Duration) {}
	}
	m.HTTPRequestsInFlight.Inc()
	return func(method, path string, code int, elapsed time.Duration) {
		m.HTTPRequestsInFlight.Dec()
		m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(code)).Inc()
		m.HTTPRequestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
	}
}

// Handler returns the Prometheus scrape HTTP handler for the default gatherer.
func Handler() http.Handler {
	return promhttp.Handler()
}
