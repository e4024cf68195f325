package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.DocumentAdded(1, 2)
		m.DocumentRemoved("parallel", 0, 0)
		m.SearchCompleted("sequential", 3, nil, time.Millisecond)
		m.MatchCompleted("sequential")
		m.CacheLookup(true)
		m.SetNoResultRequests(4)
		m.DuplicateRemoved()
		m.HTTPStarted()("GET", "/stats", 200, time.Millisecond)
	})
}

func TestRecorders(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.DocumentAdded(3, 10)
	m.DocumentRemoved("parallel", 2, 8)
	m.SearchCompleted("sequential", 0, nil, time.Millisecond)
	m.SearchCompleted("sequential", 2, nil, time.Millisecond)
	m.SearchCompleted("parallel", 0, errors.New("bad query"), time.Millisecond)
	m.CacheLookup(true)
	m.CacheLookup(false)
	m.CacheLookup(false)
	m.SetNoResultRequests(5)
	m.DuplicateRemoved()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.DocumentsAddedTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DocumentsRemovedTotal.WithLabelValues("parallel")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.DocumentCount))
	assert.Equal(t, 8.0, testutil.ToFloat64(m.IndexedWords))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SearchQueriesTotal.WithLabelValues("sequential", "zero_result")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SearchQueriesTotal.WithLabelValues("sequential", "hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SearchQueriesTotal.WithLabelValues("parallel", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheHitsTotal))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheMissesTotal))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.NoResultRequests))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DuplicatesRemovedTotal))
}

func TestHTTPStarted(t *testing.T) {
	m := New(prometheus.NewRegistry())

	done := m.HTTPStarted()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsInFlight))
	done("GET", "/readyz", 503, time.Millisecond)

	assert.Equal(t, 0.0, testutil.ToFloat64(m.HTTPRequestsInFlight))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/readyz", "503")))
}
