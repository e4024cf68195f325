package analytics

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/document"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/execution"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/searcher/executor"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/metrics"
)

func newExecutor(t *testing.T) *executor.Executor {
	t.Helper()
	e, err := indexer.NewEngineFromText("and in at", indexer.Options{})
	require.NoError(t, err)
	texts := []string{
		"curly cat curly tail",
		"curly dog and fancy collar",
		"big cat fancy collar ",
		"big dog sparrow Eugene",
		"big dog sparrow Vasiliy",
	}
	for i, text := range texts {
		require.NoError(t, e.AddDocument(i+1, text, document.StatusActual, []int{7, 2, 7}))
	}
	return executor.New(e, config.SearchConfig{}, nil)
}

func TestRequestQueueSlidingWindow(t *testing.T) {
	q := NewRequestQueue(newExecutor(t), 0, execution.Sequential, nil)
	for i := 0; i < 1439; i++ {
		_, err := q.AddActualFindRequest("empty request")
		require.NoError(t, err)
	}
	assert.Equal(t, 1439, q.NoResultRequests())

	docs, err := q.AddActualFindRequest("curly dog")
	require.NoError(t, err)
	assert.NotEmpty(t, docs)
	assert.Equal(t, 1439, q.NoResultRequests())

	_, err = q.AddActualFindRequest("big collar")
	require.NoError(t, err)
	_, err = q.AddActualFindRequest("sparrow")
	require.NoError(t, err)
	assert.Equal(t, 1437, q.NoResultRequests())

	stats := q.Stats()
	assert.Equal(t, DefaultWindow, stats.Window)
	assert.Equal(t, DefaultWindow, stats.Requests)
	assert.Equal(t, int64(1442), stats.TotalRequests)
	require.Len(t, stats.TopNoResult, 1)
	assert.Equal(t, QueryCount{Query: "empty request", Count: 1439}, stats.TopNoResult[0])
}

func TestRequestQueueSmallWindow(t *testing.T) {
	q := NewRequestQueue(newExecutor(t), 2, execution.Parallel, nil)
	_, err := q.AddActualFindRequest("nothing")
	require.NoError(t, err)
	_, err = q.AddFindRequestByStatus("curly", document.StatusBanned)
	require.NoError(t, err)
	assert.Equal(t, 2, q.NoResultRequests())

	_, err = q.AddFindRequest("curly", func(id int, _ document.Status, _ int) bool { return id == 1 })
	require.NoError(t, err)
	assert.Equal(t, 1, q.NoResultRequests())
	_, err = q.AddActualFindRequest("sparrow")
	require.NoError(t, err)
	assert.Equal(t, 0, q.NoResultRequests())
}

func TestRequestQueueSkipsFailedRequests(t *testing.T) {
	q := NewRequestQueue(newExecutor(t), 10, execution.Sequential, nil)
	_, err := q.AddActualFindRequest("cat --dog")
	assert.ErrorIs(t, err, errors.ErrInvalidArgument)
	stats := q.Stats()
	assert.Zero(t, stats.Requests)
	assert.Zero(t, stats.TotalRequests)
}

func TestRequestQueuePublishesGauge(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	q := NewRequestQueue(newExecutor(t), 10, execution.Sequential, m)
	for _, raw := range []string{"none", "nope", "curly"} {
		_, err := q.AddActualFindRequest(raw)
		require.NoError(t, err)
	}
	assert.InDelta(t, 2.0, testutil.ToFloat64(m.NoResultRequests), 1e-9)
}

func TestHandlerServesStats(t *testing.T) {
	q := NewRequestQueue(newExecutor(t), 5, execution.Sequential, nil)
	_, err := q.AddActualFindRequest("none")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	NewHandler(q).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var stats Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 5, stats.Window)
	assert.Equal(t, 1, stats.NoResultRequests)

	rec = httptest.NewRecorder()
	NewHandler(q).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/stats", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
