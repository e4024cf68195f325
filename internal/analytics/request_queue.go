// Package analytics tracks search requests over a sliding window and reports
// how many of them found nothing.
package analytics

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/document"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/execution"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/metrics"
)

// DefaultWindow is one request per minute for a day.
const DefaultWindow = 1440

const topQueries = 10

// Finder runs the searches a RequestQueue records.
type Finder interface {
	FindTopDocuments(policy execution.Policy, raw string, pred document.Predicate) ([]document.Document, error)
}

type Stats struct {
	Window           int          `json:"window"`
	Requests         int          `json:"requests"`
	NoResultRequests int          `json:"no_result_requests"`
	TotalRequests    int64        `json:"total_requests"`
	TopNoResult      []QueryCount `json:"top_no_result_queries"`
}

type QueryCount struct {
	Query string `json:"query"`
	Count int64  `json:"count"`
}

// RequestQueue remembers whether each of the last window requests returned
// anything. Requests that fail are not recorded.
type RequestQueue struct {
	mu        sync.Mutex
	finder    Finder
	policy    execution.Policy
	empty     []bool
	next      int
	size      int
	noResults int
	total     int64
	// noResultQueries counts empty results per query over the queue's
	// lifetime, not just the window.
	noResultQueries map[string]int64

	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewRequestQueue records up to window requests; window < 1 means
// DefaultWindow. Searches run with policy.
func NewRequestQueue(finder Finder, window int, policy execution.Policy, m *metrics.Metrics) *RequestQueue {
	if window < 1 {
		window = DefaultWindow
	}
	return &RequestQueue{
		finder:          finder,
		policy:          policy,
		empty:           make([]bool, window),
		noResultQueries: make(map[string]int64),
		metrics:         m,
		logger:          logger.WithComponent("request-queue"),
	}
}

func (q *RequestQueue) AddFindRequest(raw string, pred document.Predicate) ([]document.Document, error) {
	docs, err := q.finder.FindTopDocuments(q.policy, raw, pred)
	if err != nil {
		return nil, err
	}
	q.record(raw, len(docs) == 0)
	return docs, nil
}

func (q *RequestQueue) AddFindRequestByStatus(raw string, status document.Status) ([]document.Document, error) {
	return q.AddFindRequest(raw, document.WithStatus(status))
}

// AddActualFindRequest searches ACTUAL documents only.
func (q *RequestQueue) AddActualFindRequest(raw string) ([]document.Document, error) {
	return q.AddFindRequestByStatus(raw, document.StatusActual)
}

// NoResultRequests is the number of empty results among the recorded
// requests in the window.
func (q *RequestQueue) NoResultRequests() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.noResults
}

func (q *RequestQueue) Stats() Stats {
	q.mu.Lock()
	defer q.mu.Unlock()
	return Stats{
		Window:           len(q.empty),
		Requests:         q.size,
		NoResultRequests: q.noResults,
		TotalRequests:    q.total,
		TopNoResult:      topN(q.noResultQueries, topQueries),
	}
}

func (q *RequestQueue) record(raw string, empty bool) {
	q.mu.Lock()
	if q.size == len(q.empty) {
		if q.empty[q.next] {
			q.noResults--
		}
	} else {
		q.size++
	}
	q.empty[q.next] = empty
	q.next = (q.next + 1) % len(q.empty)
	q.total++
	if empty {
		q.noResults++
		q.noResultQueries[raw]++
	}
	noResults := q.noResults
	q.mu.Unlock()

	q.metrics.SetNoResultRequests(noResults)
	if empty {
		q.logger.Debug("request returned no results", "query", raw, "no_result_requests", noResults)
	}
}

func topN(counts map[string]int64, n int) []QueryCount {
	result := make([]QueryCount, 0, len(counts))
	for query, count := range counts {
		result = append(result, QueryCount{Query: query, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Query < result[j].Query
	})
	if len(result) > n {
		result = result[:n]
	}
	return result
}
