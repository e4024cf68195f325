// Package executor answers search and match requests against an indexer
// engine.
package executor

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/document"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/execution"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/searcher/parser"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/searcher/ranker"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/metrics"
)

// SearchResult is one answered query, shaped for JSON output.
type SearchResult struct {
	Query   string              `json:"query"`
	Status  document.Status     `json:"status"`
	Results []document.Document `json:"results"`
}

type Executor struct {
	engine  *indexer.Engine
	params  ranker.Params
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// New builds an executor from the search section of the configuration.
// Zero values fall back to the ranker defaults.
func New(engine *indexer.Engine, cfg config.SearchConfig, m *metrics.Metrics) *Executor {
	params := ranker.DefaultParams()
	if cfg.MaxResults > 0 {
		params.MaxResults = cfg.MaxResults
	}
	if cfg.RelevanceTolerance > 0 {
		params.Tolerance = cfg.RelevanceTolerance
	}
	if cfg.AccumulatorShards > 0 {
		params.Shards = cfg.AccumulatorShards
	}
	params.Workers = engine.Workers()
	return &Executor{
		engine:  engine,
		params:  params,
		metrics: m,
		logger:  logger.WithComponent("query-executor"),
	}
}

func (x *Executor) Engine() *indexer.Engine {
	return x.engine
}

func (x *Executor) MaxResults() int {
	return x.params.MaxResults
}

// Generation is the engine generation; cached results from another
// generation are stale.
func (x *Executor) Generation() uint64 {
	return x.engine.Generation()
}

// FindTopDocuments returns at most MaxResults documents matching raw and pred,
// best first. Malformed queries fail with ErrInvalidArgument.
func (x *Executor) FindTopDocuments(policy execution.Policy, raw string, pred document.Predicate) ([]document.Document, error) {
	start := time.Now()
	var (
		docs []document.Document
		err  error
	)
	x.engine.Read(func(v indexer.View) {
		var q *parser.Query
		q, err = parser.Parse(raw, v.StopWords())
		if err != nil {
			return
		}
		docs = ranker.Rank(policy, v, q, pred, x.params)
	})
	elapsed := time.Since(start)
	x.metrics.SearchCompleted(policy.String(), len(docs), err, elapsed)
	if err != nil {
		x.logger.Debug("query rejected", "query", raw, "error", err)
		return nil, err
	}
	x.logger.Debug("query executed",
		"query", raw,
		"policy", policy,
		"results", len(docs),
		"duration_ms", elapsed.Milliseconds(),
	)
	return docs, nil
}

// FindTopDocumentsByStatus keeps only documents with the given status.
func (x *Executor) FindTopDocumentsByStatus(policy execution.Policy, raw string, status document.Status) ([]document.Document, error) {
	return x.FindTopDocuments(policy, raw, document.WithStatus(status))
}

// Search is the sequential ACTUAL-status lookup.
func (x *Executor) Search(raw string) ([]document.Document, error) {
	return x.FindTopDocumentsByStatus(execution.Sequential, raw, document.StatusActual)
}

// MatchDocument returns the plus-words of raw that document id contains, in
// query order, along with the document's status. If the document holds any
// minus-word the word list is empty. An unknown id fails with ErrNotFound.
func (x *Executor) MatchDocument(policy execution.Policy, raw string, id int) ([]string, document.Status, error) {
	var (
		words  []string
		status document.Status
		err    error
	)
	x.engine.Read(func(v indexer.View) {
		var q *parser.Query
		q, err = parser.Parse(raw, v.StopWords())
		if err != nil {
			return
		}
		data, ok := v.Document(id)
		if !ok {
			err = errors.NotFoundf("document %d does not exist", id)
			return
		}
		status = data.Status
		if policy == execution.Parallel {
			words = x.matchParallel(v, q, id)
		} else {
			words = match(v, q, id)
		}
	})
	if err != nil {
		return nil, 0, err
	}
	x.metrics.MatchCompleted(policy.String())
	return words, status, nil
}

func match(v indexer.View, q *parser.Query, id int) []string {
	matched := make([]string, 0, len(q.PlusWords))
	for _, w := range q.MinusWords {
		if v.HasWord(id, w) {
			return matched
		}
	}
	for _, w := range q.PlusWords {
		if v.HasWord(id, w) {
			matched = append(matched, w)
		}
	}
	return matched
}

func (x *Executor) matchParallel(v indexer.View, q *parser.Query, id int) []string {
	var excluded atomic.Bool
	execution.ForEach(execution.Parallel, x.params.Workers, q.MinusWords, func(w string) {
		if !excluded.Load() && v.HasWord(id, w) {
			excluded.Store(true)
		}
	})
	if excluded.Load() {
		return make([]string, 0)
	}

	found := make([]bool, len(q.PlusWords))
	execution.ForEachIndex(execution.Parallel, x.params.Workers, len(q.PlusWords), func(i int) {
		found[i] = v.HasWord(id, q.PlusWords[i])
	})
	matched := make([]string, 0, len(q.PlusWords))
	for i, ok := range found {
		if ok {
			matched = append(matched, q.PlusWords[i])
		}
	}
	return matched
}
