// Package dedup removes documents whose set of indexed words repeats that of
// a document with a lower id.
package dedup

import (
	"log/slog"
	"strings"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/execution"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/metrics"
)

// Remover finds and removes duplicates on one engine.
type Remover struct {
	engine  *indexer.Engine
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func New(engine *indexer.Engine, m *metrics.Metrics) *Remover {
	return &Remover{
		engine:  engine,
		metrics: m,
		logger:  logger.WithComponent("dedup"),
	}
}

// Find returns, in ascending order, the ids of documents whose word set was
// already seen on a lower id. Word frequencies and order are ignored.
func (r *Remover) Find() []int {
	seen := make(map[string]struct{})
	duplicates := make([]int, 0)
	for _, id := range r.engine.DocumentIDs() {
		// Words is sorted, so equal sets give equal keys.
		key := strings.Join(r.engine.Words(id), " ")
		if _, ok := seen[key]; ok {
			duplicates = append(duplicates, id)
			continue
		}
		seen[key] = struct{}{}
	}
	return duplicates
}

// Remove deletes every duplicate reported by Find using policy and returns
// the removed ids.
func (r *Remover) Remove(policy execution.Policy) []int {
	duplicates := r.Find()
	for _, id := range duplicates {
		r.logger.Info("found duplicate document", "doc_id", id)
		r.engine.RemoveDocument(policy, id)
		r.metrics.DuplicateRemoved()
	}
	return duplicates
}
