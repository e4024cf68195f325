package indexer

import (
	"log/slog"
	"math"
	"sync"
	"sync/atomic"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/document"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/execution"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/store"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/tokenizer"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/metrics"
)

// Options tunes an Engine. The zero value is usable.
type Options struct {
	// Workers bounds goroutines per parallel removal; <= 0 means GOMAXPROCS.
	Workers int
	Metrics *metrics.Metrics
}

// Engine owns the inverted index and the document store and keeps them
// consistent across AddDocument and RemoveDocument.
type Engine struct {
	mu         sync.RWMutex
	stopWords  *tokenizer.StopWords
	index      *index.InvertedIndex
	store      *store.Store
	workers    int
	generation atomic.Uint64
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

func NewEngine(stopWords *tokenizer.StopWords, opts Options) *Engine {
	return &Engine{
		stopWords: stopWords,
		index:     index.NewInvertedIndex(),
		store:     store.New(),
		workers:   execution.Workers(opts.Workers),
		metrics:   opts.Metrics,
		logger:    logger.WithComponent("indexer"),
	}
}

// NewEngineFromWords builds the stop-word set from words first.
func NewEngineFromWords(stopWords []string, opts Options) (*Engine, error) {
	sw, err := tokenizer.NewStopWords(stopWords)
	if err != nil {
		return nil, err
	}
	return NewEngine(sw, opts), nil
}

// NewEngineFromText builds the stop-word set from a space-separated list.
func NewEngineFromText(stopWords string, opts Options) (*Engine, error) {
	return NewEngineFromWords(tokenizer.SplitIntoWords(stopWords), opts)
}

// AddDocument indexes text under id. It fails with ErrInvalidArgument for a
// negative or already used id and for text containing control characters;
// on failure nothing is changed.
func (e *Engine) AddDocument(id int, text string, status document.Status, ratings []int) error {
	if id < 0 {
		return errors.InvalidArgumentf("document id %d is negative", id)
	}
	if !tokenizer.IsValidWord(text) {
		return errors.InvalidArgumentf("document %d contains control characters", id)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.store.Has(id) {
		return errors.InvalidArgumentf("document id %d already exists", id)
	}
	stored := e.store.Add(id, text, document.Data{
		Rating: document.AverageRating(ratings),
		Status: status,
	})
	words := e.stopWords.SplitNoStop(stored)
	e.index.Add(id, words)
	e.generation.Add(1)

	e.metrics.DocumentAdded(e.store.Count(), e.index.TermCount())
	e.logger.Debug("document indexed",
		"doc_id", id,
		"status", status,
		"word_count", len(words),
		"documents", e.store.Count(),
	)
	return nil
}

// RemoveDocument deletes id and all of its index entries. Removing an absent
// id is a no-op under either policy.
func (e *Engine) RemoveDocument(policy execution.Policy, id int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.store.Has(id) {
		return
	}
	e.index.Remove(policy, e.workers, id)
	e.store.Remove(id)
	e.generation.Add(1)

	e.metrics.DocumentRemoved(policy.String(), e.store.Count(), e.index.TermCount())
	e.logger.Debug("document removed",
		"doc_id", id,
		"policy", policy,
		"documents", e.store.Count(),
	)
}

func (e *Engine) DocumentCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.store.Count()
}

// DocumentIDs returns live ids in ascending order.
func (e *Engine) DocumentIDs() []int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.store.IDs()
}

// Document returns id's metadata.
func (e *Engine) Document(id int) (document.Data, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.store.Get(id)
}

// Text returns the original text of id.
func (e *Engine) Text(id int) (string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.store.Text(id)
}

// WordFrequencies returns id's word -> term frequency map; empty for an
// unknown id.
func (e *Engine) WordFrequencies(id int) map[string]float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.index.WordFrequencies(id)
}

// Words returns id's distinct indexed words in ascending order.
func (e *Engine) Words(id int) []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.index.Words(id)
}

// HasWord reports whether document id contains word.
func (e *Engine) HasWord(id int, word string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.index.Contains(id, word)
}

// Postings returns word's postings ordered by document id.
func (e *Engine) Postings(word string) index.PostingList {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.index.Search(word)
}

// InverseDocumentFreq is ln(documents / documents containing word). It is
// only meaningful for an indexed word and returns 0 otherwise.
func (e *Engine) InverseDocumentFreq(word string) float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	df := e.index.DocFrequency(word)
	if df == 0 {
		return 0
	}
	return math.Log(float64(e.store.Count()) / float64(df))
}

func (e *Engine) TermCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.index.TermCount()
}

func (e *Engine) StopWords() *tokenizer.StopWords {
	return e.stopWords
}

// Workers is the resolved goroutine bound for parallel operations.
func (e *Engine) Workers() int {
	return e.workers
}

// Generation changes after every successful mutation.
func (e *Engine) Generation() uint64 {
	return e.generation.Load()
}

// View reads the engine without taking its lock. It is only valid inside the
// callback passed to Engine.Read.
type View struct {
	e *Engine
}

// Read runs fn under the engine's read lock so that several lookups see one
// consistent state. fn may read from many goroutines but must not mutate the
// engine.
func (e *Engine) Read(fn func(v View)) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	fn(View{e: e})
}

func (v View) DocumentCount() int {
	return v.e.store.Count()
}

func (v View) Postings(word string) index.PostingList {
	return v.e.index.Search(word)
}

func (v View) Document(id int) (document.Data, bool) {
	return v.e.store.Get(id)
}

func (v View) HasWord(id int, word string) bool {
	return v.e.index.Contains(id, word)
}

func (v View) StopWords() *tokenizer.StopWords {
	return v.e.stopWords
}

func (v View) Generation() uint64 {
	return v.e.generation.Load()
}
