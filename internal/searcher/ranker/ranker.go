// Package ranker scores documents against a parsed query with TF-IDF and
// returns the best matches.
package ranker

import (
	"math"
	"sort"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/document"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/execution"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/searcher/accumulator"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/searcher/parser"
)

const (
	DefaultMaxResults = 5
	DefaultTolerance  = 1e-6
	DefaultShards     = 100
)

// Source is the read side of the index the ranker needs. Implementations
// must allow concurrent calls.
type Source interface {
	DocumentCount() int
	Postings(word string) index.PostingList
	Document(id int) (document.Data, bool)
}

type Params struct {
	MaxResults int
	// Tolerance is the relevance difference below which two documents are
	// ordered by rating instead.
	Tolerance float64
	// Shards and Workers only apply to Parallel ranking.
	Shards  int
	Workers int
}

// DefaultParams returns the reference limits: 5 results, 1e-6 tolerance.
func DefaultParams() Params {
	return Params{
		MaxResults: DefaultMaxResults,
		Tolerance:  DefaultTolerance,
		Shards:     DefaultShards,
	}
}

// Rank scores every document that has at least one plus-word and satisfies
// pred, drops every document holding a minus-word, sorts and truncates to
// params.MaxResults. Both policies return the same documents in the same
// order.
func Rank(policy execution.Policy, src Source, q *parser.Query, pred document.Predicate, params Params) []document.Document {
	var relevance map[int]float64
	if policy == execution.Parallel {
		relevance = accumulateParallel(src, q, pred, params)
	} else {
		relevance = accumulate(src, q, pred)
	}

	docs := make([]document.Document, 0, len(relevance))
	for id, rel := range relevance {
		data, _ := src.Document(id)
		docs = append(docs, document.Document{ID: id, Relevance: rel, Rating: data.Rating})
	}
	Sort(docs, params.Tolerance)
	if params.MaxResults > 0 && len(docs) > params.MaxResults {
		docs = docs[:params.MaxResults]
	}
	return docs
}

func accumulate(src Source, q *parser.Query, pred document.Predicate) map[int]float64 {
	relevance := make(map[int]float64)
	total := src.DocumentCount()
	for _, word := range q.PlusWords {
		postings := src.Postings(word)
		if len(postings) == 0 {
			continue
		}
		idf := inverseDocumentFreq(total, len(postings))
		for _, p := range postings {
			data, ok := src.Document(p.DocID)
			if ok && pred(p.DocID, data.Status, data.Rating) {
				relevance[p.DocID] += p.TermFreq * idf
			}
		}
	}
	for _, word := range q.MinusWords {
		for _, p := range src.Postings(word) {
			delete(relevance, p.DocID)
		}
	}
	return relevance
}

func accumulateParallel(src Source, q *parser.Query, pred document.Predicate, params Params) map[int]float64 {
	shards := params.Shards
	if shards < 1 {
		shards = DefaultShards
	}
	acc := accumulator.New[int, float64](shards)
	total := src.DocumentCount()

	execution.ForEach(execution.Parallel, params.Workers, q.PlusWords, func(word string) {
		postings := src.Postings(word)
		if len(postings) == 0 {
			return
		}
		idf := inverseDocumentFreq(total, len(postings))
		for _, p := range postings {
			data, ok := src.Document(p.DocID)
			if !ok || !pred(p.DocID, data.Status, data.Rating) {
				continue
			}
			acc.Update(p.DocID, func(rel *float64) {
				*rel += p.TermFreq * idf
			})
		}
	})
	execution.ForEach(execution.Parallel, params.Workers, q.MinusWords, func(word string) {
		for _, p := range src.Postings(word) {
			acc.Delete(p.DocID)
		}
	})
	return acc.BuildOrdinaryMap()
}

func inverseDocumentFreq(total, docFreq int) float64 {
	return math.Log(float64(total) / float64(docFreq))
}

// Sort orders docs by relevance descending. Relevances closer than tolerance
// count as equal and fall back to rating descending, then to id ascending.
//
// "Closer than tolerance" is not transitive: when a~b and b~c but a and c are
// further apart, the result depends on where the three start. Sorting by id
// first pins that start, so the same set of docs always comes out in the same
// order. Do not replace the tolerance with exact comparison; ratings must
// decide between relevances that differ only by rounding.
func Sort(docs []document.Document, tolerance float64) {
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].ID < docs[j].ID
	})
	sort.SliceStable(docs, func(i, j int) bool {
		if math.Abs(docs[i].Relevance-docs[j].Relevance) < tolerance {
			return docs[i].Rating > docs[j].Rating
		}
		return docs[i].Relevance > docs[j].Relevance
	})
}
