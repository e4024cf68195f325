// Package index maintains the inverted index (word -> document -> term
// frequency) together with its transpose (document -> word -> term
// frequency). Both maps are changed together by every mutating call.
//
// InvertedIndex does no locking of its own; the owning engine serialises
// mutations against reads.
package index

import (
	"sort"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/execution"
)

type InvertedIndex struct {
	forward map[string]map[int]float64
	reverse map[int]map[string]float64
}

func NewInvertedIndex() *InvertedIndex {
	return &InvertedIndex{
		forward: make(map[string]map[int]float64),
		reverse: make(map[int]map[string]float64),
	}
}

// Add indexes words for docID. Each occurrence contributes 1/len(words) to
// the word's term frequency. An empty words slice records nothing.
func (x *InvertedIndex) Add(docID int, words []string) {
	if len(words) == 0 {
		return
	}
	inv := 1.0 / float64(len(words))
	freqs := make(map[string]float64)
	for _, w := range words {
		freqs[w] += inv
	}
	for w, tf := range freqs {
		docs, ok := x.forward[w]
		if !ok {
			docs = make(map[int]float64)
			x.forward[w] = docs
		}
		docs[docID] = tf
	}
	x.reverse[docID] = freqs
}

// Search returns the postings for word ordered by document id.
func (x *InvertedIndex) Search(word string) PostingList {
	docs, ok := x.forward[word]
	if !ok {
		return nil
	}
	result := make(PostingList, 0, len(docs))
	for id, tf := range docs {
		result = append(result, Posting{DocID: id, TermFreq: tf})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].DocID < result[j].DocID
	})
	return result
}

// DocFrequency is the number of documents containing word.
func (x *InvertedIndex) DocFrequency(word string) int {
	return len(x.forward[word])
}

// Contains reports whether docID has word indexed.
func (x *InvertedIndex) Contains(docID int, word string) bool {
	_, ok := x.reverse[docID][word]
	return ok
}

// WordFrequencies returns a copy of docID's word -> term frequency map, empty
// when the document has no indexed words.
func (x *InvertedIndex) WordFrequencies(docID int) map[string]float64 {
	freqs := x.reverse[docID]
	out := make(map[string]float64, len(freqs))
	for w, tf := range freqs {
		out[w] = tf
	}
	return out
}

// Words returns docID's distinct words in ascending order.
func (x *InvertedIndex) Words(docID int) []string {
	freqs := x.reverse[docID]
	words := make([]string, 0, len(freqs))
	for w := range freqs {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// TermCount is the number of distinct indexed words.
func (x *InvertedIndex) TermCount() int {
	return len(x.forward)
}

// Remove deletes docID from every posting list it appears in and prunes
// lists that become empty. Under Parallel the per-word deletions are spread
// over workers; each word owns its own posting map so no two workers touch
// the same map. Pruning of the word table itself happens afterwards on the
// calling goroutine.
func (x *InvertedIndex) Remove(policy execution.Policy, workers int, docID int) {
	freqs, ok := x.reverse[docID]
	if !ok {
		return
	}
	words := make([]string, 0, len(freqs))
	for w := range freqs {
		words = append(words, w)
	}
	execution.ForEach(policy, workers, words, func(w string) {
		delete(x.forward[w], docID)
	})
	for _, w := range words {
		if len(x.forward[w]) == 0 {
			delete(x.forward, w)
		}
	}
	delete(x.reverse, docID)
}
