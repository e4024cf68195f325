// Package store keeps per-document metadata, the ordered set of live
// document ids and the document texts.
//
// Texts live in an append-only slice for the lifetime of the store. Index
// entries are substrings of these texts, so a text is never rewritten or
// compacted, even after its document is removed.
package store

import (
	"github.com/huandu/skiplist"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/document"
)

type record struct {
	data document.Data
	text int
}

type Store struct {
	texts   []string
	records map[int]record
	ids     *skiplist.SkipList
}

func New() *Store {
	return &Store{
		records: make(map[int]record),
		ids:     skiplist.New(skiplist.Int),
	}
}

// Add records a document and returns the stored copy of its text. The
// caller has already checked that id is unused.
func (s *Store) Add(id int, text string, data document.Data) string {
	s.texts = append(s.texts, text)
	s.records[id] = record{data: data, text: len(s.texts) - 1}
	s.ids.Set(id, struct{}{})
	return s.texts[len(s.texts)-1]
}

func (s *Store) Has(id int) bool {
	_, ok := s.records[id]
	return ok
}

func (s *Store) Get(id int) (document.Data, bool) {
	r, ok := s.records[id]
	return r.data, ok
}

// Text returns the original text of a live document.
func (s *Store) Text(id int) (string, bool) {
	r, ok := s.records[id]
	if !ok {
		return "", false
	}
	return s.texts[r.text], true
}

// Remove forgets a document's metadata and id. Its text stays in storage.
func (s *Store) Remove(id int) bool {
	if _, ok := s.records[id]; !ok {
		return false
	}
	delete(s.records, id)
	s.ids.Remove(id)
	return true
}

func (s *Store) Count() int {
	return len(s.records)
}

// IDs returns live document ids in ascending order.
func (s *Store) IDs() []int {
	ids := make([]int, 0, s.ids.Len())
	for elem := s.ids.Front(); elem != nil; elem = elem.Next() {
		ids = append(ids, elem.Key().(int))
	}
	return ids
}

// StoredTexts is the number of texts ever stored, including those of
// removed documents.
func (s *Store) StoredTexts() int {
	return len(s.texts)
}
