// Package tokenizer splits raw text into space-delimited words and
// holds the immutable stop-word set applied to documents and queries.
//
// Words returned by SplitIntoWords are substrings of the input and share its
// backing memory; no word is copied.
package tokenizer

import (
	"sort"
	"strings"

	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/errors"
)

// SplitIntoWords breaks text on the ASCII space only, dropping empty fields.
// Other separators are either control characters, which callers reject, or
// Unicode spaces such as U+00A0, which stay inside the word.
func SplitIntoWords(text string) []string {
	return strings.FieldsFunc(text, isSpace)
}

func isSpace(r rune) bool {
	return r == ' '
}

// IsValidWord reports whether s is free of control characters (bytes below
// the space character).
func IsValidWord(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < ' ' {
			return false
		}
	}
	return true
}

// StopWords is an immutable set of words excluded from indexing and queries.
// The nil *StopWords is the empty set.
type StopWords struct {
	words map[string]struct{}
}

// NewStopWords builds a set from words, skipping empty strings. Any word with
// a control character makes it fail.
func NewStopWords(words []string) (*StopWords, error) {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		if w == "" {
			continue
		}
		if !IsValidWord(w) {
			return nil, errors.InvalidArgumentf("stop word %q contains control characters", w)
		}
		set[w] = struct{}{}
	}
	return &StopWords{words: set}, nil
}

// ParseStopWords builds a set from a space-separated list.
func ParseStopWords(text string) (*StopWords, error) {
	return NewStopWords(SplitIntoWords(text))
}

func (s *StopWords) Contains(word string) bool {
	if s == nil {
		return false
	}
	_, ok := s.words[word]
	return ok
}

func (s *StopWords) Len() int {
	if s == nil {
		return 0
	}
	return len(s.words)
}

// Words returns the set in ascending order.
func (s *StopWords) Words() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.words))
	for w := range s.words {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// SplitNoStop splits text and drops stop-words, keeping word order.
func (s *StopWords) SplitNoStop(text string) []string {
	words := SplitIntoWords(text)
	kept := words[:0]
	for _, w := range words {
		if !s.Contains(w) {
			kept = append(kept, w)
		}
	}
	return kept
}
