// Package parser turns a raw query into plus-words and minus-words.
package parser

import (
	"strings"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/tokenizer"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/errors"
)

// Query is a parsed query. Both word lists are free of stop-words and
// duplicates and keep the order in which words first appear in RawQuery.
type Query struct {
	PlusWords  []string
	MinusWords []string
	RawQuery   string
}

// Empty reports whether the query has no plus-words, in which case it can
// match nothing.
func (q *Query) Empty() bool {
	return len(q.PlusWords) == 0
}

// Parse splits raw on spaces. A token starting with "-" is a minus-word;
// a bare "-", a "--" prefix or any control character fails with
// ErrInvalidArgument.
func Parse(raw string, stopWords *tokenizer.StopWords) (*Query, error) {
	if !tokenizer.IsValidWord(raw) {
		return nil, errors.InvalidArgumentf("query %q contains control characters", raw)
	}
	q := &Query{
		PlusWords:  make([]string, 0),
		MinusWords: make([]string, 0),
		RawQuery:   raw,
	}
	seenPlus := make(map[string]struct{})
	seenMinus := make(map[string]struct{})

	for _, token := range tokenizer.SplitIntoWords(raw) {
		word, minus, err := parseWord(token)
		if err != nil {
			return nil, err
		}
		if stopWords.Contains(word) {
			continue
		}
		if minus {
			if _, ok := seenMinus[word]; !ok {
				seenMinus[word] = struct{}{}
				q.MinusWords = append(q.MinusWords, word)
			}
			continue
		}
		if _, ok := seenPlus[word]; !ok {
			seenPlus[word] = struct{}{}
			q.PlusWords = append(q.PlusWords, word)
		}
	}
	return q, nil
}

func parseWord(token string) (string, bool, error) {
	word, minus := strings.CutPrefix(token, "-")
	if !minus {
		return word, false, nil
	}
	if word == "" || word[0] == '-' {
		return "", false, errors.InvalidArgumentf("malformed minus-word %q", token)
	}
	return word, true, nil
}
