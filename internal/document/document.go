// Package document defines the values exchanged between the index, the
// ranking code and its callers: result entries, document status and the
// filter predicate used by searches.
package document

import (
	"strconv"
	"strings"

	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/errors"
)

// Status is an opaque classification tag attached to every document.
type Status int

const (
	StatusActual Status = iota
	StatusIrrelevant
	StatusBanned
	StatusRemoved
)

var statusNames = [...]string{"ACTUAL", "IRRELEVANT", "BANNED", "REMOVED"}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return "Status(" + strconv.Itoa(int(s)) + ")"
	}
	return statusNames[s]
}

// ParseStatus accepts the canonical names case-insensitively.
func ParseStatus(name string) (Status, error) {
	for i, n := range statusNames {
		if strings.EqualFold(n, name) {
			return Status(i), nil
		}
	}
	return 0, errors.InvalidArgumentf("unknown document status %q", name)
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Predicate filters candidate documents during a search. Parallel searches
// call it from several goroutines at once.
type Predicate func(id int, status Status, rating int) bool

// WithStatus returns a predicate matching documents tagged with status.
func WithStatus(status Status) Predicate {
	return func(_ int, s Status, _ int) bool {
		return s == status
	}
}

// Data is the per-document metadata kept by the store.
type Data struct {
	Rating int
	Status Status
}

// Document is one ranked search result.
type Document struct {
	ID        int     `json:"id"`
	Relevance float64 `json:"relevance"`
	Rating    int     `json:"rating"`
}

func (d Document) String() string {
	return "{ document_id = " + strconv.Itoa(d.ID) +
		", relevance = " + strconv.FormatFloat(d.Relevance, 'g', 6, 64) +
		", rating = " + strconv.Itoa(d.Rating) + " }"
}

// AverageRating is the integer mean of ratings, truncated toward zero, or 0
// for no ratings.
func AverageRating(ratings []int) int {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return sum / len(ratings)
}
