// Package corpus loads documents to index from a YAML file.
//
//	stopWords: [and, in, the]
//	documents:
//	  - id: 1
//	    text: white cat and fancy collar
//	    status: actual
//	    ratings: [8, -3]
package corpus

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/document"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/tokenizer"
)

type Document struct {
	ID      int             `yaml:"id"`
	Text    string          `yaml:"text"`
	Status  document.Status `yaml:"status"`
	Ratings []int           `yaml:"ratings"`
}

type Corpus struct {
	StopWords []string   `yaml:"stopWords"`
	Documents []Document `yaml:"documents"`
}

// ValidationError holds per-field validation failure messages.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, e.Fields[field]))
	}
	return strings.Join(parts, "; ")
}

// Load reads and validates a corpus file. A status left out of a document
// defaults to actual.
func Load(path string) (*Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading corpus file %s: %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Corpus, error) {
	var c Corpus
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing corpus: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate reports every problem that would make AddDocument or the stop-word
// set reject the corpus, as a *ValidationError.
func (c *Corpus) Validate() error {
	errs := make(map[string]string)
	for i, w := range c.StopWords {
		if !tokenizer.IsValidWord(w) {
			errs[fmt.Sprintf("stopWords[%d]", i)] = "must not contain control characters"
		}
	}
	seen := make(map[int]int, len(c.Documents))
	for i, d := range c.Documents {
		field := fmt.Sprintf("documents[%d]", i)
		switch prev, dup := seen[d.ID]; {
		case d.ID < 0:
			errs[field+".id"] = "must not be negative"
		case dup:
			errs[field+".id"] = fmt.Sprintf("duplicates documents[%d]", prev)
		default:
			seen[d.ID] = i
		}
		if !tokenizer.IsValidWord(d.Text) {
			errs[field+".text"] = "must not contain control characters"
		}
	}
	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

// Populate adds every document to e in file order.
func (c *Corpus) Populate(e *indexer.Engine) error {
	for _, d := range c.Documents {
		if err := e.AddDocument(d.ID, d.Text, d.Status, d.Ratings); err != nil {
			return fmt.Errorf("adding document %d: %w", d.ID, err)
		}
	}
	return nil
}
