package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/document"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer"
)

const sample = `
stopWords: [and, in, the]
documents:
  - id: 1
    text: white cat and fancy collar
    ratings: [8, -3]
  - id: 2
    text: groomed dog expressive eyes
    status: banned
    ratings: [5, -12, 2, 1]
  - id: 3
    text: the fluffy cat
    status: Irrelevant
`

func TestLoadAndPopulate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"and", "in", "the"}, c.StopWords)
	require.Len(t, c.Documents, 3)
	assert.Equal(t, document.StatusActual, c.Documents[0].Status)
	assert.Equal(t, document.StatusBanned, c.Documents[1].Status)
	assert.Equal(t, document.StatusIrrelevant, c.Documents[2].Status)
	assert.Empty(t, c.Documents[2].Ratings)

	e, err := indexer.NewEngineFromWords(c.StopWords, indexer.Options{})
	require.NoError(t, err)
	require.NoError(t, c.Populate(e))
	assert.Equal(t, []int{1, 2, 3}, e.DocumentIDs())
	data, ok := e.Document(2)
	require.True(t, ok)
	assert.Equal(t, -1, data.Rating)
	assert.Equal(t, []string{"cat", "fluffy"}, e.Words(3))
}

func TestParseCollectsValidationErrors(t *testing.T) {
	_, err := Parse([]byte(`
stopWords: ["ok", "ba\u0001d"]
documents:
  - id: 1
    text: fine
  - id: 1
    text: "tab\there"
  - id: -5
    text: fine
`))
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string]string{
		"stopWords[1]":      "must not contain control characters",
		"documents[1].id":   "duplicates documents[0]",
		"documents[1].text": "must not contain control characters",
		"documents[2].id":   "must not be negative",
	}, verr.Fields)
	assert.Contains(t, err.Error(), "documents[1].id: duplicates documents[0]; documents[1].text")
}

func TestParseRejectsUnknownStatus(t *testing.T) {
	_, err := Parse([]byte("documents:\n  - id: 1\n    text: cat\n    status: archived\n"))
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestPopulateStopsOnEngineError(t *testing.T) {
	e, err := indexer.NewEngineFromText("", indexer.Options{})
	require.NoError(t, err)
	require.NoError(t, e.AddDocument(7, "taken", document.StatusActual, nil))

	c := &Corpus{Documents: []Document{{ID: 1, Text: "cat"}, {ID: 7, Text: "dog"}, {ID: 8, Text: "bird"}}}
	assert.Error(t, c.Populate(e))
	assert.Equal(t, []int{1, 7}, e.DocumentIDs())
}
