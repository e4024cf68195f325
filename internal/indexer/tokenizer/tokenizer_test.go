package tokenizer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Adithya-Monish-Kumar-K/search-server/pkg/errors"
)

func TestSplitIntoWords(t *testing.T) {
	assert.Equal(t, []string{"cat", "in", "the", "city"}, SplitIntoWords("  cat in   the city "))
	assert.Empty(t, SplitIntoWords(""))
	assert.Empty(t, SplitIntoWords("     "))
	assert.Equal(t, []string{"белый", "кот"}, SplitIntoWords("белый кот"))
	assert.Equal(t, []string{"cat\u00a0city", "dog\u0085park"}, SplitIntoWords("cat\u00a0city dog\u0085park"))
}

func TestIsValidWord(t *testing.T) {
	assert.True(t, IsValidWord("cat"))
	assert.True(t, IsValidWord("ухоженный"))
	assert.True(t, IsValidWord(""))
	assert.False(t, IsValidWord("ca\x12t"))
	assert.False(t, IsValidWord("tab\there"))
}

func TestNewStopWords(t *testing.T) {
	sw, err := NewStopWords([]string{"in", "", "the", "in"})
	require.NoError(t, err)
	assert.Equal(t, 2, sw.Len())
	assert.True(t, sw.Contains("in"))
	assert.False(t, sw.Contains(""))
	assert.Equal(t, []string{"in", "the"}, sw.Words())
}

func TestNewStopWordsRejectsControlCharacters(t *testing.T) {
	_, err := NewStopWords([]string{"in", "th\x01e"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidArgument))
}

func TestParseStopWords(t *testing.T) {
	sw, err := ParseStopWords("и в на")
	require.NoError(t, err)
	assert.Equal(t, 3, sw.Len())
	assert.True(t, sw.Contains("на"))
}

func TestNilStopWordsIsEmpty(t *testing.T) {
	var sw *StopWords
	assert.False(t, sw.Contains("in"))
	assert.Zero(t, sw.Len())
	assert.Nil(t, sw.Words())
	assert.Equal(t, []string{"cat", "in"}, sw.SplitNoStop("cat in"))
}

func TestSplitNoStop(t *testing.T) {
	sw, err := ParseStopWords("in the")
	require.NoError(t, err)
	assert.Equal(t, []string{"cat", "city"}, sw.SplitNoStop("cat in the city"))
	assert.Empty(t, sw.SplitNoStop("in the"))
}
