package paginator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/document"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/errors"
)

func TestPaginate(t *testing.T) {
	tests := []struct {
		name     string
		items    []int
		pageSize int
		want     [][]int
	}{
		{"even split", []int{1, 2, 3, 4}, 2, [][]int{{1, 2}, {3, 4}}},
		{"short last page", []int{1, 2, 3, 4, 5}, 2, [][]int{{1, 2}, {3, 4}, {5}}},
		{"single page", []int{1, 2}, 10, [][]int{{1, 2}}},
		{"empty", nil, 3, [][]int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pages, err := Paginate(tt.items, tt.pageSize)
			require.NoError(t, err)
			got := make([][]int, 0, len(pages))
			for i, p := range pages {
				assert.Equal(t, i+1, p.Number)
				got = append(got, p.Items)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPaginateInvalidPageSize(t *testing.T) {
	for _, size := range []int{0, -2} {
		_, err := Paginate([]int{1}, size)
		assert.ErrorIs(t, err, errors.ErrInvalidArgument)
	}
}

func TestPageString(t *testing.T) {
	docs := []document.Document{
		{ID: 2, Relevance: 0.5, Rating: 3},
		{ID: 4, Relevance: 0.173287, Rating: -1},
		{ID: 5, Relevance: 0, Rating: 0},
	}
	pages, err := Paginate(docs, 2)
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t,
		"{ document_id = 2, relevance = 0.5, rating = 3 }{ document_id = 4, relevance = 0.173287, rating = -1 }",
		pages[0].String())
	assert.Equal(t, "{ document_id = 5, relevance = 0, rating = 0 }", pages[1].String())
	assert.Equal(t, 1, pages[1].Len())
}

func TestPageDoesNotAliasNextPage(t *testing.T) {
	items := []int{1, 2, 3, 4}
	pages, err := Paginate(items, 2)
	require.NoError(t, err)
	first := append(pages[0].Items, 99)
	assert.Equal(t, []int{1, 2, 99}, first)
	assert.Equal(t, []int{3, 4}, pages[1].Items)
}
