// Package paginator splits result lists into fixed-size pages.
package paginator

import (
	"fmt"
	"strings"

	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/errors"
)

// Page is a window onto the paginated slice; it shares its backing array.
type Page[T any] struct {
	Number int
	Items  []T
}

func (p Page[T]) Len() int {
	return len(p.Items)
}

// String concatenates the items' default formats.
func (p Page[T]) String() string {
	var b strings.Builder
	for _, item := range p.Items {
		fmt.Fprint(&b, item)
	}
	return b.String()
}

// Paginate cuts items into pages of pageSize; only the last page may be
// shorter. An empty slice yields no pages.
func Paginate[T any](items []T, pageSize int) ([]Page[T], error) {
	if pageSize < 1 {
		return nil, errors.InvalidArgumentf("page size %d must be positive", pageSize)
	}
	pages := make([]Page[T], 0, (len(items)+pageSize-1)/pageSize)
	for start := 0; start < len(items); start += pageSize {
		end := min(start+pageSize, len(items))
		pages = append(pages, Page[T]{
			Number: len(pages) + 1,
			Items:  items[start:end:end],
		})
	}
	return pages, nil
}
