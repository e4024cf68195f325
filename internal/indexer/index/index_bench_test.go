package index

import (
	"fmt"
	"strings"
	"testing"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/execution"
)

var benchWords = strings.Fields("this is a benchmark document with several terms for testing the indexing performance of our memory index")

// BenchmarkInvertedIndexAdd measures per-document insert throughput.
func BenchmarkInvertedIndexAdd(b *testing.B) {
	x := NewInvertedIndex()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x.Add(i, benchWords)
	}
}

// BenchmarkInvertedIndexSearch measures single-word lookup over 10 000
// documents.
func BenchmarkInvertedIndexSearch(b *testing.B) {
	x := NewInvertedIndex()
	for i := 0; i < 10000; i++ {
		x.Add(i, benchWords)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = x.Search("benchmark")
	}
}

// BenchmarkInvertedIndexRemove compares removal policies on wide documents.
func BenchmarkInvertedIndexRemove(b *testing.B) {
	words := make([]string, 2000)
	for i := range words {
		words[i] = fmt.Sprintf("word%d", i)
	}
	for _, policy := range []execution.Policy{execution.Sequential, execution.Parallel} {
		b.Run(policy.String(), func(b *testing.B) {
			x := NewInvertedIndex()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				b.StopTimer()
				x.Add(i, words)
				b.StartTimer()
				x.Remove(policy, 0, i)
			}
		})
	}
}
