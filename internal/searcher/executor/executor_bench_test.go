package executor

import (
	"fmt"
	"testing"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/document"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/execution"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/config"
)

func benchExecutor(b *testing.B, numDocs int) *Executor {
	b.Helper()
	e, err := indexer.NewEngineFromText("and in at the", indexer.Options{})
	if err != nil {
		b.Fatal(err)
	}
	for id := 0; id < numDocs; id++ {
		text := fmt.Sprintf("the doc%d term%d and term%d in term%d at term%d",
			id, id%10, id%37, id%101, id%997)
		if err := e.AddDocument(id, text, document.StatusActual, []int{id % 7}); err != nil {
			b.Fatal(err)
		}
	}
	return New(e, config.SearchConfig{}, nil)
}

// BenchmarkFindTopDocuments compares policies as the corpus grows.
func BenchmarkFindTopDocuments(b *testing.B) {
	for _, numDocs := range []int{1000, 10000} {
		x := benchExecutor(b, numDocs)
		for _, policy := range []execution.Policy{execution.Sequential, execution.Parallel} {
			b.Run(fmt.Sprintf("docs_%d/%s", numDocs, policy), func(b *testing.B) {
				b.ReportAllocs()
				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					if _, err := x.FindTopDocumentsByStatus(policy, "term1 term5 term12 term50 -term3", document.StatusActual); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

// BenchmarkFindTopDocumentsConcurrent measures concurrent search throughput
// under the engine's read lock.
func BenchmarkFindTopDocumentsConcurrent(b *testing.B) {
	x := benchExecutor(b, 10000)
	queries := []string{"term1 term2", "term7 -term3", "term99 term500", "doc42 term8"}
	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			if _, err := x.Search(queries[i%len(queries)]); err != nil {
				b.Error(err)
				return
			}
			i++
		}
	})
}

func BenchmarkMatchDocument(b *testing.B) {
	x := benchExecutor(b, 1000)
	for _, policy := range []execution.Policy{execution.Sequential, execution.Parallel} {
		b.Run(policy.String(), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, _, err := x.MatchDocument(policy, "term1 term2 term3 term4 term5 term6 doc500", 500); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
