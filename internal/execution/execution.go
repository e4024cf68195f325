// Package execution selects between single-goroutine and fan-out execution
// of one logical operation and provides the bounded worker pool used by the
// parallel variants.
package execution

import (
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/errors"
)

// Policy chooses how an operation runs.
type Policy int

const (
	// Sequential runs on the calling goroutine with deterministic ordering.
	Sequential Policy = iota
	// Parallel fans the work out over a bounded set of goroutines for the
	// duration of the call.
	Parallel
)

func (p Policy) String() string {
	switch p {
	case Sequential:
		return "sequential"
	case Parallel:
		return "parallel"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

func ParsePolicy(name string) (Policy, error) {
	switch strings.ToLower(name) {
	case "sequential", "seq":
		return Sequential, nil
	case "parallel", "par":
		return Parallel, nil
	default:
		return Sequential, errors.InvalidArgumentf("unknown execution policy %q", name)
	}
}

// Workers resolves a configured worker count; n <= 0 means GOMAXPROCS.
func Workers(n int) int {
	if n <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return n
}

// ForEach calls fn for every item. Under Parallel the slice is split into at
// most workers contiguous chunks, each processed by its own goroutine, and
// ForEach returns once all of them finish. fn must be safe for concurrent use
// under Parallel.
func ForEach[T any](policy Policy, workers int, items []T, fn func(T)) {
	if policy != Parallel || len(items) < 2 {
		for _, item := range items {
			fn(item)
		}
		return
	}
	workers = Workers(workers)
	if workers > len(items) {
		workers = len(items)
	}
	chunk := (len(items) + workers - 1) / workers

	var g errgroup.Group
	for start := 0; start < len(items); start += chunk {
		end := min(start+chunk, len(items))
		part := items[start:end]
		g.Go(func() error {
			for _, item := range part {
				fn(item)
			}
			return nil
		})
	}
	_ = g.Wait()
}

// ForEachIndex is ForEach over the indices [0, n).
func ForEachIndex(policy Policy, workers int, n int, fn func(i int)) {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	ForEach(policy, workers, idx, fn)
}
