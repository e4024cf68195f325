// Package cache keeps FindTopDocuments results in Redis. Keys include the
// engine generation, so any add or remove makes earlier entries unreachable
// and they age out through their TTL.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync/atomic"

	farmhash "github.com/leemcloughlin/gofarmhash"
	"golang.org/x/sync/singleflight"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/document"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/execution"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/searcher/executor"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/searcher/parser"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/metrics"
	pkgredis "github.com/Adithya-Monish-Kumar-K/search-server/pkg/redis"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/resilience"
)

const keyPrefix = "search:"

// Finder is the part of the executor the cache fronts.
type Finder interface {
	FindTopDocumentsByStatus(policy execution.Policy, raw string, status document.Status) ([]document.Document, error)
	Generation() uint64
	MaxResults() int
}

var _ Finder = (*executor.Executor)(nil)

type QueryCache struct {
	client  *pkgredis.Client
	cfg     config.RedisConfig
	group   singleflight.Group
	breaker *resilience.Breaker
	metrics *metrics.Metrics
	logger  *slog.Logger
	hits    atomic.Int64
	misses  atomic.Int64
}

func New(client *pkgredis.Client, cfg config.RedisConfig, m *metrics.Metrics) *QueryCache {
	return &QueryCache{
		client:  client,
		cfg:     cfg,
		breaker: resilience.NewBreaker("redis", cfg.BreakerThreshold, cfg.BreakerReset),
		metrics: m,
		logger:  logger.WithComponent("query-cache"),
	}
}

// Find returns the cached result for (raw, status) or computes and stores it.
// The bool reports a cache hit. Redis failures are logged and the query is
// answered by f directly, and while the breaker is open Redis is skipped.
// Errors from f are returned and never cached.
func (c *QueryCache) Find(ctx context.Context, f Finder, policy execution.Policy, raw string, status document.Status) (*executor.SearchResult, bool, error) {
	q, err := parser.Parse(raw, nil)
	if err != nil {
		return nil, false, err
	}
	key := buildKey(q, status, f.MaxResults(), f.Generation())

	if result, ok := c.get(ctx, key); ok {
		result.Query = raw
		return result, true, nil
	}
	val, err, _ := c.group.Do(key, func() (any, error) {
		if result, ok := c.get(ctx, key); ok {
			return result, nil
		}
		docs, err := f.FindTopDocumentsByStatus(policy, raw, status)
		if err != nil {
			return nil, err
		}
		result := &executor.SearchResult{Query: raw, Status: status, Results: docs}
		err = c.breaker.Do(func() error {
			return c.client.SetJSON(ctx, key, result, c.cfg.CacheTTL)
		})
		if err != nil && !errors.Is(err, resilience.ErrOpen) {
			c.logger.Error("cache set failed", "key", key, "error", err)
		}
		return result, nil
	})
	if err != nil {
		return nil, false, err
	}
	// the shared result may have been filled by an equivalent query
	result := *val.(*executor.SearchResult)
	result.Query = raw
	return &result, false, nil
}

func (c *QueryCache) get(ctx context.Context, key string) (*executor.SearchResult, bool) {
	var result executor.SearchResult
	var found bool
	err := c.breaker.Do(func() error {
		var err error
		found, err = c.client.GetJSON(ctx, key, &result)
		return err
	})
	if err != nil && !errors.Is(err, resilience.ErrOpen) {
		c.logger.Error("cache get failed", "key", key, "error", err)
	}
	if !found || err != nil {
		c.misses.Add(1)
		c.metrics.CacheLookup(false)
		return nil, false
	}
	c.hits.Add(1)
	c.metrics.CacheLookup(true)
	c.logger.Debug("cache hit", "key", key)
	return &result, true
}

// Invalidate drops every cached result.
func (c *QueryCache) Invalidate(ctx context.Context) error {
	deleted, err := c.client.FlushByPattern(ctx, keyPrefix+"*")
	if err != nil {
		return fmt.Errorf("invalidating cache: %w", err)
	}
	c.logger.Info("cache invalidate", "keys_deleted", deleted)
	return nil
}

// Ping checks the Redis connection directly, bypassing the breaker.
func (c *QueryCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx)
}

func (c *QueryCache) BreakerState() resilience.State {
	return c.breaker.State()
}

func (c *QueryCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// buildKey hashes the query in a form where word order and repeats do not
// matter, since neither changes the ranked result. Every word is length
// prefixed, so no word can be mistaken for a separator.
func buildKey(q *parser.Query, status document.Status, maxResults int, generation uint64) string {
	var b strings.Builder
	writeWords(&b, "plus", q.PlusWords)
	writeWords(&b, "minus", q.MinusWords)
	fmt.Fprintf(&b, "status=%d;max=%d;gen=%d", status, maxResults, generation)
	return fmt.Sprintf("%s%016x", keyPrefix, farmhash.Hash64([]byte(b.String())))
}

func writeWords(b *strings.Builder, section string, words []string) {
	sorted := append([]string(nil), words...)
	sort.Strings(sorted)
	fmt.Fprintf(b, "%s[%d]", section, len(sorted))
	for _, w := range sorted {
		fmt.Fprintf(b, "%d:%s", len(w), w)
	}
	b.WriteByte(';')
}
