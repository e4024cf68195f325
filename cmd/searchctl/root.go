package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/corpus"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/execution"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/searcher/cache"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/searcher/executor"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/health"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/middleware"
	pkgredis "github.com/Adithya-Monish-Kumar-K/search-server/pkg/redis"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/resilience"
)

const shutdownTimeout = 5 * time.Second

var (
	configPath string
	corpusPath string
	policyName string
	logLevel   string
)

// app is the state shared by all subcommands for one invocation.
type app struct {
	cfg      *config.Config
	policy   execution.Policy
	engine   *indexer.Engine
	executor *executor.Executor
	cache    *cache.QueryCache
	metrics  *metrics.Metrics
	health   *health.Checker
	routes   map[string]http.Handler
	closers  []func(context.Context) error
}

var current *app

var rootCmd = &cobra.Command{
	Use:   "searchctl",
	Short: "Query an in-process TF-IDF search engine",
	Long: `searchctl indexes the documents of a YAML corpus file in memory and
answers queries against them. Plus-words rank documents by TF-IDF relevance,
minus-words (-word) exclude every document that contains them.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return teardown(cmd.Context())
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "path to config file")
	flags.StringVar(&corpusPath, "corpus", "", "path to corpus YAML file")
	flags.StringVar(&policyName, "policy", "sequential", "execution policy: sequential or parallel")
	flags.StringVar(&logLevel, "log-level", "", "override logging level (debug, info, warn, error)")
}

func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)

	policy, err := execution.ParsePolicy(policyName)
	if err != nil {
		return err
	}
	if corpusPath == "" {
		return errors.InvalidArgumentf("--corpus is required")
	}
	docs, err := corpus.Load(corpusPath)
	if err != nil {
		return fmt.Errorf("%w: %w", errors.ErrInvalidArgument, err)
	}

	a := &app{cfg: cfg, policy: policy, routes: make(map[string]http.Handler)}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logger.WithCommand(ctx, cmd.Name())
	cmd.SetContext(ctx)

	if cfg.Metrics.Enabled {
		a.metrics = metrics.New(nil)
	}
	stopWords := append(append([]string(nil), cfg.Search.StopWords...), docs.StopWords...)
	a.engine, err = indexer.NewEngineFromWords(stopWords, indexer.Options{
		Workers: cfg.Search.Workers,
		Metrics: a.metrics,
	})
	if err != nil {
		return err
	}
	if err := docs.Populate(a.engine); err != nil {
		return err
	}
	a.executor = executor.New(a.engine, cfg.Search, a.metrics)
	a.health = health.NewChecker()
	a.health.Register("engine", a.checkEngine)

	if cfg.Redis.Enabled {
		client, err := pkgredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			logger.FromContext(ctx).Warn("redis unavailable, search caching disabled", "error", err)
		} else {
			a.cache = cache.New(client, cfg.Redis, a.metrics)
			a.health.Register("redis", a.checkCache)
			a.closers = append(a.closers, func(context.Context) error { return client.Close() })
			logger.FromContext(ctx).Info("search cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.CacheTTL)
		}
	}

	logger.FromContext(ctx).Debug("corpus loaded",
		"path", corpusPath,
		"documents", a.engine.DocumentCount(),
		"words", a.engine.TermCount(),
		"policy", policy,
	)
	current = a
	return nil
}

// serveMetrics starts the metrics server if enabled. Commands call it after
// registering their extra routes.
func (a *app) serveMetrics(ctx context.Context) error {
	if !a.cfg.Metrics.Enabled {
		return nil
	}
	a.routes["/healthz"] = a.health.LiveHandler()
	a.routes["/readyz"] = a.health.ReadyHandler(a.cfg.Metrics.RequestTimeout)
	routes := make(map[string]http.Handler, len(a.routes))
	for pattern, h := range a.routes {
		routes[pattern] = middleware.Chain(h,
			middleware.Metrics(a.metrics),
			middleware.Timeout(a.cfg.Metrics.RequestTimeout),
		)
	}
	server, err := metrics.StartServer(a.cfg.Metrics.Port, routes)
	if err != nil {
		return err
	}
	a.closers = append(a.closers, server.Shutdown)
	logger.FromContext(ctx).Info("metrics enabled", "addr", server.Addr())
	return nil
}

func (a *app) checkEngine(context.Context) health.ComponentHealth {
	n := a.engine.DocumentCount()
	if n == 0 {
		return health.ComponentHealth{Status: health.StatusDegraded, Message: "no documents indexed"}
	}
	return health.ComponentHealth{Status: health.StatusUp, Message: fmt.Sprintf("%d documents", n)}
}

// checkCache never reports down: searches fall back to the engine.
func (a *app) checkCache(ctx context.Context) health.ComponentHealth {
	if state := a.cache.BreakerState(); state != resilience.Closed {
		return health.ComponentHealth{Status: health.StatusDegraded, Message: "breaker " + state.String()}
	}
	if err := a.cache.Ping(ctx); err != nil {
		return health.ComponentHealth{Status: health.StatusDegraded, Message: err.Error()}
	}
	return health.ComponentHealth{Status: health.StatusUp}
}

// waitForSignal blocks until SIGINT or SIGTERM when the metrics server is
// running, so the final values can still be scraped.
func (a *app) waitForSignal(ctx context.Context) {
	if !a.cfg.Metrics.Enabled {
		return
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger.FromContext(ctx).Info("serving metrics until interrupted")
	<-ctx.Done()
}

func teardown(ctx context.Context) error {
	if current == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	var firstErr error
	for i := len(current.closers) - 1; i >= 0; i-- {
		if err := current.closers[i](ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	current = nil
	return firstErr
}
