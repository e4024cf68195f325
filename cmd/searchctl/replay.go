package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/analytics"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/logger"
)

var (
	replayJSON  bool
	replayServe bool
)

var replayCmd = &cobra.Command{
	Use:   "replay [queries-file]",
	Short: "Replay a query log through the request tracker",
	Long: `Runs every non-blank line of the file as an ACTUAL-status search and
reports how many of the most recent requests returned nothing. Queries that
fail to parse are logged and skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&replayJSON, "json", false, "output tracker stats as JSON")
	replayCmd.Flags().BoolVar(&replayServe, "serve", false, "keep serving /metrics and /stats after the replay until interrupted")
	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	a := current
	ctx := cmd.Context()
	log := logger.FromContext(ctx)

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening query file: %w", err)
	}
	defer f.Close()

	queue := analytics.NewRequestQueue(a.executor, a.cfg.Requests.Window, a.policy, a.metrics)
	a.routes["/stats"] = analytics.NewHandler(queue)
	if err := a.serveMetrics(ctx); err != nil {
		return err
	}

	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}
		if _, err := queue.AddActualFindRequest(raw); err != nil {
			log.Warn("skipping query", "line", line, "error", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading query file: %w", err)
	}

	stats := queue.Stats()
	if replayJSON {
		data, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal stats: %w", err)
		}
		cmd.Println(string(data))
	} else {
		cmd.Printf("Requests: %d (window %d)\n", stats.Requests, stats.Window)
		cmd.Printf("Total empty requests: %d\n", stats.NoResultRequests)
	}

	if replayServe {
		a.waitForSignal(ctx)
	}
	return nil
}
