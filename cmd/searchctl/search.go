package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/document"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/searcher/executor"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/searcher/paginator"
)

var (
	searchStatus   string
	searchJSON     bool
	searchPageSize int
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search indexed documents",
	Long: `Ranks documents with the given status by TF-IDF relevance and prints
the best matches a page at a time. A query word prefixed with "-" excludes
every document containing it.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchStatus, "status", "actual", "document status to search: actual, irrelevant, banned, removed")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().IntVar(&searchPageSize, "page-size", 0, "results per page (default from config)")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	a := current
	status, err := document.ParseStatus(searchStatus)
	if err != nil {
		return err
	}

	var result *executor.SearchResult
	if a.cache != nil {
		var hit bool
		result, hit, err = a.cache.Find(cmd.Context(), a.executor, a.policy, args[0], status)
		if err != nil {
			return err
		}
		if hit {
			cmd.PrintErrln("(cached)")
		}
	} else {
		docs, err := a.executor.FindTopDocumentsByStatus(a.policy, args[0], status)
		if err != nil {
			return err
		}
		result = &executor.SearchResult{Query: args[0], Status: status, Results: docs}
	}

	if searchJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}
	return printPages(cmd, result.Results, searchPageSize)
}

func printPages(cmd *cobra.Command, docs []document.Document, pageSize int) error {
	if len(docs) == 0 {
		cmd.Println("No results found.")
		return nil
	}
	if pageSize == 0 {
		pageSize = current.cfg.Pagination.PageSize
	}
	pages, err := paginator.Paginate(docs, pageSize)
	if err != nil {
		return err
	}
	for i, page := range pages {
		if i > 0 {
			cmd.Println("Page break")
		}
		cmd.Println(page.String())
	}
	return nil
}
