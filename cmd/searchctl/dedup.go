package main

import (
	"github.com/spf13/cobra"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/dedup"
)

var dedupCmd = &cobra.Command{
	Use:   "dedup",
	Short: "Remove documents with repeated word sets",
	Long: `Removes every document whose set of indexed words equals that of a
document with a lower id, then reports what is left.`,
	Args: cobra.NoArgs,
	RunE: runDedup,
}

func init() {
	rootCmd.AddCommand(dedupCmd)
}

func runDedup(cmd *cobra.Command, args []string) error {
	a := current
	removed := dedup.New(a.engine, a.metrics).Remove(a.policy)
	for _, id := range removed {
		cmd.Printf("Found duplicate document %d\n", id)
	}
	cmd.Printf("Documents after dedup: %d\n", a.engine.DocumentCount())
	return nil
}
