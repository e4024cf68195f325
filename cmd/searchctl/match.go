package main

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/errors"
)

var matchCmd = &cobra.Command{
	Use:   "match [id] [query]",
	Short: "Show which query words a document contains",
	Long: `Prints the status of the document and the plus-words of the query it
contains, in query order. The word list is empty if the document contains any
minus-word.`,
	Args: cobra.ExactArgs(2),
	RunE: runMatch,
}

func init() {
	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return errors.InvalidArgumentf("document id %q is not a number", args[0])
	}
	words, status, err := current.executor.MatchDocument(current.policy, args[1], id)
	if err != nil {
		return err
	}
	cmd.Printf("{ document_id = %d, status = %s, words = [%s] }\n", id, status, strings.Join(words, " "))
	return nil
}
