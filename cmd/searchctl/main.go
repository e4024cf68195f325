// Command searchctl loads a corpus into an in-process search engine and runs
// searches, document matches, duplicate removal and request replays against
// it.
package main

import (
	"fmt"
	"os"

	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/errors"
)

func main() {
	rootCmd.SetOut(os.Stdout)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(errors.ExitCode(err))
	}
}
