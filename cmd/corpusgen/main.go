// Command corpusgen builds the TOEIC vocabulary corpus: it assembles the
// source word tables, derives word forms up to the target size, synthesizes
// example sentences and cloze questions, and publishes one JSON document
// (plus, when a database is configured, a PostgreSQL copy).
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "corpusgen",
	Short: "Generate the TOEIC vocabulary corpus",
	Long: `corpusgen turns curated word tables into a bilingual study corpus.

Process settings (log, database) come from CONFIG_PATH or ./config.yaml and
the environment. Generator settings come from the file passed with --config
and GEN_* environment variables.

Examples:
  corpusgen generate --config generator.yaml
  corpusgen generate --config generator.yaml --dry-run
  corpusgen generate --config generator.yaml --phase derive --target 5000
  corpusgen migrate
  corpusgen version`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
