package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/toeic-corpus/internal/app"
)

var (
	generateConfig string
	generatePhases []string
	generateDryRun bool
	generateTarget int
	generateOut    string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Run the generation pipeline",
	Long: `Run the generation pipeline: assemble, derive, synthesize, publish.

assemble and synthesize always run. --phase selects which optional phases
(derive, publish) run as well; without it every phase runs.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateConfig, "config", "c", "", "Generator config file (default: GEN_* environment only)")
	generateCmd.Flags().StringSliceVarP(&generatePhases, "phase", "p", nil, "Phases to run (assemble, derive, synthesize, publish)")
	generateCmd.Flags().BoolVar(&generateDryRun, "dry-run", false, "Generate without publishing")
	generateCmd.Flags().IntVar(&generateTarget, "target", 0, "Override target_total")
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "", "Override output_path")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	opts := app.GenerateOptions{
		ConfigPath: generateConfig,
		Phases:     generatePhases,
		DryRun:     generateDryRun,
		OutputPath: generateOut,
	}
	if cmd.Flags().Changed("target") {
		opts.Target = &generateTarget
	}

	doc, err := app.Generate(cmd.Context(), opts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "vocab: %d, sentences: %d, questions: %d\n",
		len(doc.VocabItems), len(doc.Sentences), len(doc.Questions))
	return nil
}
