// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/pdiddy/mdtypes/internal/pipeline"
)

var generateCmd = &cobra.Command{
	Use:   "generate <input.md> <outputDir>",
	Short: "Write one type file per declaration plus an index",
	Long: `Generate reads the markdown document, extracts every interface, enum,
and type declaration found in a list item, and writes <Name>.<ext> for each
unique name plus an index file re-exporting all of them.

Existing files with the same names are overwritten. Use --prune to also
remove files left over from earlier runs.`,
	Args: cobra.ExactArgs(2),
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	bindFlags(cmd.Flags(), map[string]string{"prune": "prune"})
	cmd.SilenceUsage = true

	summary, err := pipeline.Run(cmd.Context(), generatorConfig(), args[0], args[1], logger)
	if errors.Is(err, pipeline.ErrNoDeclarations) {
		// Warned by the pipeline; nothing to write is not a failure.
		return nil
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Generated %d type file(s) in %s\n", len(summary.Written), args[1])
	if summary.HasWarnings() {
		fmt.Fprintf(out, "Skipped %d duplicate(s): %v\n", len(summary.Skipped), summary.Skipped)
	}
	if len(summary.Filtered) > 0 {
		fmt.Fprintf(out, "Filtered out %d type(s)\n", len(summary.Filtered))
	}
	if len(summary.Pruned) > 0 {
		fmt.Fprintf(out, "Pruned %d stale file(s)\n", len(summary.Pruned))
	}
	return nil
}

func init() {
	generateCmd.Flags().Bool("prune", false, "delete files with the output extension that this run did not write")

	rootCmd.AddCommand(generateCmd)
}
