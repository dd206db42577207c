// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/pdiddy/mdtypes/internal/check"
	"github.com/pdiddy/mdtypes/internal/pipeline"
	"github.com/pdiddy/mdtypes/pkg/types"
)

var checkCmd = &cobra.Command{
	Use:   "check <input.md> <outputDir>",
	Short: "Report whether the output directory matches a fresh generation",
	Long: `Check renders the document in memory and compares the result with the
files in the output directory. Nothing is written. It exits non-zero when a
file is missing, differs, or is left over from an earlier run.`,
	Args: cobra.ExactArgs(2),
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cfg := generatorConfig()

	res, err := renderInput(cmd.Context(), cfg, args[0])
	if errors.Is(err, pipeline.ErrNoDeclarations) {
		// generate writes nothing for such a document, so there is nothing to compare.
		fmt.Fprintf(cmd.OutOrStdout(), "%s has no declarations; nothing to check\n", args[0])
		return nil
	}
	if err != nil {
		return err
	}

	expected := make([]check.File, 0, len(res.Files)+1)
	for _, f := range res.Files {
		expected = append(expected, check.File{Path: f.Path, Content: f.Content})
	}
	expected = append(expected, check.File{Path: res.Index.Path, Content: res.Index.Content})

	diff, err := check.Compare(expected, args[1], cfg.Extension)
	if err != nil {
		return err
	}
	if diff.UpToDate() {
		fmt.Fprintf(cmd.OutOrStdout(), "%s is up to date (%d files)\n", args[1], len(expected))
		return nil
	}

	printDiff(cmd.OutOrStdout(), diff)
	return errors.WithHint(
		errors.Newf("%s is out of date", args[1]),
		fmt.Sprintf("run: mdtypes generate %s %s", args[0], args[1]),
	)
}

func printDiff(w io.Writer, diff check.Result) {
	for _, p := range diff.Missing {
		fmt.Fprintf(w, "missing  %s\n", p)
	}
	for _, p := range diff.Changed {
		fmt.Fprintf(w, "changed  %s\n", p)
	}
	for _, p := range diff.Extra {
		fmt.Fprintf(w, "extra    %s\n", p)
	}
}

// renderInput reads path (a file or URL) and renders it in memory.
func renderInput(ctx context.Context, cfg types.GeneratorConfig, path string) (*pipeline.Result, error) {
	markdown, err := pipeline.ReadInput(ctx, path, logger)
	if err != nil {
		return nil, err
	}
	return pipeline.Render(ctx, cfg, markdown, logger)
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
