// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/pdiddy/mdtypes/internal/httputil"
	"github.com/pdiddy/mdtypes/internal/pipeline"
	"github.com/pdiddy/mdtypes/internal/watch"
	"github.com/pdiddy/mdtypes/pkg/types"
)

var watchCmd = &cobra.Command{
	Use:   "watch <input.md> <outputDir>",
	Short: "Regenerate the output whenever the document changes",
	Long: `Watch runs generate once, then again after every change to the input
document once it has been quiet for the debounce period. Each run is a full
rebuild. Failed runs are logged and watching continues until interrupted.`,
	Args: cobra.ExactArgs(2),
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	bindFlags(cmd.Flags(), map[string]string{
		"prune":          "prune",
		"watch.debounce": "debounce",
	})
	cmd.SilenceUsage = true

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	input, outDir := args[0], args[1]
	if httputil.IsURL(input) {
		return errors.WithHint(errors.Newf("cannot watch %s", input), "watch needs a local file; use generate for URLs")
	}
	run := func(ctx context.Context) error {
		_, err := pipeline.Run(ctx, generatorConfig(), input, outDir, logger)
		return err
	}

	w, err := watch.New(input, watchConfig(), run, logger)
	if err != nil {
		return err
	}
	return w.Run(ctx)
}

func init() {
	watchCmd.Flags().Bool("prune", false, "delete stale files after each run")
	watchCmd.Flags().Duration("debounce", types.DefaultDebounce, "quiet period before regenerating")

	rootCmd.AddCommand(watchCmd)
}
