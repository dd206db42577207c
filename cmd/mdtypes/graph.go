// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/pdiddy/mdtypes/internal/depgraph"
)

var graphCmd = &cobra.Command{
	Use:   "graph <input.md>",
	Short: "Print the references between declarations",
	Long: `Graph renders the document in memory and prints which types import
which, any groups of types that reference each other in a loop, and an order
that lists every type after the types it imports.`,
	Args: cobra.ExactArgs(1),
	RunE: runGraph,
}

// graphReport is the --json output of graph.
type graphReport struct {
	Edges  []depgraph.Edge `json:"edges"`
	Cycles [][]string      `json:"cycles"`
	Order  []string        `json:"order,omitempty"`
}

func runGraph(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	res, err := renderInput(cmd.Context(), generatorConfig(), args[0])
	if err != nil {
		return err
	}

	dg, err := depgraph.Build(res.Files)
	if err != nil {
		return err
	}
	cycles, err := dg.Cycles()
	if err != nil {
		return err
	}
	order, err := dg.Order()
	if err != nil && !errors.Is(err, depgraph.ErrCyclic) {
		return err
	}

	report := graphReport{Edges: dg.Edges(), Cycles: cycles, Order: order}
	if report.Edges == nil {
		report.Edges = []depgraph.Edge{}
	}
	if report.Cycles == nil {
		report.Cycles = [][]string{}
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	printGraph(cmd.OutOrStdout(), report)
	return nil
}

func printGraph(w io.Writer, r graphReport) {
	fmt.Fprintf(w, "References (%d):\n", len(r.Edges))
	for _, e := range r.Edges {
		fmt.Fprintf(w, "  %s -> %s\n", e.From, e.To)
	}

	if len(r.Cycles) > 0 {
		fmt.Fprintf(w, "\nCycles (%d):\n", len(r.Cycles))
		for _, c := range r.Cycles {
			fmt.Fprintf(w, "  %s\n", strings.Join(c, " <-> "))
		}
		fmt.Fprintln(w, "\nNo dependency order: references contain a cycle.")
		return
	}

	fmt.Fprintln(w, "\nOrder:")
	for i, name := range r.Order {
		fmt.Fprintf(w, "  %3d  %s\n", i+1, name)
	}
}

func init() {
	graphCmd.Flags().Bool("json", false, "output the graph as JSON")

	rootCmd.AddCommand(graphCmd)
}
