// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/pdiddy/mdtypes/internal/catalog"
	"github.com/pdiddy/mdtypes/internal/httputil"
	"github.com/pdiddy/mdtypes/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the declaration catalog (store, query, export)",
	Long: `Catalog keeps a local SQLite index of the declarations found in a
document, with their kind, source line, output path, and references. Use
subcommands to rebuild it, query it, or export it.`,
}

// --- store subcommand ---

var catalogStoreCmd = &cobra.Command{
	Use:   "store <input.md>",
	Short: "Rebuild the catalog from a markdown document",
	Long: `Store renders the document in memory and replaces the catalog with the
declarations it produced. Duplicates and filtered names are left out, exactly
as generate would.`,
	Args: cobra.ExactArgs(1),
	RunE: runCatalogStore,
}

func runCatalogStore(cmd *cobra.Command, args []string) error {
	bindCatalogFlags(cmd)
	cmd.SilenceUsage = true

	res, err := renderInput(cmd.Context(), generatorConfig(), args[0])
	if err != nil {
		return err
	}
	entries, err := catalog.NewEntries(res.Declarations, res.Files)
	if err != nil {
		return err
	}

	store, err := catalog.NewStore(catalogConfig(), logger)
	if err != nil {
		return err
	}
	defer store.Close()

	source := args[0]
	if !httputil.IsURL(source) {
		if abs, err := filepath.Abs(source); err == nil {
			source = abs
		}
	}
	summary, err := store.Ingest(cmd.Context(), source, entries)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Stored %d declaration(s) and %d reference(s)\n",
		summary.Declarations, summary.References)
	return nil
}

// --- query subcommand ---

var catalogQueryCmd = &cobra.Command{
	Use:   "query [term]",
	Short: "Search the catalog by name, code, kind, or reference",
	Long: `Query matches the term as a case-insensitive substring of declaration
names and code. Combine it with --kind to restrict the declaration kind and
--references to list the types that import a given name.`,
	RunE: runCatalogQuery,
}

func runCatalogQuery(cmd *cobra.Command, args []string) error {
	bindCatalogFlags(cmd)
	cmd.SilenceUsage = true

	opts, err := queryOptsFromFlags(cmd, args)
	if err != nil {
		return err
	}
	if opts.IsEmpty() {
		return errors.WithHint(
			errors.New("query or filter required"),
			"provide a search term, --kind, or --references",
		)
	}

	store, err := catalog.NewStore(catalogConfig(), logger)
	if err != nil {
		return err
	}
	defer store.Close()

	results, err := store.Retrieve(cmd.Context(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatQueryOutput(cmd.OutOrStdout(), results, jsonOutput)
}

func formatQueryOutput(w io.Writer, results []catalog.Entry, jsonOutput bool) error {
	if jsonOutput {
		if results == nil {
			results = []catalog.Entry{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return nil
	}

	fmt.Fprintf(w, "%-4s  %-9s  %-30s  %-5s  %s\n", "Pos", "Kind", "Name", "Line", "References")
	fmt.Fprintln(w, strings.Repeat("-", 80))

	for _, e := range results {
		name := e.Name
		if len(name) > 30 {
			name = name[:27] + "..."
		}
		refs := strings.Join(e.References, ", ")
		if len(refs) > 40 {
			refs = refs[:37] + "..."
		}
		fmt.Fprintf(w, "%-4d  %-9s  %-30s  %-5d  %s\n", e.Position, e.Kind, name, e.Line, refs)
	}

	fmt.Fprintf(w, "\n%d results\n", len(results))
	return nil
}

// --- export subcommand ---

var catalogExportCmd = &cobra.Command{
	Use:   "export [term]",
	Short: "Export the catalog to YAML or JSON",
	Long: `Export writes the full catalog (or a filtered subset) to
<catalog-dir>/export.yaml or export.json. Supports the same filters as query.`,
	RunE: runCatalogExport,
}

func runCatalogExport(cmd *cobra.Command, args []string) error {
	bindCatalogFlags(cmd)
	cmd.SilenceUsage = true
	format, _ := cmd.Flags().GetString("format")

	opts, err := queryOptsFromFlags(cmd, args)
	if err != nil {
		return err
	}

	store, err := catalog.NewStore(catalogConfig(), logger)
	if err != nil {
		return err
	}
	defer store.Close()

	var path string
	switch format {
	case "yaml", "":
		path, err = store.ExportYAML(cmd.Context(), opts)
	case "json":
		path, err = store.ExportJSON(cmd.Context(), opts)
	default:
		return errors.WithHint(errors.Newf("unsupported format %q", format), "use yaml or json")
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Exported to", path)
	return nil
}

// --- shared helpers ---

func bindCatalogFlags(cmd *cobra.Command) {
	bindFlags(cmd.Flags(), map[string]string{
		"catalog.dir":         "catalog-dir",
		"catalog.max_results": "max-results",
	})
}

func queryOptsFromFlags(cmd *cobra.Command, args []string) (catalog.QueryOptions, error) {
	kind, _ := cmd.Flags().GetString("kind")
	refs, _ := cmd.Flags().GetString("references")

	opts := catalog.QueryOptions{
		Query:      strings.Join(args, " "),
		References: refs,
	}
	switch k := types.Kind(kind); k {
	case "":
	case types.KindInterface, types.KindEnum, types.KindType:
		opts.Kind = k
	default:
		return opts, errors.WithHint(errors.Newf("unknown kind %q", kind), "use interface, enum, or type")
	}
	return opts, nil
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	catalogCmd.PersistentFlags().String("catalog-dir", types.DefaultCatalogDir, "directory holding catalog.db and exports")
	catalogCmd.PersistentFlags().Int("max-results", types.DefaultMaxResults, "maximum number of query results")

	for _, c := range []*cobra.Command{catalogQueryCmd, catalogExportCmd} {
		c.Flags().String("kind", "", "filter by kind: interface, enum, or type")
		c.Flags().String("references", "", "keep only types that import this name")
	}
	catalogQueryCmd.Flags().Bool("json", false, "output results as JSON")
	catalogExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	catalogCmd.AddCommand(catalogStoreCmd)
	catalogCmd.AddCommand(catalogQueryCmd)
	catalogCmd.AddCommand(catalogExportCmd)

	rootCmd.AddCommand(catalogCmd)
}
