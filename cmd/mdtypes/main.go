// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the mdtypes CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/mdtypes/internal/logging"
	"github.com/pdiddy/mdtypes/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is built in PersistentPreRunE from the log.* settings.
var logger = zap.NewNop()

// rootCmd is the base command for the mdtypes CLI.
var rootCmd = &cobra.Command{
	Use:   "mdtypes",
	Short: "Generate type definition files from a markdown API reference",
	Long: `mdtypes scans a markdown document for interface, enum, and type
declarations written inside list items, and writes one type definition file
per declaration plus an index that re-exports them all.

Optional fields become required fields, references between declarations
become imports from a single shared module path, and every run rebuilds the
output from scratch.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		lc := logConfig()
		l, err := logging.New(lc.Level, lc.JSON)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./mdtypes.yaml or ~/.config/mdtypes/mdtypes.yaml)")
	pf.String("module-path", types.DefaultModulePath, "module path used in generated imports")
	pf.String("ext", types.DefaultExtension, "output file extension, without the leading dot")
	pf.String("index-name", types.DefaultIndexName, "base name of the index file")
	pf.StringSlice("include", nil, "glob patterns a type name must match to be generated")
	pf.StringSlice("exclude", nil, "glob patterns of type names to leave out")
	pf.Bool("skip-string-literals", false, "ignore braces inside quoted literals when balancing declarations")
	pf.String("log-level", "info", "log level: debug, info, warn, or error")
	pf.Bool("log-json", false, "write logs as JSON lines")

	bindFlags(pf, map[string]string{
		"module_path":          "module-path",
		"extension":            "ext",
		"index_name":           "index-name",
		"include":              "include",
		"exclude":              "exclude",
		"skip_string_literals": "skip-string-literals",
		"log.level":            "log-level",
		"log.json":             "log-json",
	})
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("mdtypes")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "mdtypes"))
		}
	}

	viper.SetEnvPrefix("MDTYPES")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if hint := errors.FlattenHints(err); hint != "" {
			fmt.Fprintln(os.Stderr, "hint:", hint)
		}
		os.Exit(1)
	}
}
