// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/mdtypes/pkg/types"
)

// envKeyReplacer maps nested keys to env names: watch.debounce → MDTYPES_WATCH_DEBOUNCE.
var envKeyReplacer = strings.NewReplacer(".", "_", "-", "_")

// bindFlags binds config keys to flags in fs. Flags set on the command line
// win over env and config file values.
func bindFlags(fs *pflag.FlagSet, keys map[string]string) {
	for key, flag := range keys {
		if f := fs.Lookup(flag); f != nil {
			_ = viper.BindPFlag(key, f)
		}
	}
}

// generatorConfig reads the pipeline settings from viper.
func generatorConfig() types.GeneratorConfig {
	return types.GeneratorConfig{
		ModulePath:         viper.GetString("module_path"),
		Extension:          viper.GetString("extension"),
		IndexName:          viper.GetString("index_name"),
		Include:            viper.GetStringSlice("include"),
		Exclude:            viper.GetStringSlice("exclude"),
		SkipStringLiterals: viper.GetBool("skip_string_literals"),
		Prune:              viper.GetBool("prune"),
	}
}

func logConfig() types.LogConfig {
	return types.LogConfig{
		Level: viper.GetString("log.level"),
		JSON:  viper.GetBool("log.json"),
	}
}

func watchConfig() types.WatchConfig {
	return types.WatchConfig{Debounce: viper.GetDuration("watch.debounce")}
}

func catalogConfig() types.CatalogConfig {
	return types.CatalogConfig{
		Dir:        viper.GetString("catalog.dir"),
		MaxResults: viper.GetInt("catalog.max_results"),
	}
}
