package types

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gobwas/glob"
)

const (
	DefaultModulePath = "@"
	DefaultExtension  = "ts"
	DefaultIndexName  = "index"
	DefaultDebounce   = 300 * time.Millisecond
	DefaultCatalogDir = ".mdtypes"
	DefaultMaxResults = 20
)

// GeneratorConfig holds settings for the extraction pipeline.
type GeneratorConfig struct {
	// ModulePath is the module every generated import points at (e.g. "@").
	ModulePath string `json:"module_path" yaml:"module_path"`

	// Extension is the output file extension without the dot (default "ts").
	Extension string `json:"extension" yaml:"extension"`

	// IndexName is the base name of the aggregating index file (default "index").
	IndexName string `json:"index_name" yaml:"index_name"`

	// Include lists glob patterns a type name must match to be written.
	// Empty means every name is included.
	Include []string `json:"include,omitempty" yaml:"include,omitempty"`

	// Exclude lists glob patterns that drop matching type names.
	Exclude []string `json:"exclude,omitempty" yaml:"exclude,omitempty"`

	// SkipStringLiterals ignores braces inside quoted literals while
	// balancing declaration bodies.
	SkipStringLiterals bool `json:"skip_string_literals" yaml:"skip_string_literals"`

	// Prune deletes files with Extension in the output directory that the
	// current run did not produce.
	Prune bool `json:"prune" yaml:"prune"`
}

// DefaultGeneratorConfig returns the configuration used when nothing is set.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		ModulePath: DefaultModulePath,
		Extension:  DefaultExtension,
		IndexName:  DefaultIndexName,
	}
}

// Validate reports the first invalid setting.
func (c GeneratorConfig) Validate() error {
	if strings.TrimSpace(c.ModulePath) == "" {
		return errors.WithHint(errors.New("module path is empty"), "set --module-path or module_path in mdtypes.yaml")
	}
	if c.Extension == "" || strings.HasPrefix(c.Extension, ".") || strings.ContainsAny(c.Extension, "/\\") {
		return errors.Newf("invalid extension %q: use an extension without the leading dot, such as \"ts\"", c.Extension)
	}
	if c.IndexName == "" || strings.ContainsAny(c.IndexName, "/\\") {
		return errors.Newf("invalid index name %q", c.IndexName)
	}
	for _, p := range append(append([]string{}, c.Include...), c.Exclude...) {
		if _, err := glob.Compile(p); err != nil {
			return errors.Wrapf(err, "invalid name pattern %q", p)
		}
	}
	return nil
}

// FileName returns the output file name for a type.
func (c GeneratorConfig) FileName(name string) string {
	return name + "." + c.Extension
}

// IndexFileName returns the output file name of the index.
func (c GeneratorConfig) IndexFileName() string {
	return c.FileName(c.IndexName)
}

// WatchConfig holds settings for watch mode.
type WatchConfig struct {
	// Debounce is the quiet period after the last change before regenerating.
	Debounce time.Duration `json:"debounce" yaml:"debounce"`
}

// CatalogConfig holds settings for the declaration catalog.
type CatalogConfig struct {
	// Dir is the directory holding catalog.db and exports.
	Dir string `json:"dir" yaml:"dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string `json:"level" yaml:"level"`
	JSON  bool   `json:"json" yaml:"json"`
}
