// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs the type extraction stages in order: extract every
// declaration, deduplicate, filter, then normalize, resolve and write each
// unique entry. Each stage finishes before the next one starts.
package pipeline

import (
	"context"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/pdiddy/mdtypes/internal/extract"
	"github.com/pdiddy/mdtypes/internal/resolve"
	"github.com/pdiddy/mdtypes/internal/writer"
	"github.com/pdiddy/mdtypes/pkg/types"
)

// ErrNoDeclarations is returned when the input yields nothing to write.
// It is not fatal: no files are written.
var ErrNoDeclarations = errors.New("no type declarations found")

// Result is the in-memory output of one run.
type Result struct {
	// Declarations are the unique, filtered entries in first-seen order.
	Declarations []types.ExtractedType

	// Files holds one TypeFile per entry of Declarations, in the same order.
	Files []types.TypeFile

	Index types.IndexFile

	// Extracted is the number of candidates before deduplication.
	Extracted int

	// Skipped are the duplicates dropped by deduplication.
	Skipped []types.ExtractedType

	// Filtered are names dropped by include/exclude patterns.
	Filtered []string
}

// Names returns the written type names in index order.
func (r *Result) Names() []string {
	names := make([]string, len(r.Declarations))
	for i, d := range r.Declarations {
		names[i] = d.Name
	}
	return names
}

// Paths returns every output path, type files first, then the index.
func (r *Result) Paths() []string {
	paths := make([]string, 0, len(r.Files)+1)
	for _, f := range r.Files {
		paths = append(paths, f.Path)
	}
	return append(paths, r.Index.Path)
}

// Summary holds counts from a generation run.
type Summary struct {
	Extracted int
	Written   []string
	Skipped   []string
	Filtered  []string
	Pruned    []string
}

// HasWarnings reports whether any duplicate was skipped.
func (s Summary) HasWarnings() bool {
	return len(s.Skipped) > 0
}

// Render runs every stage except writing and returns the files in memory.
func Render(ctx context.Context, cfg types.GeneratorConfig, markdown string, log *zap.Logger) (*Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	filter, err := newNameFilter(cfg.Include, cfg.Exclude)
	if err != nil {
		return nil, err
	}

	candidates := extract.Extract(markdown, extract.Options{SkipStringLiterals: cfg.SkipStringLiterals})
	log.Debug("extracted declarations", zap.Int("count", len(candidates)))
	if len(candidates) == 0 {
		return nil, ErrNoDeclarations
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	unique, skipped := writer.Dedupe(candidates, log)

	res := &Result{Extracted: len(candidates), Skipped: skipped}
	for _, d := range unique {
		if ok, pattern := filter.allow(d.Name); !ok {
			log.Debug("type filtered out", zap.String("name", d.Name), zap.String("pattern", pattern))
			res.Filtered = append(res.Filtered, d.Name)
			continue
		}
		res.Declarations = append(res.Declarations, d)
	}
	if len(res.Declarations) == 0 {
		return nil, errors.WithHint(ErrNoDeclarations, "every declaration was removed by --include/--exclude")
	}

	names := res.Names()
	if err := writer.CheckCollision(names, cfg); err != nil {
		return nil, err
	}

	reg := resolve.NewRegistry(names)
	log.Debug("registered type names", zap.Int("count", reg.Len()))
	res.Files = make([]types.TypeFile, 0, len(res.Declarations))
	for _, d := range res.Declarations {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res.Files = append(res.Files, writer.BuildTypeFile(d, reg, cfg))
	}
	res.Index = writer.BuildIndex(names, cfg)

	return res, nil
}

// Run reads inputPath (a file or http(s) URL), renders it, and writes the result under outDir.
// On ErrNoDeclarations nothing is written, including outDir itself.
func Run(ctx context.Context, cfg types.GeneratorConfig, inputPath, outDir string, log *zap.Logger) (Summary, error) {
	if log == nil {
		log = zap.NewNop()
	}

	markdown, err := ReadInput(ctx, inputPath, log)
	if err != nil {
		return Summary{}, err
	}

	res, err := Render(ctx, cfg, markdown, log)
	if err != nil {
		if errors.Is(err, ErrNoDeclarations) {
			log.Warn("no declarations found", zap.String("input", inputPath))
		}
		return Summary{}, err
	}

	if err := writer.Write(ctx, outDir, res.Files, res.Index, log); err != nil {
		return Summary{}, err
	}

	summary := Summary{
		Extracted: res.Extracted,
		Written:   res.Names(),
		Filtered:  res.Filtered,
	}
	for _, s := range res.Skipped {
		summary.Skipped = append(summary.Skipped, s.Name)
	}

	if cfg.Prune {
		pruned, err := writer.Prune(outDir, cfg.Extension, res.Paths(), log)
		if err != nil {
			return summary, err
		}
		summary.Pruned = pruned
	}

	log.Info("generation complete",
		zap.String("output", outDir),
		zap.Int("extracted", summary.Extracted),
		zap.Int("written", len(summary.Written)),
		zap.Int("skipped", len(summary.Skipped)),
		zap.Int("filtered", len(summary.Filtered)),
	)
	return summary, nil
}
