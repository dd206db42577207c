// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package writer deduplicates extracted declarations, builds one type file per
// unique name plus an aggregating index, and persists them.
package writer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/pdiddy/mdtypes/internal/normalize"
	"github.com/pdiddy/mdtypes/internal/resolve"
	"github.com/pdiddy/mdtypes/pkg/types"
)

// ErrIndexCollision is returned when a declaration would overwrite the index file.
var ErrIndexCollision = errors.New("type name collides with index file")

// Dedupe keeps the first occurrence of every name in source order and returns
// the later duplicates separately. Each duplicate is logged as a warning.
func Dedupe(candidates []types.ExtractedType, log *zap.Logger) (unique, skipped []types.ExtractedType) {
	if log == nil {
		log = zap.NewNop()
	}
	seen := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		if seen[c.Name] {
			log.Warn("duplicate type skipped", zap.String("name", c.Name), zap.Int("line", c.Line))
			skipped = append(skipped, c)
			continue
		}
		seen[c.Name] = true
		unique = append(unique, c)
	}
	return unique, skipped
}

// BuildTypeFile normalizes t, resolves its references against reg, and
// returns the file to write.
func BuildTypeFile(t types.ExtractedType, reg *resolve.Registry, cfg types.GeneratorConfig) types.TypeFile {
	code := normalize.Code(t.Code)
	refs := reg.References(code, t.Name)

	var b strings.Builder
	if len(refs) > 0 {
		fmt.Fprintf(&b, "import { %s } from %q;\n\n", strings.Join(refs, ", "), cfg.ModulePath)
	}
	b.WriteString(code)
	b.WriteString("\n")

	return types.TypeFile{
		Name:       t.Name,
		Path:       cfg.FileName(t.Name),
		Content:    b.String(),
		References: refs,
	}
}

// BuildIndex returns the index file re-exporting every name in order.
func BuildIndex(names []string, cfg types.GeneratorConfig) types.IndexFile {
	lines := make([]string, len(names))
	for i, name := range names {
		lines[i] = fmt.Sprintf("export * from \"./%s\";", name)
	}
	return types.IndexFile{
		Path:    cfg.IndexFileName(),
		Content: strings.Join(lines, "\n") + "\n",
	}
}

// CheckCollision reports ErrIndexCollision when a name would be written to
// the index file path.
func CheckCollision(names []string, cfg types.GeneratorConfig) error {
	for _, name := range names {
		if name == cfg.IndexName {
			return errors.WithHint(
				errors.Wrapf(ErrIndexCollision, "type %s", name),
				"choose another --index-name",
			)
		}
	}
	return nil
}

// Write creates dir if needed and overwrites every file and the index.
// Paths in files and index are relative to dir.
func Write(ctx context.Context, dir string, files []types.TypeFile, index types.IndexFile, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "creating output directory %s", dir)
	}

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		path := filepath.Join(dir, f.Path)
		if err := os.WriteFile(path, []byte(f.Content), 0o644); err != nil {
			return errors.Wrapf(err, "writing %s", path)
		}
		log.Debug("wrote type file", zap.String("path", path), zap.Int("references", len(f.References)))
	}

	indexPath := filepath.Join(dir, index.Path)
	if err := os.WriteFile(indexPath, []byte(index.Content), 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", indexPath)
	}
	return nil
}
