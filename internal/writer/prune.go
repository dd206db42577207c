// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package writer

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// Stale returns the names of regular files in dir that end in "."+ext and are
// not listed in keep. Results are sorted. A missing dir has no stale files.
func Stale(dir, ext string, keep []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "reading output directory %s", dir)
	}

	kept := make(map[string]bool, len(keep))
	for _, k := range keep {
		kept[k] = true
	}

	var stale []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), "."+ext) || kept[e.Name()] {
			continue
		}
		stale = append(stale, e.Name())
	}
	sort.Strings(stale)
	return stale, nil
}

// Prune removes stale files from dir and returns the removed names.
func Prune(dir, ext string, keep []string, log *zap.Logger) ([]string, error) {
	if log == nil {
		log = zap.NewNop()
	}
	stale, err := Stale(dir, ext, keep)
	if err != nil {
		return nil, err
	}
	for _, name := range stale {
		path := filepath.Join(dir, name)
		if err := os.Remove(path); err != nil {
			return nil, errors.Wrapf(err, "removing stale file %s", path)
		}
		log.Info("removed stale file", zap.String("path", path))
	}
	return stale, nil
}
