// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package check compares freshly rendered output against an existing output
// directory without writing anything.
package check

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
)

// File is one expected output file.
type File struct {
	Path    string
	Content string
}

// Result lists the differences between rendered and on-disk output.
type Result struct {
	Missing []string // rendered but absent on disk
	Changed []string // present with different content
	Extra   []string // on disk with the output extension but not rendered
}

// UpToDate reports whether the directory matches the rendered output.
func (r Result) UpToDate() bool {
	return len(r.Missing) == 0 && len(r.Changed) == 0 && len(r.Extra) == 0
}

// Compare checks every expected file against dir. Files in dir that end in
// "."+ext and are not expected are reported as Extra. All lists are sorted.
func Compare(expected []File, dir, ext string) (Result, error) {
	var res Result
	want := make(map[string]bool, len(expected))

	for _, f := range expected {
		want[f.Path] = true
		path := filepath.Join(dir, f.Path)
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				res.Missing = append(res.Missing, f.Path)
				continue
			}
			return Result{}, errors.Wrapf(err, "reading %s", path)
		}
		if !bytes.Equal(data, []byte(f.Content)) {
			res.Changed = append(res.Changed, f.Path)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil && !os.IsNotExist(err) {
		return Result{}, errors.Wrapf(err, "reading output directory %s", dir)
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), "."+ext) || want[e.Name()] {
			continue
		}
		res.Extra = append(res.Extra, e.Name())
	}

	sort.Strings(res.Missing)
	sort.Strings(res.Changed)
	sort.Strings(res.Extra)
	return res, nil
}
