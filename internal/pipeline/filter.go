// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"github.com/cockroachdb/errors"
	"github.com/gobwas/glob"
)

// compiledPattern holds both the pattern string and compiled glob.
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// nameFilter selects type names by include and exclude globs.
type nameFilter struct {
	include []compiledPattern
	exclude []compiledPattern
}

func newNameFilter(include, exclude []string) (*nameFilter, error) {
	f := &nameFilter{}
	for _, p := range include {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, errors.Wrapf(err, "compiling include pattern %q", p)
		}
		f.include = append(f.include, compiledPattern{pattern: p, glob: g})
	}
	for _, p := range exclude {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, errors.Wrapf(err, "compiling exclude pattern %q", p)
		}
		f.exclude = append(f.exclude, compiledPattern{pattern: p, glob: g})
	}
	return f, nil
}

// allow reports whether name passes the filter and, when it does not, the
// pattern responsible.
func (f *nameFilter) allow(name string) (bool, string) {
	for _, p := range f.exclude {
		if p.glob.Match(name) {
			return false, p.pattern
		}
	}
	if len(f.include) == 0 {
		return true, ""
	}
	for _, p := range f.include {
		if p.glob.Match(name) {
			return true, ""
		}
	}
	return false, "include"
}
