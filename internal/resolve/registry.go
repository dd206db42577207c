// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resolve detects which known type names a declaration references.
package resolve

import (
	"regexp"
)

// Registry is the ordered set of unique type names for one run. It is built
// once and only read afterwards, so it is safe to share.
type Registry struct {
	names    []string
	patterns map[string]*regexp.Regexp
}

// NewRegistry builds a registry from names, keeping the first occurrence of
// each name in order.
func NewRegistry(names []string) *Registry {
	r := &Registry{patterns: make(map[string]*regexp.Regexp, len(names))}
	for _, name := range names {
		if _, ok := r.patterns[name]; ok {
			continue
		}
		r.names = append(r.names, name)
		r.patterns[name] = regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)
	}
	return r
}

// Names returns the registered names in first-seen order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Len returns the number of registered names.
func (r *Registry) Len() int {
	return len(r.names)
}
