// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

// References returns the registered names, other than self, that occur as a
// whole word anywhere in code. Comments count as occurrences, so an unneeded
// import is possible but a needed one is never missed. Names come back in
// registry order.
func (r *Registry) References(code, self string) []string {
	var refs []string
	for _, name := range r.names {
		if name == self {
			continue
		}
		if r.patterns[name].MatchString(code) {
			refs = append(refs, name)
		}
	}
	return refs
}
