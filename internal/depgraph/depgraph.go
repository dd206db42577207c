// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package depgraph builds the reference graph between generated type files.
package depgraph

import (
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/dominikbraun/graph"

	"github.com/pdiddy/mdtypes/pkg/types"
)

// ErrCyclic is returned by Order when the references form a cycle.
var ErrCyclic = errors.New("type references contain a cycle")

// Edge is one import: From imports To.
type Edge struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// Graph is the reference graph of one run. Its edges point from a type to
// every type that imports it, so a topological order lists dependencies
// before their dependents.
type Graph struct {
	g        graph.Graph[string, string]
	position map[string]int
	edges    []Edge
}

// Build creates the graph from rendered files. Files must come in first-seen
// order; that order breaks ties everywhere below.
func Build(files []types.TypeFile) (*Graph, error) {
	dg := &Graph{
		g:        graph.New(graph.StringHash, graph.Directed()),
		position: make(map[string]int, len(files)),
	}

	for i, f := range files {
		if err := dg.g.AddVertex(f.Name); err != nil {
			return nil, errors.Wrapf(err, "adding type %s", f.Name)
		}
		dg.position[f.Name] = i
	}

	for _, f := range files {
		for _, ref := range f.References {
			if err := dg.g.AddEdge(ref, f.Name); err != nil {
				return nil, errors.Wrapf(err, "adding reference %s -> %s", f.Name, ref)
			}
			dg.edges = append(dg.edges, Edge{From: f.Name, To: ref})
		}
	}

	return dg, nil
}

// Edges returns every import in file order.
func (dg *Graph) Edges() []Edge {
	out := make([]Edge, len(dg.edges))
	copy(out, dg.edges)
	return out
}

// Dependents returns the types that import name, in first-seen order.
func (dg *Graph) Dependents(name string) ([]string, error) {
	adj, err := dg.g.AdjacencyMap()
	if err != nil {
		return nil, errors.Wrap(err, "reading adjacency map")
	}
	targets, ok := adj[name]
	if !ok {
		return nil, errors.Newf("unknown type %s", name)
	}
	out := make([]string, 0, len(targets))
	for t := range targets {
		out = append(out, t)
	}
	dg.sortByPosition(out)
	return out, nil
}

// Cycles returns the groups of types that reference each other in a loop.
// Members and groups are in first-seen order.
func (dg *Graph) Cycles() ([][]string, error) {
	sccs, err := graph.StronglyConnectedComponents(dg.g)
	if err != nil {
		return nil, errors.Wrap(err, "computing strongly connected components")
	}

	var cycles [][]string
	for _, c := range sccs {
		if len(c) < 2 {
			continue
		}
		dg.sortByPosition(c)
		cycles = append(cycles, c)
	}
	sort.Slice(cycles, func(i, j int) bool {
		return dg.position[cycles[i][0]] < dg.position[cycles[j][0]]
	})
	return cycles, nil
}

// Order returns every type with its dependencies first. Ties keep
// first-seen order. It fails with ErrCyclic when references loop.
func (dg *Graph) Order() ([]string, error) {
	cycles, err := dg.Cycles()
	if err != nil {
		return nil, err
	}
	if len(cycles) > 0 {
		return nil, errors.Wrapf(ErrCyclic, "%d cycle(s), first: %v", len(cycles), cycles[0])
	}

	order, err := graph.StableTopologicalSort(dg.g, func(a, b string) bool {
		return dg.position[a] < dg.position[b]
	})
	if err != nil {
		return nil, errors.Wrap(err, "sorting types")
	}
	return order, nil
}

func (dg *Graph) sortByPosition(names []string) {
	sort.Slice(names, func(i, j int) bool {
		return dg.position[names[i]] < dg.position[names[j]]
	})
}
