package depgraph

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/mdtypes/pkg/types"
)

func files(rows ...[]string) []types.TypeFile {
	out := make([]types.TypeFile, len(rows))
	for i, s := range rows {
		out[i] = types.TypeFile{Name: s[0], References: s[1:]}
	}
	return out
}

func TestEdges(t *testing.T) {
	g, err := Build(files(
		[]string{"Foo", "Bar", "Baz"},
		[]string{"Bar"},
		[]string{"Baz", "Bar"},
	))
	require.NoError(t, err)
	assert.Equal(t, []Edge{
		{From: "Foo", To: "Bar"},
		{From: "Foo", To: "Baz"},
		{From: "Baz", To: "Bar"},
	}, g.Edges())
}

func TestOrderChain(t *testing.T) {
	g, err := Build(files(
		[]string{"A", "B"},
		[]string{"B", "C"},
		[]string{"C"},
	))
	require.NoError(t, err)

	order, err := g.Order()
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "B", "A"}, order)
}

func TestOrderDependenciesFirst(t *testing.T) {
	in := files(
		[]string{"Checkout", "Attribute", "MoneyV2", "CheckoutLineItem"},
		[]string{"Attribute"},
		[]string{"MoneyV2"},
		[]string{"CheckoutLineItem", "MoneyV2"},
		[]string{"Handle"},
	)
	g, err := Build(in)
	require.NoError(t, err)

	order, err := g.Order()
	require.NoError(t, err)
	require.Len(t, order, len(in))

	pos := map[string]int{}
	for i, name := range order {
		pos[name] = i
	}
	for _, e := range g.Edges() {
		assert.Less(t, pos[e.To], pos[e.From], "%s must come before %s", e.To, e.From)
	}
}

func TestCycles(t *testing.T) {
	g, err := Build(files(
		[]string{"Cart", "CartLine"},
		[]string{"CartLine", "Cart", "MoneyV2"},
		[]string{"MoneyV2"},
		[]string{"Node", "Fragment"},
		[]string{"Fragment", "Node"},
	))
	require.NoError(t, err)

	cycles, err := g.Cycles()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Cart", "CartLine"}, {"Node", "Fragment"}}, cycles)

	_, err = g.Order()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCyclic))
}

func TestDependents(t *testing.T) {
	g, err := Build(files(
		[]string{"Checkout", "MoneyV2"},
		[]string{"CartLine", "MoneyV2"},
		[]string{"MoneyV2"},
	))
	require.NoError(t, err)

	deps, err := g.Dependents("MoneyV2")
	require.NoError(t, err)
	assert.Equal(t, []string{"Checkout", "CartLine"}, deps)

	deps, err = g.Dependents("Checkout")
	require.NoError(t, err)
	assert.Empty(t, deps)

	_, err = g.Dependents("Missing")
	assert.Error(t, err)
}

func TestBuildUnknownReference(t *testing.T) {
	_, err := Build(files([]string{"Foo", "Ghost"}))
	assert.Error(t, err)
}
