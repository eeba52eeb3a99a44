package alloppnet

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// species A, B diploid; X, Y tetraploid. spseqs: A=0 B=1 X.0=2 X.1=3 Y.0=4 Y.1=5
func testSpeciesMap(t *testing.T) *SpeciesMap {
	t.Helper()
	sm, err := NewSpeciesMap([]Species{
		{Name: "A", Ploidy: Diploid, Individuals: []Individual{{Name: "a1", Sequences: []string{"a1"}}}},
		{Name: "B", Ploidy: Diploid, Individuals: []Individual{{Name: "b1", Sequences: []string{"b1"}}}},
		{Name: "X", Ploidy: Tetraploid, Individuals: []Individual{{Name: "x1", Sequences: []string{"x1a", "x1b"}}}},
		{Name: "Y", Ploidy: Tetraploid, Individuals: []Individual{{Name: "y1", Sequences: []string{"y1a", "y1b"}}}},
	})
	require.NoError(t, err)
	return sm
}

func mustTree(t *testing.T, nwk string) *Tree {
	t.Helper()
	tr, err := ReadTree(nwk)
	require.NoError(t, err)
	return tr
}

// diploid (A,B) rooted at 1; tetraploid (X,Y) rooted at 0.2, hybridizing at 0.5,
// with both legs landing on branch A at the given heights.
func testNetwork(t *testing.T, sm *SpeciesMap, leg0, leg1 float64) *Network {
	t.Helper()
	a, err := sm.DiploidUnion("A")
	require.NoError(t, err)
	net, err := NewNetwork(sm, NetworkSpec{
		Diploid: mustTree(t, "(A:1,B:1);"),
		Tetraploids: []TetraTree{{
			Tree:         mustTree(t, "(X:0.2,Y:0.2);"),
			Legs:         [2]*TreeLeg{NewTreeLeg(a, leg0), NewTreeLeg(a, leg1)},
			HybridHeight: 0.5,
		}},
	}, DefaultOptions())
	require.NoError(t, err)
	return net
}

func mustGene(t *testing.T, name, nwk string, sm *SpeciesMap) *GeneTree {
	t.Helper()
	g, err := ReadGeneTree(name, nwk, sm)
	require.NoError(t, err)
	return g
}

const (
	compatibleGene = "((((x1a:0.3,y1a:0.3):0.4,a1:0.7):0.2,(x1b:0.3,y1b:0.3):0.6):0.3,b1:1.2);"
	earlyGene      = "((((x1a:0.3,x1b:0.3):0.4,a1:0.7):0.2,(y1a:0.3,y1b:0.3):0.6):0.3,b1:1.2);"
)
