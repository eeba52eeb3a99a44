package alloppnet

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTreeHeights(t *testing.T) {
	tr := mustTree(t, "((A:1,B:1):1,C:2);")
	require.Equal(t, 5, tr.Len())
	assert.Equal(t, 3, tr.TipCount())
	assert.InDelta(t, 2.0, tr.Height(tr.Root), 1e-12)
	for _, tip := range tr.Tips() {
		assert.Equal(t, 0.0, tr.Height(tip))
	}
	ab := tr.Parent(tr.FindTip("A"))
	assert.Equal(t, ab, tr.Parent(tr.FindTip("B")))
	assert.InDelta(t, 1.0, tr.Height(ab), 1e-12)
	assert.Equal(t, tr.Root, tr.Parent(ab))
	assert.Len(t, tr.InternalNodes(), 2)
	assert.InDelta(t, 5.0, tr.TreeLength(), 1e-12)
}

func TestReadTreeRejects(t *testing.T) {
	_, err := ReadTree("((A:1,B:2):1,C:2);")
	assert.Equal(t, ErrNotUltrametric, errors.Cause(err))

	_, err = ReadTree("((A,B):1,C:2);")
	assert.Equal(t, ErrBadTree, errors.Cause(err))

	_, err = ReadTree("((A:1,B:1")
	assert.Error(t, err)
}

func TestPostorderChildrenFirst(t *testing.T) {
	tr := mustTree(t, "(((A:1,B:1):1,C:2):1,D:3);")
	seen := make(map[int]bool)
	order := tr.Postorder()
	require.Len(t, order, tr.Len())
	for _, n := range order {
		for _, c := range tr.Children(n) {
			assert.True(t, seen[c], "child %d visited before parent %d", c, n)
		}
		seen[n] = true
	}
	assert.Equal(t, tr.Root, order[len(order)-1])
}

func TestTreeNewickRoundTrip(t *testing.T) {
	tr := mustTree(t, "((A:1,B:1):1,C:2);")
	nwk := tr.Newick(tr.Root, func(i int) string { return tr.Nodes[i].Name }) + ";"
	again := mustTree(t, nwk)
	assert.InDelta(t, tr.Height(tr.Root), again.Height(again.Root), 1e-12)
	assert.Equal(t, tr.TipCount(), again.TipCount())
}

func TestMRCA(t *testing.T) {
	tr := mustTree(t, "(((A:1,B:1):1,C:2):1,D:3);")
	a, b, c, d := tr.FindTip("A"), tr.FindTip("B"), tr.FindTip("C"), tr.FindTip("D")
	assert.InDelta(t, 1.0, tr.Height(MRCA(tr, a, b)), 1e-12)
	assert.InDelta(t, 2.0, tr.Height(MRCA(tr, a, c)), 1e-12)
	assert.Equal(t, tr.Root, MRCA(tr, d, b))
	assert.Equal(t, a, MRCA(tr, a, a))
}
