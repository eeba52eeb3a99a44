package alloppnet

import (
	"math"
	"strings"

	gotree "github.com/evolbioinfo/gotree/tree"
	"github.com/evolbioinfo/gotree/io/newick"
	"github.com/pkg/errors"
)

// tolerance on tip heights when checking a tree is ultrametric
const ultrametricTol = 1e-6

//ReadTree will parse a rooted Newick string into an arena tree with node heights.
//Heights are measured back from the tips, which must all sit at height zero.
func ReadTree(nwk string) (*Tree, error) {
	gt, err := newick.NewParser(strings.NewReader(nwk)).Parse()
	if err != nil {
		return nil, errors.Wrapf(ErrBadTree, "parsing newick: %v", err)
	}
	t := NewTree()
	depths := make(map[int]float64)
	var convert func(cur, prev *gotree.Node, depth float64) (int, error)
	convert = func(cur, prev *gotree.Node, depth float64) (int, error) {
		var children []int
		edges := cur.Edges()
		for i, nb := range cur.Neigh() {
			if nb == prev {
				continue
			}
			l := edges[i].Length()
			if l < 0 {
				return -1, errors.Wrapf(ErrBadTree, "branch above %q has no length", nb.Name())
			}
			c, err := convert(nb, cur, depth+l)
			if err != nil {
				return -1, err
			}
			children = append(children, c)
		}
		if len(children) == 1 {
			return -1, errors.Wrapf(ErrBadTree, "node %q has a single child", cur.Name())
		}
		i := t.AddNode(cur.Name(), 0, children...)
		depths[i] = depth
		return i, nil
	}
	if _, err := convert(gt.Root(), nil, 0); err != nil {
		return nil, err
	}
	maxDepth := 0.
	for _, d := range depths {
		maxDepth = math.Max(maxDepth, d)
	}
	for i := range t.Nodes {
		h := maxDepth - depths[i]
		if t.IsTip(i) {
			if h > ultrametricTol*math.Max(1, maxDepth) {
				return nil, errors.Wrapf(ErrNotUltrametric, "tip %q at height %g", t.Nodes[i].Name, h)
			}
			h = 0
		}
		t.Nodes[i].Height = h
	}
	return t, nil
}
