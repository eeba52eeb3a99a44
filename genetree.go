package alloppnet

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/pkg/errors"
)

//GeneTree is the coalescent history of one locus. Tips are named by sequence.
//Flips holds, per tetraploid individual, whether its two sequences swap genomes.
type GeneTree struct {
	dependents
	Name   string
	tree   *Tree
	sm     *SpeciesMap
	flips  []bool
	spseqs []int // per node; -1 for internal nodes
}

//NewGeneTree will bind a tree's tips to the species map
func NewGeneTree(name string, t *Tree, sm *SpeciesMap) (*GeneTree, error) {
	g := &GeneTree{
		Name:  name,
		tree:  t,
		sm:    sm,
		flips: make([]bool, sm.TetraploidIndividualCount()),
	}
	if err := checkGeneTopology(t); err != nil {
		return nil, errors.Wrapf(err, "gene tree %s", name)
	}
	if err := g.assign(); err != nil {
		return nil, errors.Wrapf(err, "gene tree %s", name)
	}
	return g, nil
}

//ReadGeneTree will parse a Newick gene tree and bind it to the species map
func ReadGeneTree(name, nwk string, sm *SpeciesMap) (*GeneTree, error) {
	t, err := ReadTree(nwk)
	if err != nil {
		return nil, errors.Wrapf(err, "gene tree %s", name)
	}
	return NewGeneTree(name, t, sm)
}

//checkGeneTopology will reject polytomies and tips sampled twice
func checkGeneTopology(t *Tree) error {
	seen := make(map[string]bool)
	for i, n := range t.Nodes {
		if t.IsTip(i) {
			if seen[n.Name] {
				return errors.Wrapf(ErrBadTree, "sequence %q appears twice", n.Name)
			}
			seen[n.Name] = true
			continue
		}
		if len(n.Children) != 2 {
			return errors.Wrapf(ErrBadTree, "node %d has %d children", i, len(n.Children))
		}
	}
	return nil
}

func (g *GeneTree) assign() error {
	spseqs := make([]int, g.tree.Len())
	for i := range spseqs {
		spseqs[i] = -1
		if !g.tree.IsTip(i) {
			continue
		}
		ss, err := g.sm.spseqOf(g.tree.Nodes[i].Name, g.flips)
		if err != nil {
			return err
		}
		spseqs[i] = ss
	}
	g.spseqs = spseqs
	return nil
}

// Tree returns the underlying tree. Callers must not change it.
func (g *GeneTree) Tree() *Tree {
	return g.tree
}

// SpSeqOfTip returns the spseq a tip is currently assigned to.
func (g *GeneTree) SpSeqOfTip(i int) int {
	return g.spseqs[i]
}

//FlipAssignment will swap the genomes of a tetraploid individual's two sequences
func (g *GeneTree) FlipAssignment(individual string) error {
	i := g.sm.tetIndividual(individual)
	if i < 0 {
		return errors.Errorf("%s is not a tetraploid individual", individual)
	}
	g.flips[i] = !g.flips[i]
	if err := g.assign(); err != nil {
		return err
	}
	g.notify()
	return nil
}

//SetNodeHeight will move an internal node, keeping it above its children and below its parent
func (g *GeneTree) SetNodeHeight(i int, h float64) error {
	n := g.tree.Nodes[i]
	if g.tree.IsTip(i) {
		return errors.Errorf("gene tree %s: tip heights are fixed", g.Name)
	}
	for _, c := range n.Children {
		if g.tree.Height(c) >= h {
			return errors.Wrapf(ErrHeightOrder, "gene tree %s node %d: %g not above child", g.Name, i, h)
		}
	}
	if n.Parent >= 0 && g.tree.Height(n.Parent) <= h {
		return errors.Wrapf(ErrHeightOrder, "gene tree %s node %d: %g not below parent", g.Name, i, h)
	}
	g.tree.Nodes[i].Height = h
	g.notify()
	return nil
}

//unions will return the spseq union below every node, indexed by node
func (g *GeneTree) unions() []*bitset.BitSet {
	n := uint(g.sm.SpSeqCount())
	us := make([]*bitset.BitSet, g.tree.Len())
	for _, i := range g.tree.Postorder() {
		u := bitset.New(n)
		if g.tree.IsTip(i) {
			u.Set(uint(g.spseqs[i]))
		}
		for _, c := range g.tree.Children(i) {
			u.InPlaceUnion(us[c])
		}
		us[i] = u
	}
	return us
}
