package alloppnet

import (
	"math"

	"github.com/bits-and-blooms/bitset"
	"github.com/pkg/errors"
)

//BranchPop holds the population size at the tip end and the root end of one branch
type BranchPop struct {
	Tip  float64
	Root float64
}

//TetraTree is the species tree of a set of tetraploid species that share one hybridization.
//Its root lineage runs up to HybridHeight, where it splits into one leg per genome.
type TetraTree struct {
	Tree         *Tree
	Pops         []BranchPop
	Legs         [2]*TreeLeg
	HybridHeight float64
	LegPops      [2]float64
}

func (tt *TetraTree) clone() *TetraTree {
	c := *tt
	c.Tree = tt.Tree.Clone()
	c.Pops = append([]BranchPop(nil), tt.Pops...)
	c.Legs = [2]*TreeLeg{tt.Legs[0].Clone(), tt.Legs[1].Clone()}
	return &c
}

//NetworkSpec describes a network before validation. Missing population sizes default to DefaultPop.
type NetworkSpec struct {
	Diploid     *Tree
	DiploidPops []BranchPop
	Tetraploids []TetraTree
	// GhostPop is the size of the unsampled lineage that dangling legs join
	// when there is no diploid tree.
	GhostPop   float64
	DefaultPop float64
}

//Network is the allopolyploid species network: a diploid tree plus tetraploid trees whose legs land on it
type Network struct {
	dependents
	sm        *SpeciesMap
	dip       *Tree
	dipPops   []BranchPop
	dipUnions []*bitset.BitSet
	tets      []*TetraTree
	ghostPop  float64
	opts      Options
	mullab    *MulLabTree
	stale     bool
}

//NewNetwork will validate a network description against the species map
func NewNetwork(sm *SpeciesMap, spec NetworkSpec, opts Options) (*Network, error) {
	def := spec.DefaultPop
	if def == 0 {
		def = 1
	}
	net := &Network{sm: sm, ghostPop: spec.GhostPop, opts: opts, stale: true}
	if net.ghostPop == 0 {
		net.ghostPop = def
	}
	if spec.Diploid != nil && spec.Diploid.Len() > 0 {
		net.dip = spec.Diploid.Clone()
		net.dipPops = fillPops(spec.DiploidPops, net.dip.Len(), def)
	}
	for i := range spec.Tetraploids {
		tt := spec.Tetraploids[i]
		if tt.Tree == nil || tt.Legs[0] == nil || tt.Legs[1] == nil {
			return nil, errors.Errorf("tetraploid tree %d is incomplete", i)
		}
		c := tt.clone()
		c.Pops = fillPops(tt.Pops, c.Tree.Len(), def)
		for g := range c.LegPops {
			if c.LegPops[g] == 0 {
				c.LegPops[g] = def
			}
		}
		net.tets = append(net.tets, c)
	}
	if net.dip == nil && len(net.tets) == 0 {
		return nil, errors.New("network has no species trees")
	}
	if err := net.checkSpecies(); err != nil {
		return nil, err
	}
	if err := net.validate(); err != nil {
		return nil, err
	}
	return net, nil
}

func fillPops(pops []BranchPop, n int, def float64) []BranchPop {
	out := make([]BranchPop, n)
	for i := range out {
		out[i] = BranchPop{Tip: def, Root: def}
		if i < len(pops) {
			out[i] = pops[i]
		}
	}
	return out
}

//checkSpecies will make sure every species sits at exactly one tip of the right kind of tree
func (net *Network) checkSpecies() error {
	seen := make([]int, net.sm.SpeciesCount())
	check := func(t *Tree, ploidy int) error {
		for _, tip := range t.Tips() {
			name := t.Nodes[tip].Name
			sp, err := net.sm.SpeciesIndex(name)
			if err != nil {
				return err
			}
			if net.sm.Species(sp).Ploidy != ploidy {
				return errors.Errorf("species %s has ploidy %d but sits in a ploidy %d tree",
					name, net.sm.Species(sp).Ploidy, ploidy)
			}
			seen[sp]++
		}
		return nil
	}
	if net.dip != nil {
		if err := check(net.dip, Diploid); err != nil {
			return err
		}
	}
	for _, tt := range net.tets {
		if err := check(tt.Tree, Tetraploid); err != nil {
			return err
		}
	}
	for sp, n := range seen {
		if n != 1 {
			return errors.Errorf("species %s appears %d times in the network", net.sm.Species(sp).Name, n)
		}
	}
	net.dipUnions = nil
	if net.dip != nil {
		net.dipUnions = make([]*bitset.BitSet, net.dip.Len())
		for _, i := range net.dip.Postorder() {
			u := bitset.New(uint(net.sm.SpSeqCount()))
			if net.dip.IsTip(i) {
				sp, _ := net.sm.SpeciesIndex(net.dip.Nodes[i].Name)
				u.Set(uint(net.sm.SpSeqIndex(sp, 0)))
			}
			for _, c := range net.dip.Children(i) {
				u.InPlaceUnion(net.dipUnions[c])
			}
			net.dipUnions[i] = u
		}
	}
	return nil
}

//validate will check heights and population sizes
func (net *Network) validate() error {
	if !(net.ghostPop > 0) {
		return errors.Wrapf(ErrOutOfBounds, "ghost population %g", net.ghostPop)
	}
	if net.dip != nil {
		if err := checkTree(net.dip, net.dipPops, "diploid tree"); err != nil {
			return err
		}
	}
	for t, tt := range net.tets {
		if err := checkTree(tt.Tree, tt.Pops, "tetraploid tree"); err != nil {
			return errors.Wrapf(err, "tetraploid tree %d", t)
		}
		rootH := tt.Tree.Height(tt.Tree.Root)
		if !(tt.HybridHeight > rootH) {
			return errors.Wrapf(ErrHeightOrder, "tetraploid tree %d: hybridization %g not above root %g",
				t, tt.HybridHeight, rootH)
		}
		for g, leg := range tt.Legs {
			if !(tt.LegPops[g] > 0) {
				return errors.Wrapf(ErrOutOfBounds, "tetraploid tree %d leg %d population %g", t, g, tt.LegPops[g])
			}
			if !(leg.Height > tt.HybridHeight) {
				return errors.Wrapf(ErrHeightOrder, "tetraploid tree %d leg %d: foot %g not above hybridization %g",
					t, g, leg.Height, tt.HybridHeight)
			}
			if _, err := net.footNode(leg); err != nil {
				return errors.Wrapf(err, "tetraploid tree %d leg %d", t, g)
			}
		}
	}
	return nil
}

func checkTree(t *Tree, pops []BranchPop, what string) error {
	for i, n := range t.Nodes {
		if !(pops[i].Tip > 0) || !(pops[i].Root > 0) {
			return errors.Wrapf(ErrOutOfBounds, "%s node %d population %+v", what, i, pops[i])
		}
		if n.Parent >= 0 && !(t.Height(n.Parent) > n.Height) {
			return errors.Wrapf(ErrHeightOrder, "%s node %d at %g not below parent", what, i, n.Height)
		}
	}
	return nil
}

//footNode will find the diploid node whose branch holds the leg's foot. Dangling legs
//land on the root branch; with no diploid tree the result is -1.
func (net *Network) footNode(leg *TreeLeg) (int, error) {
	if net.dip == nil {
		if !leg.Dangling() {
			return -1, errors.Wrap(ErrFootNotFound, "no diploid tree to land on")
		}
		return -1, nil
	}
	node := -1
	if leg.Dangling() {
		node = net.dip.Root
	} else {
		for i, u := range net.dipUnions {
			if u.Equal(leg.FootUnion) {
				node = i
				break
			}
		}
		if node < 0 {
			return -1, errors.Wrapf(ErrFootNotFound, "foot union %v", leg.FootUnion)
		}
	}
	lo := net.dip.Height(node)
	hi := math.Inf(1)
	if p := net.dip.Parent(node); p >= 0 {
		hi = net.dip.Height(p)
	}
	if !(leg.Height > lo && leg.Height < hi) {
		return -1, errors.Wrapf(ErrHeightOrder, "foot at %g outside branch (%g, %g)", leg.Height, lo, hi)
	}
	return node, nil
}

// MarkDirty invalidates the cached mullab tree and everything downstream.
func (net *Network) MarkDirty() {
	net.stale = true
	net.notify()
}

//update will apply a change, roll it back if the network becomes invalid, and mark the network dirty
func (net *Network) update(apply, undo func()) error {
	apply()
	if err := net.validate(); err != nil {
		undo()
		return err
	}
	net.MarkDirty()
	return nil
}

//SetLegHeight will move the foot of leg g of tetraploid tree t
func (net *Network) SetLegHeight(t, g int, h float64) error {
	leg := net.tets[t].Legs[g]
	old := leg.Height
	return net.update(func() { leg.Height = h }, func() { leg.Height = old })
}

//SetLegFoot will move leg g of tetraploid tree t onto another diploid branch
func (net *Network) SetLegFoot(t, g int, leg *TreeLeg) error {
	old := net.tets[t].Legs[g]
	return net.update(func() { net.tets[t].Legs[g] = leg.Clone() }, func() { net.tets[t].Legs[g] = old })
}

//SetHybridHeight will move the hybridization of tetraploid tree t
func (net *Network) SetHybridHeight(t int, h float64) error {
	tt := net.tets[t]
	old := tt.HybridHeight
	return net.update(func() { tt.HybridHeight = h }, func() { tt.HybridHeight = old })
}

//SetDiploidHeight will move an internal node of the diploid tree
func (net *Network) SetDiploidHeight(node int, h float64) error {
	if net.dip == nil || net.dip.IsTip(node) {
		return errors.Errorf("diploid node %d is not an internal node", node)
	}
	old := net.dip.Nodes[node].Height
	return net.update(func() { net.dip.Nodes[node].Height = h }, func() { net.dip.Nodes[node].Height = old })
}

//SetDiploidPop will set the population sizes of one diploid branch
func (net *Network) SetDiploidPop(node int, p BranchPop) error {
	old := net.dipPops[node]
	return net.update(func() { net.dipPops[node] = p }, func() { net.dipPops[node] = old })
}

//SetTetraPop will set the population sizes of one branch of tetraploid tree t
func (net *Network) SetTetraPop(t, node int, p BranchPop) error {
	tt := net.tets[t]
	old := tt.Pops[node]
	return net.update(func() { tt.Pops[node] = p }, func() { tt.Pops[node] = old })
}

//SetLegPop will set the population size of leg g of tetraploid tree t
func (net *Network) SetLegPop(t, g int, p float64) error {
	tt := net.tets[t]
	old := tt.LegPops[g]
	return net.update(func() { tt.LegPops[g] = p }, func() { tt.LegPops[g] = old })
}

// SpeciesMap returns the species index the network was built against.
func (net *Network) SpeciesMap() *SpeciesMap {
	return net.sm
}

// Diploid returns the diploid tree, or nil. Callers must not change it.
func (net *Network) Diploid() *Tree {
	return net.dip
}

// TetraTreeCount is the number of tetraploid subtrees, one per hybridization.
func (net *Network) TetraTreeCount() int {
	return len(net.tets)
}

// TetraTree returns tetraploid subtree t. Callers must not change it.
func (net *Network) TetraTree(t int) *TetraTree {
	return net.tets[t]
}

//HybridHeights will return the hybridization height of every tetraploid tree
func (net *Network) HybridHeights() []float64 {
	hs := make([]float64, len(net.tets))
	for i, tt := range net.tets {
		hs[i] = tt.HybridHeight
	}
	return hs
}

//DanglingLegCount will count the legs with no diploid attachment
func (net *Network) DanglingLegCount() int {
	n := 0
	for _, tt := range net.tets {
		for _, l := range tt.Legs {
			if l.Dangling() {
				n++
			}
		}
	}
	return n
}

//PopSizes will return every population size parameter in the network
func (net *Network) PopSizes() []float64 {
	var ps []float64
	for _, p := range net.dipPops {
		ps = append(ps, p.Tip, p.Root)
	}
	for _, tt := range net.tets {
		for _, p := range tt.Pops {
			ps = append(ps, p.Tip, p.Root)
		}
		ps = append(ps, tt.LegPops[0], tt.LegPops[1])
	}
	if net.dip == nil {
		ps = append(ps, net.ghostPop)
	}
	return ps
}

//MulLabTree will return the multiply-labelled tree for the current state, rebuilding it if stale
func (net *Network) MulLabTree() *MulLabTree {
	if net.stale || net.mullab == nil {
		net.mullab = newMulLabTree(net)
		net.stale = false
		net.opts.debugf("rebuilt mullab tree %s", net.mullab.Newick())
	}
	return net.mullab
}
