package alloppnet

import (
	"fmt"
	"math"

	"github.com/bits-and-blooms/bitset"
)

// limb kinds
const (
	limbDiploid = iota
	limbTetraploid
	limbHip
	limbJunction
	limbGhost
)

//limb is the branch above one mullab node, with its population line and the
//coalescences placed on it during the last evaluation
type limb struct {
	kind        int
	union       *bitset.BitSet
	line        PopLine
	spseq       int // tips only
	coalHeights []float64
	lineagesIn  int
	lineagesOut int
}

//MulLabTree is the network flattened into one tree whose tips are spseqs. Each tetraploid
//subtree appears twice, once per genome, and its legs become branches joining the diploid tree.
type MulLabTree struct {
	tree  *Tree
	limbs []limb
	sm    *SpeciesMap
	tipOf []int // spseq -> node
	legs  []*LegLink
	opts  Options
}

func newMulLabTree(net *Network) *MulLabTree {
	m := &MulLabTree{
		tree:  NewTree(),
		sm:    net.sm,
		tipOf: make([]int, net.sm.SpSeqCount()),
		opts:  net.opts,
	}
	for i := range m.tipOf {
		m.tipOf[i] = -1
	}
	dipMap := make(map[int]int)
	if net.dip != nil {
		for _, i := range net.dip.Postorder() {
			var ch []int
			for _, c := range net.dip.Children(i) {
				ch = append(ch, dipMap[c])
			}
			dipMap[i] = m.add(limbDiploid, branchLine(net.dip, net.dipPops, i, math.Inf(1)), ch...)
			if net.dip.IsTip(i) {
				sp, _ := net.sm.SpeciesIndex(net.dip.Nodes[i].Name)
				m.setTip(dipMap[i], net.sm.SpSeqIndex(sp, 0))
			}
		}
	}
	for _, tt := range net.tets {
		for g := 0; g < 2; g++ {
			root := m.copyTetra(tt, g)
			leg := tt.Legs[g]
			hip := m.add(limbHip, PopLine{T0: tt.HybridHeight, P0: tt.LegPops[g], T1: leg.Height, P1: tt.LegPops[g]}, root)
			m.tree.Nodes[hip].Height = tt.HybridHeight
			foot := -1
			if net.dip != nil {
				fn, err := net.footNode(leg)
				if err != nil {
					panic(fmt.Sprintf("alloppnet: building mullab tree from invalid network: %v", err))
				}
				foot = dipMap[fn]
			}
			m.legs = append(m.legs, NewLegLink(hip, foot, leg.Height))
		}
	}
	if net.dip != nil {
		for _, fl := range GroupByFoot(m.legs) {
			m.attach(fl)
		}
	} else {
		m.joinDangling(net.ghostPop)
	}
	m.tree.Root = 0
	for m.tree.Nodes[m.tree.Root].Parent >= 0 {
		m.tree.Root = m.tree.Nodes[m.tree.Root].Parent
	}
	m.computeUnions()
	return m
}

//branchLine will build the population line of the branch above node i of a species tree.
//top is used when the branch has no parent.
func branchLine(t *Tree, pops []BranchPop, i int, top float64) PopLine {
	p := t.Parent(i)
	if p < 0 {
		if math.IsInf(top, 1) {
			return ConstantLine(t.Height(i), pops[i].Tip)
		}
		return PopLine{T0: t.Height(i), P0: pops[i].Tip, T1: top, P1: pops[i].Root}
	}
	return PopLine{T0: t.Height(i), P0: pops[i].Tip, T1: t.Height(p), P1: pops[i].Root}
}

func (m *MulLabTree) add(kind int, line PopLine, children ...int) int {
	i := m.tree.AddNode("", line.T0, children...)
	m.limbs = append(m.limbs, limb{kind: kind, line: line, spseq: -1})
	return i
}

func (m *MulLabTree) setTip(node, spseq int) {
	m.limbs[node].spseq = spseq
	m.tipOf[spseq] = node
	m.tree.Nodes[node].Name = m.sm.SpSeqName(spseq)
}

//copyTetra will add genome g's copy of a tetraploid tree and return the copy's root
func (m *MulLabTree) copyTetra(tt *TetraTree, g int) int {
	copies := make(map[int]int)
	for _, i := range tt.Tree.Postorder() {
		var ch []int
		for _, c := range tt.Tree.Children(i) {
			ch = append(ch, copies[c])
		}
		copies[i] = m.add(limbTetraploid, branchLine(tt.Tree, tt.Pops, i, tt.HybridHeight), ch...)
		if tt.Tree.IsTip(i) {
			sp, _ := m.sm.SpeciesIndex(tt.Tree.Nodes[i].Name)
			m.setTip(copies[i], m.sm.SpSeqIndex(sp, g))
		}
	}
	return copies[tt.Tree.Root]
}

//attach will convert every leg landing on one diploid branch into a junction, lowest foot first
func (m *MulLabTree) attach(fl *FootLinks) {
	lower := fl.Foot
	line := m.limbs[fl.Foot].line
	for _, l := range fl.Hips {
		lower = m.junction(l, lower, line)
	}
}

//joinDangling will chain every leg onto the ghost lineage when there is no diploid tree.
//The ghost lineage starts at the lowest leg's foot, each later leg joins it at its own foot height.
func (m *MulLabTree) joinDangling(ghostPop float64) {
	links := append([]*LegLink(nil), m.legs...)
	SortLegLinks(links)
	first := links[0]
	if first.IsDone() {
		panic(fmt.Sprintf("alloppnet: %v converted twice", first))
	}
	lower := m.add(limbGhost, ConstantLine(first.FootHeight, ghostPop), first.Hip)
	first.SetIsDone()
	for _, l := range links[1:] {
		lower = m.junction(l, lower, ConstantLine(l.FootHeight, ghostPop))
	}
}

func (m *MulLabTree) junction(l *LegLink, lower int, line PopLine) int {
	if l.IsDone() {
		panic(fmt.Sprintf("alloppnet: %v converted twice", l))
	}
	p := m.tree.Nodes[lower].Parent
	j := m.add(limbJunction, line, lower, l.Hip)
	m.tree.Nodes[j].Height = l.FootHeight
	if p >= 0 {
		ch := m.tree.Nodes[p].Children
		for k, c := range ch {
			if c == lower {
				ch[k] = j
			}
		}
		m.tree.Nodes[j].Parent = p
	}
	l.SetIsDone()
	return j
}

func (m *MulLabTree) computeUnions() {
	n := uint(m.sm.SpSeqCount())
	for _, i := range m.tree.Postorder() {
		u := bitset.New(n)
		if ss := m.limbs[i].spseq; ss >= 0 {
			u.Set(uint(ss))
		}
		for _, c := range m.tree.Children(i) {
			u.InPlaceUnion(m.limbs[c].union)
		}
		m.limbs[i].union = u
	}
}

// Tree returns the underlying arena. Callers must not change it.
func (m *MulLabTree) Tree() *Tree {
	return m.tree
}

// Union returns the spseq union below node i.
func (m *MulLabTree) Union(i int) *bitset.BitSet {
	return m.limbs[i].union
}

// TipOf returns the node holding a spseq, or -1 if it is not in the network.
func (m *MulLabTree) TipOf(spseq int) int {
	return m.tipOf[spseq]
}

// RootHeight is the height of the oldest junction or split.
func (m *MulLabTree) RootHeight() float64 {
	return m.tree.Height(m.tree.Root)
}

// Legs returns the leg links used to build the tree, all converted.
func (m *MulLabTree) Legs() []*LegLink {
	return m.legs
}

//Newick will write the tree with spseq labels on the tips
func (m *MulLabTree) Newick() string {
	return m.tree.Newick(m.tree.Root, func(i int) string { return m.tree.Nodes[i].Name }) + ";"
}

//mrca will return the lowest node whose union contains u, or -1 if none does
func (m *MulLabTree) mrca(u *bitset.BitSet) int {
	cur := m.tree.Root
	if !m.limbs[cur].union.IsSuperSet(u) {
		return -1
	}
	for {
		next := -1
		for _, c := range m.tree.Children(cur) {
			if m.limbs[c].union.IsSuperSet(u) {
				next = c
				break
			}
		}
		if next < 0 {
			return cur
		}
		cur = next
	}
}
