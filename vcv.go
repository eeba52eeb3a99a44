package alloppnet

import (
	"gonum.org/v1/gonum/mat"
)

//MRCAHeights will return the matrix of MRCA heights for every pair of spseqs. The diagonal holds tip heights.
func (m *MulLabTree) MRCAHeights() *mat.SymDense {
	dim := m.sm.SpSeqCount()
	heights := mat.NewSymDense(dim, nil)
	for i := 0; i < dim; i++ {
		for j := i; j < dim; j++ {
			heights.SetSym(i, j, m.tree.Height(MRCA(m.tree, m.tipOf[i], m.tipOf[j])))
		}
	}
	return heights
}

//MRCAHeights will return the coalescence height of every pair of gene tree tips, in the order of Tips()
func (g *GeneTree) MRCAHeights() *mat.SymDense {
	tips := g.tree.Tips()
	heights := mat.NewSymDense(len(tips), nil)
	for i := range tips {
		for j := i; j < len(tips); j++ {
			heights.SetSym(i, j, g.tree.Height(MRCA(g.tree, tips[i], tips[j])))
		}
	}
	return heights
}

//PairwiseCompatible checks compatibility pair by pair: every two gene tips must coalesce no lower
//than the mullab MRCA of their spseqs. It agrees with CoalescenceIsCompatible.
func (m *MulLabTree) PairwiseCompatible(g *GeneTree) bool {
	gene := g.MRCAHeights()
	species := m.MRCAHeights()
	tips := g.tree.Tips()
	for i := range tips {
		for j := i + 1; j < len(tips); j++ {
			if gene.At(i, j) < species.At(g.spseqs[tips[i]], g.spseqs[tips[j]]) {
				return false
			}
		}
	}
	return true
}

//MRCA will return the most recent common ancestor of two nodes
func MRCA(t *Tree, n1, n2 int) int {
	traceback := make(map[int]bool)
	for cur := n1; cur >= 0; cur = t.Parent(cur) {
		traceback[cur] = true
	}
	cur := n2
	for !traceback[cur] {
		cur = t.Parent(cur)
	}
	return cur
}
