package alloppnet

import (
	"fmt"
	"math"
	"sort"

	"github.com/bits-and-blooms/bitset"
	"gonum.org/v1/gonum/stat/combin"
)

//CoalescenceIsCompatible reports whether every coalescence of the gene tree happens no lower
//than the mullab node uniting the spseqs below it. It does not touch the limb annotations.
func (m *MulLabTree) CoalescenceIsCompatible(g *GeneTree) bool {
	_, ok := m.subtreeIsCompatible(g, g.tree.Root)
	return ok
}

func (m *MulLabTree) subtreeIsCompatible(g *GeneTree, node int) (*bitset.BitSet, bool) {
	u := bitset.New(uint(m.sm.SpSeqCount()))
	if g.tree.IsTip(node) {
		u.Set(uint(g.spseqs[node]))
		return u, true
	}
	for _, c := range g.tree.Children(node) {
		cu, ok := m.subtreeIsCompatible(g, c)
		if !ok {
			return nil, false
		}
		u.InPlaceUnion(cu)
	}
	x := m.mrca(u)
	if x < 0 {
		return nil, false
	}
	return u, m.tree.Height(x) <= g.tree.Height(node)
}

//GeneTreeLogLikelihood will return the log probability of the gene tree's coalescence times
//given the network. The gene tree must already be known to be compatible.
func (m *MulLabTree) GeneTreeLogLikelihood(g *GeneTree) float64 {
	m.clearCoalescences()
	m.recordCoalescences(g)
	pop := m.opts.population()
	loglike := 0.
	for _, i := range m.tree.Postorder() {
		loglike += m.limbLogLikelihood(i, pop)
	}
	if math.IsNaN(loglike) {
		panic(fmt.Sprintf("alloppnet: NaN log-likelihood for gene tree %s", g.Name))
	}
	return loglike
}

func (m *MulLabTree) clearCoalescences() {
	for i := range m.limbs {
		m.limbs[i].coalHeights = m.limbs[i].coalHeights[:0]
		m.limbs[i].lineagesIn = 0
		m.limbs[i].lineagesOut = 0
	}
}

//recordCoalescences will put each gene coalescence on the limb spanning its height above the MRCA
//of its spseqs, and count gene tips entering each mullab tip
func (m *MulLabTree) recordCoalescences(g *GeneTree) {
	us := g.unions()
	for _, i := range g.tree.Postorder() {
		if g.tree.IsTip(i) {
			m.limbs[m.tipOf[g.spseqs[i]]].lineagesIn++
			continue
		}
		h := g.tree.Height(i)
		x := m.mrca(us[i])
		for p := m.tree.Parent(x); p >= 0 && m.tree.Height(p) <= h; p = m.tree.Parent(x) {
			x = p
		}
		m.limbs[x].coalHeights = append(m.limbs[x].coalHeights, h)
	}
}

//limbLogLikelihood integrates the coalescent along one limb. Children have already been
//visited, so the lineages leaving them are the lineages entering this limb.
func (m *MulLabTree) limbLogLikelihood(i int, pop PopulationFunction) float64 {
	lb := &m.limbs[i]
	lb.line.check()
	for _, c := range m.tree.Children(i) {
		lb.lineagesIn += m.limbs[c].lineagesOut
	}
	sort.Float64s(lb.coalHeights)
	k := lb.lineagesIn
	t := m.tree.Height(i)
	loglike := 0.
	for _, c := range lb.coalHeights {
		if k < 2 {
			panic(fmt.Sprintf("alloppnet: coalescence at %g on limb %d with %d lineages", c, i, k))
		}
		loglike -= float64(combin.Binomial(k, 2)) * pop.InverseIntegral(lb.line, t, c)
		loglike -= math.Log(pop.Size(lb.line, c))
		k--
		t = c
	}
	lb.lineagesOut = k
	if p := m.tree.Parent(i); p >= 0 {
		if k >= 2 {
			loglike -= float64(combin.Binomial(k, 2)) * pop.InverseIntegral(lb.line, t, m.tree.Height(p))
		}
	} else if k > 1 {
		panic(fmt.Sprintf("alloppnet: %d lineages left at the root", k))
	}
	return loglike
}
