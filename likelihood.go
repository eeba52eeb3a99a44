package alloppnet

import (
	"math"

	"github.com/pkg/errors"
)

//MSCoalescent is the composite likelihood of a set of gene trees embedded in one network.
//CUR holds the last computed value and LAST the one before it, for a driver's accept/reject step.
type MSCoalescent struct {
	Network   *Network
	GeneTrees []*GeneTree
	CUR       float64
	LAST      float64
	dirty     bool
	opts      Options
}

//InitMSCoalescent will bind gene trees to a network and register for their changes
func InitMSCoalescent(net *Network, genes []*GeneTree, opts Options) (*MSCoalescent, error) {
	if len(genes) == 0 {
		return nil, errors.New("no gene trees")
	}
	for _, g := range genes {
		if g.sm != net.sm {
			return nil, errors.Errorf("gene tree %s was bound to a different species map", g.Name)
		}
	}
	ll := new(MSCoalescent)
	ll.Network = net
	ll.GeneTrees = genes
	ll.opts = opts
	ll.dirty = true
	net.AddDependent(ll)
	for _, g := range genes {
		g.AddDependent(ll)
	}
	return ll, nil
}

// MarkDirty forces the next LogLikelihood call to recompute.
func (ll *MSCoalescent) MarkDirty() {
	ll.dirty = true
}

// Dirty reports whether the cached value is stale.
func (ll *MSCoalescent) Dirty() bool {
	return ll.dirty
}

//LogLikelihood will return the cached value, recomputing it first if anything upstream changed
func (ll *MSCoalescent) LogLikelihood() float64 {
	if ll.dirty {
		ll.LAST = ll.CUR
		ll.CUR = ll.Calc()
		ll.dirty = false
	}
	return ll.CUR
}

//Calc will compute the composite log-likelihood from scratch. Any incompatible gene tree gives -Inf.
func (ll *MSCoalescent) Calc() float64 {
	mullab := ll.Network.MulLabTree()
	total := 0.
	for _, g := range ll.GeneTrees {
		if !mullab.CoalescenceIsCompatible(g) {
			ll.opts.debugf("gene tree %s is incompatible with the network", g.Name)
			return math.Inf(-1)
		}
		cur := mullab.GeneTreeLogLikelihood(g)
		ll.opts.debugf("gene tree %s log-likelihood %g", g.Name, cur)
		total += cur
	}
	return total
}

//GeneResult is the compatibility and log-likelihood of one gene tree
type GeneResult struct {
	Name       string
	Compatible bool
	LogLike    float64
}

//PerGene will evaluate every gene tree separately, without short-circuiting
func (ll *MSCoalescent) PerGene() []GeneResult {
	mullab := ll.Network.MulLabTree()
	res := make([]GeneResult, len(ll.GeneTrees))
	for i, g := range ll.GeneTrees {
		res[i] = GeneResult{Name: g.Name, LogLike: math.Inf(-1)}
		if mullab.CoalescenceIsCompatible(g) {
			res[i].Compatible = true
			res[i].LogLike = mullab.GeneTreeLogLikelihood(g)
		}
	}
	return res
}
