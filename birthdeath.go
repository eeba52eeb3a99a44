package alloppnet

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

//BirthDeathLogLikelihood is the Gernhard (2008) birth-death density of a tree with ntips tips and
//the given internal node heights, under incomplete sampling rho. rootHeight must be one of heights.
func BirthDeathLogLikelihood(ntips int, heights []float64, rootHeight, birth, death, rho float64) float64 {
	if !(birth > death) || death < 0 || !(rho > 0 && rho <= 1) {
		panic(fmt.Sprintf("alloppnet: birth-death needs birth > death >= 0 and 0 < rho <= 1, got %g %g %g", birth, death, rho))
	}
	r := birth - death
	a := death / birth
	lp := float64(ntips-1)*math.Log(r*rho) + float64(ntips)*math.Log(1-a)
	for _, h := range heights {
		mrh := -r * h
		z := math.Log(rho + ((1-rho)-a)*math.Exp(mrh))
		lp += -2*z + mrh
		if h == rootHeight {
			lp += mrh - z
		}
	}
	return lp
}

//BirthDeathPrior is the birth-death prior on the diploid tree of a network
type BirthDeathPrior struct {
	Birth   *Parameter
	Death   *Parameter
	Rho     float64
	network *Network
	cur     float64
	dirty   bool
}

//InitBirthDeathPrior will attach a birth-death prior to the network's diploid tree
func InitBirthDeathPrior(net *Network, birth, death *Parameter, rho float64) (*BirthDeathPrior, error) {
	if net.Diploid() == nil || net.Diploid().TipCount() < 2 {
		return nil, errors.New("birth-death prior needs a diploid tree with at least two species")
	}
	if !(rho > 0 && rho <= 1) {
		return nil, errors.Wrapf(ErrOutOfBounds, "sampling proportion %g", rho)
	}
	p := &BirthDeathPrior{Birth: birth, Death: death, Rho: rho, network: net, dirty: true}
	net.AddDependent(p)
	birth.AddDependent(p)
	death.AddDependent(p)
	return p, nil
}

// MarkDirty forces recomputation on the next read.
func (p *BirthDeathPrior) MarkDirty() {
	p.dirty = true
}

//LogLikelihood will return the birth-death density of the current diploid tree
func (p *BirthDeathPrior) LogLikelihood() float64 {
	if p.dirty {
		t := p.network.Diploid()
		var heights []float64
		for _, i := range t.InternalNodes() {
			heights = append(heights, t.Height(i))
		}
		p.cur = BirthDeathLogLikelihood(t.TipCount(), heights, t.Height(t.Root), p.Birth.Value(0), p.Death.Value(0), p.Rho)
		p.dirty = false
	}
	return p.cur
}
