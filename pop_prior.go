package alloppnet

import (
	"fmt"

	"gonum.org/v1/gonum/stat/distuv"
)

//PopSizePrior places an independent gamma prior on every population size in the network.
//Scale is a parameter so the driver can sample it; Shape is fixed.
type PopSizePrior struct {
	Shape   float64
	Scale   *Parameter
	network *Network
	cur     float64
	dirty   bool
}

//InitPopSizePrior will attach a gamma(shape, scale) prior to the network's population sizes
func InitPopSizePrior(net *Network, shape float64, scale *Parameter) *PopSizePrior {
	p := new(PopSizePrior)
	p.Shape = shape
	p.Scale = scale
	p.network = net
	p.dirty = true
	net.AddDependent(p)
	scale.AddDependent(p)
	return p
}

// MarkDirty forces recomputation on the next read.
func (p *PopSizePrior) MarkDirty() {
	p.dirty = true
}

//LogLikelihood will sum the gamma log density over all population sizes
func (p *PopSizePrior) LogLikelihood() float64 {
	if !p.dirty {
		return p.cur
	}
	scale := p.Scale.Value(0)
	if !(scale > 0) || !(p.Shape > 0) {
		panic(fmt.Sprintf("alloppnet: population prior needs positive shape and scale, got %g and %g", p.Shape, scale))
	}
	gamma := distuv.Gamma{Alpha: p.Shape, Beta: 1 / scale}
	lp := 0.
	for _, ps := range p.network.PopSizes() {
		lp += gamma.LogProb(ps)
	}
	p.cur = lp
	p.dirty = false
	return lp
}
