package alloppnet

import (
	"fmt"
	"math"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

//Units is the time scale heights and rates are measured in
type Units int

const (
	Substitutions Units = iota
	Years
	Months
	Days
)

var unitNames = []string{"substitutions", "years", "months", "days"}

func (u Units) String() string {
	if int(u) < len(unitNames) {
		return unitNames[u]
	}
	return fmt.Sprintf("Units(%d)", int(u))
}

//ParseUnits will read a unit name such as "years"
func ParseUnits(s string) (Units, error) {
	for i, n := range unitNames {
		if strings.EqualFold(s, n) {
			return Units(i), nil
		}
	}
	return 0, errors.Errorf("unknown units %q", s)
}

//NetworkPriorLogLikelihood is the prior on s tetraploid subtrees whose hybridizations happen at heights:
//log(s(s-1)) when s > 1, plus s log(rate) - rate * sum(heights)
func NetworkPriorLogLikelihood(s int, rate float64, heights []float64) float64 {
	if !(rate > 0) {
		panic(fmt.Sprintf("alloppnet: network prior rate %g must be positive", rate))
	}
	lp := 0.
	if s > 1 {
		lp += math.Log(float64(s) * float64(s-1))
	}
	lp += float64(s)*math.Log(rate) - rate*floats.Sum(heights)
	return lp
}

//NetworkPrior puts a rate-parameterized prior on the hybridization heights of a network
type NetworkPrior struct {
	Rate    *Parameter
	Units   Units
	network *Network
	cur     float64
	dirty   bool
}

//InitNetworkPrior will attach the prior to the network and its rate parameter
func InitNetworkPrior(net *Network, rate *Parameter, units Units) *NetworkPrior {
	p := &NetworkPrior{Rate: rate, Units: units, network: net, dirty: true}
	net.AddDependent(p)
	rate.AddDependent(p)
	return p
}

// MarkDirty forces recomputation on the next read.
func (p *NetworkPrior) MarkDirty() {
	p.dirty = true
}

//LogLikelihood will return the prior for the current network and rate
func (p *NetworkPrior) LogLikelihood() float64 {
	if p.dirty {
		p.cur = NetworkPriorLogLikelihood(p.network.TetraTreeCount(), p.Rate.Value(0), p.network.HybridHeights())
		p.dirty = false
	}
	return p.cur
}
