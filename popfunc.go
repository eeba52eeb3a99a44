package alloppnet

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/integrate/quad"
)

//PopLine describes the population size along one limb: P0 at height T0 and P1 at height T1.
//T1 is +Inf on the root limb, where the size is held at P0.
type PopLine struct {
	T0, P0 float64
	T1, P1 float64
}

//ConstantLine will return a line holding size p from height t0 upward
func ConstantLine(t0, p float64) PopLine {
	return PopLine{T0: t0, P0: p, T1: math.Inf(1), P1: p}
}

func (l PopLine) check() {
	if !(l.P0 > 0) || !(l.P1 > 0) {
		panic(fmt.Sprintf("alloppnet: non-positive population size on limb %+v", l))
	}
}

//PopulationFunction evaluates the size of a limb's population and the integral of its inverse
type PopulationFunction interface {
	Size(l PopLine, t float64) float64
	// InverseIntegral is the integral of 1/N(t) over [from, to].
	InverseIntegral(l PopLine, from, to float64) float64
}

//LinearPopulation interpolates linearly between the limb ends and integrates analytically
type LinearPopulation struct{}

//Size will evaluate the linearly interpolated size at height t
func (LinearPopulation) Size(l PopLine, t float64) float64 {
	return LinearSize(l, t)
}

//InverseIntegral is limbLinPopIntegral: for N(t) = a + b(t-T0), log(N(to)/N(from))/b, or (to-from)/a when b is zero
func (LinearPopulation) InverseIntegral(l PopLine, from, to float64) float64 {
	l.check()
	if to <= from {
		return 0
	}
	if math.IsInf(l.T1, 1) || l.T1 == l.T0 {
		return (to - from) / l.P0
	}
	b := (l.P1 - l.P0) / (l.T1 - l.T0)
	n0 := l.P0 + b*(from-l.T0)
	if math.Abs(b*(to-from)) < 1e-12*n0 {
		return (to - from) / n0
	}
	n1 := l.P0 + b*(to-l.T0)
	return math.Log(n1/n0) / b
}

//LinearSize will evaluate a linear population line at height t
func LinearSize(l PopLine, t float64) float64 {
	if math.IsInf(l.T1, 1) || l.T1 == l.T0 {
		return l.P0
	}
	return l.P0 + (l.P1-l.P0)*(t-l.T0)/(l.T1-l.T0)
}

//ExponentialSize will evaluate a line that grows or shrinks exponentially from P0 to P1
func ExponentialSize(l PopLine, t float64) float64 {
	if math.IsInf(l.T1, 1) || l.T1 == l.T0 {
		return l.P0
	}
	r := math.Log(l.P1/l.P0) / (l.T1 - l.T0)
	return l.P0 * math.Exp(r*(t-l.T0))
}

//NumericPopulation integrates an arbitrary size shape with Gauss-Legendre quadrature
type NumericPopulation struct {
	Shape  func(l PopLine, t float64) float64
	Points int
}

// Size evaluates the configured shape.
func (p NumericPopulation) Size(l PopLine, t float64) float64 {
	return p.Shape(l, t)
}

//InverseIntegral will integrate 1/N(t) numerically over [from, to]
func (p NumericPopulation) InverseIntegral(l PopLine, from, to float64) float64 {
	l.check()
	if to <= from {
		return 0
	}
	n := p.Points
	if n <= 0 {
		n = 20
	}
	return quad.Fixed(func(t float64) float64 {
		return 1 / p.Shape(l, t)
	}, from, to, n, nil, 0)
}
