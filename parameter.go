package alloppnet

import (
	"math"

	"github.com/pkg/errors"
)

//Dirtier is anything holding a cached value that must be recomputed after an upstream change
type Dirtier interface {
	MarkDirty()
}

// dependents is an explicit list of downstream edges.
type dependents struct {
	list []Dirtier
}

//AddDependent will register d to be marked dirty whenever the owner changes
func (d *dependents) AddDependent(x Dirtier) {
	for _, y := range d.list {
		if y == x {
			return
		}
	}
	d.list = append(d.list, x)
}

func (d *dependents) notify() {
	for _, x := range d.list {
		x.MarkDirty()
	}
}

//Parameter is a named vector of bounded values. Writes come from the inference driver.
type Parameter struct {
	dependents
	Name  string
	Lower float64
	Upper float64
	vals  []float64
}

//NewParameter will make a parameter with the given initial values and bounds
func NewParameter(name string, lower, upper float64, vals ...float64) (*Parameter, error) {
	p := &Parameter{Name: name, Lower: lower, Upper: upper, vals: append([]float64(nil), vals...)}
	for i, v := range p.vals {
		if err := p.check(i, v); err != nil {
			return nil, err
		}
	}
	return p, nil
}

//NewPositiveParameter will make a single-valued parameter bounded to (0, +Inf)
func NewPositiveParameter(name string, v float64) (*Parameter, error) {
	if !(v > 0) {
		return nil, errors.Wrapf(ErrOutOfBounds, "%s=%g must be positive", name, v)
	}
	return NewParameter(name, 0, math.Inf(1), v)
}

// Dimension is the number of values.
func (p *Parameter) Dimension() int {
	return len(p.vals)
}

// Value returns value i.
func (p *Parameter) Value(i int) float64 {
	return p.vals[i]
}

// Values returns a copy of all values.
func (p *Parameter) Values() []float64 {
	return append([]float64(nil), p.vals...)
}

//SetValue will set value i and mark every dependent dirty
func (p *Parameter) SetValue(i int, v float64) error {
	if err := p.check(i, v); err != nil {
		return err
	}
	p.vals[i] = v
	p.notify()
	return nil
}

func (p *Parameter) check(i int, v float64) error {
	if math.IsNaN(v) || v < p.Lower || v > p.Upper {
		return errors.Wrapf(ErrOutOfBounds, "%s[%d]=%g not in [%g, %g]", p.Name, i, v, p.Lower, p.Upper)
	}
	return nil
}
