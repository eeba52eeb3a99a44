package alloppnet

import (
	"strings"

	"github.com/pkg/errors"
)

//CompoundParameterType names a quantity derived from birth, death and sampling rates
type CompoundParameterType int

const (
	EffectiveReproductiveNumber CompoundParameterType = iota
	BecomeUninfectiousRate
	SamplingProbability
)

type compound struct {
	name      string
	transform func(birth, death, sampling float64) float64
}

var compounds = []compound{
	{"effectiveReproductiveNumber", func(b, d, s float64) float64 { return b / (d + s) }},
	{"becomeUninfectiousRate", func(b, d, s float64) float64 { return d + s }},
	{"samplingProbability", func(b, d, s float64) float64 { return s / (d + s) }},
}

func (c CompoundParameterType) String() string {
	return compounds[c].name
}

// Transform computes the quantity from the three rates.
func (c CompoundParameterType) Transform(birth, death, sampling float64) float64 {
	return compounds[c].transform(birth, death, sampling)
}

//ParseCompoundParameterType will look up a compound parameter by name
func ParseCompoundParameterType(name string) (CompoundParameterType, error) {
	for i, c := range compounds {
		if strings.EqualFold(c.name, name) {
			return CompoundParameterType(i), nil
		}
	}
	return 0, errors.Errorf("unknown compound parameter %q", name)
}

//CompoundParameter exposes a derived quantity of three rate parameters as a statistic
type CompoundParameter struct {
	Type     CompoundParameterType
	Birth    *Parameter
	Death    *Parameter
	Sampling *Parameter
}

func (c CompoundParameter) Name() string   { return c.Type.String() }
func (c CompoundParameter) Dimension() int { return 1 }

// Value applies the transform to the current rates.
func (c CompoundParameter) Value(int) float64 {
	return c.Type.Transform(c.Birth.Value(0), c.Death.Value(0), c.Sampling.Value(0))
}
