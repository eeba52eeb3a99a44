package alloppnet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompoundParameters(t *testing.T) {
	b, err := NewPositiveParameter("birth", 3)
	require.NoError(t, err)
	d, err := NewPositiveParameter("death", 1)
	require.NoError(t, err)
	s, err := NewPositiveParameter("sampling", 1)
	require.NoError(t, err)

	want := map[CompoundParameterType]float64{
		EffectiveReproductiveNumber: 1.5,
		BecomeUninfectiousRate:      2,
		SamplingProbability:         0.5,
	}
	for typ, v := range want {
		c := CompoundParameter{Type: typ, Birth: b, Death: d, Sampling: s}
		assert.Equal(t, v, c.Value(0), typ.String())
		assert.Equal(t, 1, c.Dimension())
		parsed, err := ParseCompoundParameterType(c.Name())
		require.NoError(t, err)
		assert.Equal(t, typ, parsed)
	}

	require.NoError(t, d.SetValue(0, 2))
	c := CompoundParameter{Type: EffectiveReproductiveNumber, Birth: b, Death: d, Sampling: s}
	assert.Equal(t, 1., c.Value(0))

	typ, err := ParseCompoundParameterType("SAMPLINGPROBABILITY")
	require.NoError(t, err)
	assert.Equal(t, SamplingProbability, typ)
	_, err = ParseCompoundParameterType("r0")
	assert.Error(t, err)
}
