package alloppnet

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYuleClosedForm(t *testing.T) {
	heights := []float64{0.4, 1.1, 2.5}
	lambda := 1.3
	want := 3*math.Log(lambda) - lambda*(0.4+1.1+2.5) - lambda*2.5
	assert.InDelta(t, want, BirthDeathLogLikelihood(4, heights, 2.5, lambda, 0, 1), 1e-12)
}

func TestBirthDeathSampling(t *testing.T) {
	heights := []float64{0.4, 1.1, 2.5}
	full := BirthDeathLogLikelihood(4, heights, 2.5, 2, 0.5, 1)
	sampled := BirthDeathLogLikelihood(4, heights, 2.5, 2, 0.5, 0.5)
	assert.False(t, math.IsNaN(full))
	assert.False(t, math.IsNaN(sampled))
	assert.NotEqual(t, full, sampled)

	assert.Panics(t, func() { BirthDeathLogLikelihood(4, heights, 2.5, 1, 1, 1) })
	assert.Panics(t, func() { BirthDeathLogLikelihood(4, heights, 2.5, 2, -1, 1) })
	assert.Panics(t, func() { BirthDeathLogLikelihood(4, heights, 2.5, 2, 1, 0) })
}

func TestBirthDeathPrior(t *testing.T) {
	sm := testSpeciesMap(t)
	net := testNetwork(t, sm, 0.6, 0.8)
	birth, err := NewPositiveParameter("birth", 2)
	require.NoError(t, err)
	death, err := NewParameter("death", 0, math.Inf(1), 0)
	require.NoError(t, err)
	p, err := InitBirthDeathPrior(net, birth, death, 1)
	require.NoError(t, err)
	assert.InDelta(t, math.Log(2)-4, p.LogLikelihood(), 1e-12)

	require.NoError(t, birth.SetValue(0, 1))
	assert.InDelta(t, -2, p.LogLikelihood(), 1e-12)

	require.NoError(t, net.SetDiploidHeight(net.Diploid().Root, 1.5))
	assert.InDelta(t, -3, p.LogLikelihood(), 1e-12)

	_, err = InitBirthDeathPrior(net, birth, death, 1.5)
	assert.Error(t, err)
}
