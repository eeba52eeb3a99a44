package alloppnet

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat/distuv"
)

func TestNetworkPriorLogLikelihood(t *testing.T) {
	assert.InDelta(t, math.Log(6)+3*math.Log(2)-1.2,
		NetworkPriorLogLikelihood(3, 2, []float64{0.1, 0.2, 0.3}), 1e-12)
	assert.InDelta(t, math.Log(2)-1, NetworkPriorLogLikelihood(1, 2, []float64{0.5}), 1e-12)
	assert.Equal(t, 0., NetworkPriorLogLikelihood(0, 2, nil))

	assert.Panics(t, func() { NetworkPriorLogLikelihood(1, 0, []float64{0.5}) })
	assert.Panics(t, func() { NetworkPriorLogLikelihood(1, -1, []float64{0.5}) })
}

func TestNetworkPriorIsExponentialPerHeight(t *testing.T) {
	heights := []float64{0.3, 1.1}
	exp := distuv.Exponential{Rate: 1.7}
	want := math.Log(2)
	for _, h := range heights {
		want += exp.LogProb(h)
	}
	assert.InDelta(t, want, NetworkPriorLogLikelihood(2, 1.7, heights), 1e-12)
}

func TestNetworkPriorFollowsRate(t *testing.T) {
	sm := testSpeciesMap(t)
	net := testNetwork(t, sm, 0.6, 0.8)
	rate, err := NewPositiveParameter("hybridRate", 2)
	require.NoError(t, err)
	p := InitNetworkPrior(net, rate, Years)
	assert.InDelta(t, math.Log(2)-1, p.LogLikelihood(), 1e-12)

	require.NoError(t, rate.SetValue(0, 1))
	assert.InDelta(t, -0.5, p.LogLikelihood(), 1e-12)

	require.NoError(t, net.SetHybridHeight(0, 0.4))
	assert.InDelta(t, -0.4, p.LogLikelihood(), 1e-12)
	assert.Equal(t, "years", p.Units.String())
}

func TestParseUnits(t *testing.T) {
	u, err := ParseUnits("Months")
	require.NoError(t, err)
	assert.Equal(t, Months, u)
	_, err = ParseUnits("fortnights")
	assert.Error(t, err)
	assert.Equal(t, "Units(9)", Units(9).String())
}

func TestPopSizePrior(t *testing.T) {
	sm := testSpeciesMap(t)
	net := testNetwork(t, sm, 0.6, 0.8)
	scale, err := NewPositiveParameter("popScale", 1)
	require.NoError(t, err)
	p := InitPopSizePrior(net, 2, scale)
	assert.InDelta(t, -14, p.LogLikelihood(), 1e-12)

	require.NoError(t, scale.SetValue(0, 2))
	assert.InDelta(t, 14*(-math.Log(4)-0.5), p.LogLikelihood(), 1e-12)

	require.NoError(t, net.SetLegPop(0, 0, 2))
	want := 13*(-math.Log(4)-0.5) + (math.Log(2) - math.Log(4) - 1)
	assert.InDelta(t, want, p.LogLikelihood(), 1e-12)

	bad := InitPopSizePrior(net, 0, scale)
	assert.Panics(t, func() { bad.LogLikelihood() })
}
