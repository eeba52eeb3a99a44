package alloppnet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatistics(t *testing.T) {
	sm := testSpeciesMap(t)
	net := testNetwork(t, sm, 0.6, 0.8)
	stats := Statistics(net)
	require.Len(t, stats, 4)

	got := make(map[string][]float64)
	for _, s := range stats {
		for i := 0; i < s.Dimension(); i++ {
			got[s.Name()] = append(got[s.Name()], s.Value(i))
		}
	}
	assert.Equal(t, map[string][]float64{
		"hybridizations": {1},
		"danglingLegs":   {0},
		"networkHeight":  {1},
		"hybridHeight":   {0.5},
	}, got)

	require.NoError(t, net.SetLegFoot(0, 0, NewDanglingLeg(1.4)))
	assert.Equal(t, 1., DanglingLegCount{net}.Value(0))
	assert.Equal(t, 1.4, NetworkHeight{net}.Value(0))
}
