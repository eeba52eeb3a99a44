package alloppnet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortLegLinks(t *testing.T) {
	links := []*LegLink{
		NewLegLink(0, 9, 3.0),
		NewLegLink(1, 9, 1.0),
		NewLegLink(2, 9, 2.0),
	}
	SortLegLinks(links)
	var heights []float64
	for _, l := range links {
		heights = append(heights, l.FootHeight)
	}
	assert.Equal(t, []float64{1.0, 2.0, 3.0}, heights)
}

func TestCompareFootHeight(t *testing.T) {
	a := NewLegLink(0, 1, 2.5)
	b := NewLegLink(7, 3, 2.5)
	assert.Equal(t, 0, CompareFootHeight(a, b))
	assert.Equal(t, 0, CompareFootHeight(b, a))
	assert.Equal(t, -1, CompareFootHeight(NewLegLink(0, 1, 1), b))
	assert.Equal(t, 1, CompareFootHeight(b, NewLegLink(0, 1, 1)))
}

func TestSortLegLinksTiesKeepOrder(t *testing.T) {
	links := []*LegLink{
		NewLegLink(4, 0, 1.0),
		NewLegLink(5, 0, 0.5),
		NewLegLink(6, 0, 1.0),
	}
	SortLegLinks(links)
	assert.Equal(t, 5, links[0].Hip)
	assert.Equal(t, 4, links[1].Hip)
	assert.Equal(t, 6, links[2].Hip)
}

func TestNewFootLinks(t *testing.T) {
	fl := NewFootLinks([]*LegLink{NewLegLink(1, 4, 0.9), NewLegLink(2, 4, 0.3)})
	assert.Equal(t, 4, fl.Foot)
	require.Len(t, fl.Hips, 2)
	for _, l := range fl.Hips {
		assert.Equal(t, fl.Foot, l.Foot)
	}
	assert.Equal(t, 2, fl.Hips[0].Hip)
}

func TestNewFootLinksMismatchedFeet(t *testing.T) {
	assert.Panics(t, func() {
		NewFootLinks([]*LegLink{NewLegLink(1, 4, 0.9), NewLegLink(2, 5, 0.3)})
	})
	assert.Panics(t, func() {
		NewFootLinks(nil)
	})
}

func TestGroupByFoot(t *testing.T) {
	links := []*LegLink{
		NewLegLink(10, 2, 0.7),
		NewLegLink(11, 1, 0.4),
		NewLegLink(12, 2, 0.5),
	}
	feet := GroupByFoot(links)
	require.Len(t, feet, 2)
	assert.Equal(t, 2, feet[0].Foot)
	assert.Equal(t, 12, feet[0].Hips[0].Hip)
	assert.Equal(t, 1, feet[1].Foot)
}

func TestLegLinkDoneLatch(t *testing.T) {
	l := NewLegLink(0, 1, 1.0)
	assert.False(t, l.IsDone())
	l.SetIsDone()
	assert.True(t, l.IsDone())
	l.SetIsDone()
	assert.True(t, l.IsDone())
	SortLegLinks([]*LegLink{l, NewLegLink(2, 1, 0.5)})
	NewFootLinks([]*LegLink{l})
	assert.True(t, l.IsDone())
}

func TestJunctionRejectsDoneLink(t *testing.T) {
	m := &MulLabTree{tree: NewTree()}
	lower := m.add(limbDiploid, ConstantLine(0, 1))
	hip := m.add(limbHip, ConstantLine(0.5, 1))
	l := NewLegLink(hip, lower, 1.0)
	l.SetIsDone()
	assert.Panics(t, func() { m.junction(l, lower, ConstantLine(0, 1)) })
}

func TestTreeLeg(t *testing.T) {
	d := NewDanglingLeg(2.5)
	assert.True(t, d.Dangling())
	assert.Equal(t, uint(0), d.FootUnion.Count())
	assert.Equal(t, 2.5, d.Height)

	sm := testSpeciesMap(t)
	u, err := sm.DiploidUnion("A", "B")
	require.NoError(t, err)
	leg := NewTreeLeg(u, 1.5)
	c := leg.Clone()
	c.FootUnion.Clear(0)
	c.Height = 9
	assert.True(t, leg.FootUnion.Test(0), "clone must not share the bitset")
	assert.Equal(t, 1.5, leg.Height)
	assert.False(t, leg.Dangling())
}
