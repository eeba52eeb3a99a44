package alloppnet

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParameterBounds(t *testing.T) {
	p, err := NewParameter("pops", 0, 10, 1, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Dimension())
	assert.Equal(t, 2., p.Value(1))

	err = p.SetValue(1, 11)
	assert.Equal(t, ErrOutOfBounds, errors.Cause(err))
	assert.Equal(t, ErrOutOfBounds, errors.Cause(p.SetValue(0, math.NaN())))
	assert.Equal(t, []float64{1, 2, 3}, p.Values())

	vals := p.Values()
	vals[0] = 9
	assert.Equal(t, 1., p.Value(0))

	_, err = NewParameter("x", 0, 1, 2)
	assert.Error(t, err)
	_, err = NewPositiveParameter("rate", 0)
	assert.Equal(t, ErrOutOfBounds, errors.Cause(err))
}

func TestParameterNotifiesDependents(t *testing.T) {
	p, err := NewPositiveParameter("rate", 1)
	require.NoError(t, err)
	a, b := new(dirtyCounter), new(dirtyCounter)
	p.AddDependent(a)
	p.AddDependent(b)
	p.AddDependent(a)

	require.NoError(t, p.SetValue(0, 2))
	assert.Error(t, p.SetValue(0, -1))
	assert.Equal(t, 1, a.n)
	assert.Equal(t, 1, b.n)
	assert.Equal(t, 2., p.Value(0))
}
