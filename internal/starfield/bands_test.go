package starfield

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBandCountsPoles(t *testing.T) {
	c := &PointCloud{radius: 1, points: []r3.Vector{
		{Z: -1},
		{Z: 1},
		{X: 1},
		{Y: -1},
		{}, // origin is skipped
	}}
	counts, err := BandCounts(c, 4)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0, 2, 1}, counts)
}

func TestBandCountsTotal(t *testing.T) {
	c, err := Generate(999, 10, NewSource(9))
	require.NoError(t, err)
	counts, err := BandCounts(c, 7)
	require.NoError(t, err)
	total := 0
	for _, n := range counts {
		total += n
	}
	assert.Equal(t, 999, total)
}

func TestBandCountsInvalid(t *testing.T) {
	c, err := Generate(1, 10, NewSource(9))
	require.NoError(t, err)
	_, err = BandCounts(c, 0)
	require.ErrorIs(t, err, ErrInvalidParameter)
}
