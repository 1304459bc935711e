package geom

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/footprint/internal/footprint/space"
)

func TestHullArea_Triangle(t *testing.T) {
	area, err := HullArea([]orb.Point{{0, 0}, {1, 0}, {0, 1}})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, area, 1e-12)
}

func TestHullArea_SquareWithInteriorPoints(t *testing.T) {
	pts := []orb.Point{
		{0, 0}, {2, 0}, {2, 2}, {0, 2},
		{1, 1}, {0.5, 1.5}, {1, 0}, // interior and on-edge points
	}
	area, err := HullArea(pts)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, area, 1e-12)

	ring, err := ConvexHull(pts)
	require.NoError(t, err)
	assert.Len(t, ring, 5, "four corners plus closing point")
	assert.True(t, ring.Closed())
	assert.Equal(t, orb.CCW, ring.Orientation())
}

func TestHullArea_OrderIndependent(t *testing.T) {
	a := []orb.Point{{3, 1}, {0, 0}, {1, 4}, {2, 2}, {5, 5}}
	b := []orb.Point{{5, 5}, {2, 2}, {1, 4}, {0, 0}, {3, 1}}

	areaA, err := HullArea(a)
	require.NoError(t, err)
	areaB, err := HullArea(b)
	require.NoError(t, err)
	assert.Equal(t, areaA, areaB)
}

func TestConvexHull_Degenerate(t *testing.T) {
	tests := []struct {
		name   string
		points []orb.Point
	}{
		{"empty", nil},
		{"single", []orb.Point{{1, 1}}},
		{"two", []orb.Point{{0, 0}, {1, 1}}},
		{"duplicates", []orb.Point{{1, 1}, {1, 1}, {1, 1}}},
		{"collinear", []orb.Point{{0, 0}, {1, 1}, {2, 2}, {3, 3}}},
		{"vertical", []orb.Point{{0, 0}, {0, 1}, {0, 5}}},
		{"nearly collinear", []orb.Point{{0, 0}, {1e6, 0}, {2e6, 1e-9}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ConvexHull(tt.points)
			assert.ErrorIs(t, err, space.ErrDegenerateGeometry)

			area, err := HullArea(tt.points)
			assert.ErrorIs(t, err, space.ErrDegenerateGeometry)
			assert.Zero(t, area)
		})
	}
}

func TestConvexHull_DoesNotMutateInput(t *testing.T) {
	pts := []orb.Point{{2, 2}, {0, 0}, {2, 0}}
	orig := append([]orb.Point(nil), pts...)
	_, err := ConvexHull(pts)
	require.NoError(t, err)
	assert.Equal(t, orig, pts)
}

func TestHullArea_ScaleInvariantDegeneracy(t *testing.T) {
	// A genuine but tiny triangle must not be mistaken for a flat one.
	area, err := HullArea([]orb.Point{{0, 0}, {1e-4, 0}, {0, 1e-4}})
	require.NoError(t, err)
	assert.InDelta(t, 5e-9, area, 1e-15)
	assert.False(t, math.IsNaN(area))
}
