package geom

import (
	"fmt"
	"math"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/banshee-data/footprint/internal/footprint/space"
)

// hullRelEpsilon is the relative area below which a hull is treated as flat.
// It is scaled by the squared bounding-box diagonal so that the check does
// not depend on the units of the reduced feature space.
const hullRelEpsilon = 1e-12

// ConvexHull returns the convex hull of points as a closed, counter-clockwise
// orb.Ring (first point repeated at the end). Collinear boundary points are
// dropped.
//
// It fails with space.ErrDegenerateGeometry when fewer than three distinct
// points are given or when all points are (numerically) collinear.
//
// Algorithm: Andrew's monotone chain, O(n log n).
func ConvexHull(points []orb.Point) (orb.Ring, error) {
	pts := uniqueSorted(points)
	if len(pts) < 3 {
		return nil, fmt.Errorf("hull of %d distinct points: %w", len(pts), space.ErrDegenerateGeometry)
	}

	hull := make([]orb.Point, 0, 2*len(pts))
	// Lower chain.
	for _, p := range pts {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	// Upper chain.
	lower := len(hull) + 1
	for i := len(pts) - 2; i >= 0; i-- {
		p := pts[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	// The last point equals the first one, which closes the ring.
	if len(hull) < 4 {
		return nil, fmt.Errorf("collinear point set: %w", space.ErrDegenerateGeometry)
	}

	ring := orb.Ring(hull)
	b := orb.MultiPoint(pts).Bound()
	dx, dy := b.Max[0]-b.Min[0], b.Max[1]-b.Min[1]
	if area := ringArea(ring); area <= hullRelEpsilon*(dx*dx+dy*dy) {
		return nil, fmt.Errorf("flat hull (area %g): %w", area, space.ErrDegenerateGeometry)
	}
	return ring, nil
}

// HullArea returns the area enclosed by the convex hull of points.
func HullArea(points []orb.Point) (float64, error) {
	ring, err := ConvexHull(points)
	if err != nil {
		return 0, err
	}
	return ringArea(ring), nil
}

func ringArea(r orb.Ring) float64 {
	return math.Abs(planar.Area(r))
}

// cross is the z component of (a→b) × (a→c); positive for a left turn.
func cross(a, b, c orb.Point) float64 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}

func uniqueSorted(points []orb.Point) []orb.Point {
	pts := make([]orb.Point, len(points))
	copy(pts, points)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i][0] != pts[j][0] {
			return pts[i][0] < pts[j][0]
		}
		return pts[i][1] < pts[j][1]
	})
	out := pts[:0]
	for _, p := range pts {
		if len(out) > 0 && p.Equal(out[len(out)-1]) {
			continue
		}
		out = append(out, p)
	}
	return out
}
