package geom

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Mean returns the coordinate-wise mean of points. The mean of an empty set
// is the origin.
func Mean(points []orb.Point) orb.Point {
	if len(points) == 0 {
		return orb.Point{}
	}
	var sx, sy float64
	for _, p := range points {
		sx += p[0]
		sy += p[1]
	}
	n := float64(len(points))
	return orb.Point{sx / n, sy / n}
}

// Nearest returns the index in candidates of the point closest to p.
// Ties keep the earliest candidate. ok is false when candidates is empty.
func Nearest(p orb.Point, candidates []orb.Point) (idx int, ok bool) {
	best := math.Inf(1)
	idx = -1
	for i, c := range candidates {
		if d := planar.DistanceSquared(p, c); idx < 0 || d < best {
			best, idx = d, i
		}
	}
	return idx, idx >= 0
}

// NearestTwo returns the indices in candidates of the two points closest to
// p, nearest first. Ties keep candidate order. ok is false when fewer than two
// candidates are given.
func NearestTwo(p orb.Point, candidates []orb.Point) (first, second int, ok bool) {
	if len(candidates) < 2 {
		return -1, -1, false
	}
	d1, d2 := math.Inf(1), math.Inf(1)
	first, second = -1, -1
	for i, c := range candidates {
		d := planar.DistanceSquared(p, c)
		switch {
		case first < 0 || d < d1:
			d2, second = d1, first
			d1, first = d, i
		case second < 0 || d < d2:
			d2, second = d, i
		}
	}
	return first, second, true
}
