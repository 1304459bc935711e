package cluster

import (
	"math"
	"math/rand"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/footprint/internal/footprint/geom"
)

// KMeansResult is one k-means partition.
type KMeansResult struct {
	Labels     []int       // cluster id per point, 0..k-1
	Centers    []orb.Point // cluster centres
	Inertia    float64     // sum of squared distances to the assigned centre
	Iterations int         // Lloyd iterations until convergence
}

// KMeans partitions points into k clusters with k-means++ seeding followed by
// Lloyd iterations. Iteration stops after maxIter rounds or once the total
// squared centre shift drops below tol times the mean coordinate variance.
// Empty clusters are re-seeded with the point farthest from its centre.
//
// k must be in [1, len(points)].
func KMeans(points []orb.Point, k int, rng *rand.Rand, maxIter int, tol float64) KMeansResult {
	centers := seedPlusPlus(points, k, rng)
	labels := make([]int, len(points))
	threshold := tol * meanVariance(points)

	res := KMeansResult{Labels: labels, Centers: centers}
	for it := 0; it < maxIter; it++ {
		res.Iterations = it + 1
		assign(points, centers, labels)
		next := recompute(points, labels, k)
		relocateEmpty(points, labels, next)

		shift := 0.0
		for c := range centers {
			shift += planar.DistanceSquared(centers[c], next[c])
		}
		copy(centers, next)
		if shift <= threshold {
			break
		}
	}
	res.Inertia = assign(points, centers, labels)
	return res
}

// seedPlusPlus picks k initial centres: the first uniformly, the rest with
// probability proportional to the squared distance to the closest centre so
// far.
func seedPlusPlus(points []orb.Point, k int, rng *rand.Rand) []orb.Point {
	centers := make([]orb.Point, 0, k)
	centers = append(centers, points[rng.Intn(len(points))])

	d2 := make([]float64, len(points))
	for i, p := range points {
		d2[i] = planar.DistanceSquared(p, centers[0])
	}
	for len(centers) < k {
		total := 0.0
		for _, d := range d2 {
			total += d
		}
		var pick int
		if total == 0 {
			pick = rng.Intn(len(points))
		} else {
			r := rng.Float64() * total
			pick = len(points) - 1
			for i, d := range d2 {
				r -= d
				if r < 0 {
					pick = i
					break
				}
			}
		}
		c := points[pick]
		centers = append(centers, c)
		for i, p := range points {
			if d := planar.DistanceSquared(p, c); d < d2[i] {
				d2[i] = d
			}
		}
	}
	return centers
}

// assign labels every point with its nearest centre and returns the inertia.
func assign(points []orb.Point, centers []orb.Point, labels []int) float64 {
	inertia := 0.0
	for i, p := range points {
		c, _ := geom.Nearest(p, centers)
		labels[i] = c
		inertia += planar.DistanceSquared(p, centers[c])
	}
	return inertia
}

func recompute(points []orb.Point, labels []int, k int) []orb.Point {
	members := make([][]orb.Point, k)
	for i, p := range points {
		members[labels[i]] = append(members[labels[i]], p)
	}
	centers := make([]orb.Point, k)
	for c := range members {
		centers[c] = geom.Mean(members[c])
	}
	return centers
}

// relocateEmpty moves the centre of every empty cluster onto the point that
// is currently worst served by its own centre.
func relocateEmpty(points []orb.Point, labels []int, centers []orb.Point) {
	counts := make([]int, len(centers))
	for _, l := range labels {
		counts[l]++
	}
	taken := make(map[int]bool)
	for c, n := range counts {
		if n > 0 {
			continue
		}
		far, farD := -1, -1.0
		for i, p := range points {
			if taken[i] || counts[labels[i]] <= 1 {
				continue
			}
			if d := planar.DistanceSquared(p, centers[labels[i]]); d > farD {
				far, farD = i, d
			}
		}
		if far < 0 {
			continue
		}
		taken[far] = true
		counts[labels[far]]--
		counts[c]++
		labels[far] = c
		centers[c] = points[far]
	}
}

func meanVariance(points []orb.Point) float64 {
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i], ys[i] = p[0], p[1]
	}
	_, vx := stat.PopMeanVariance(xs, nil)
	_, vy := stat.PopMeanVariance(ys, nil)
	v := (vx + vy) / 2
	if math.IsNaN(v) {
		return 0
	}
	return v
}
