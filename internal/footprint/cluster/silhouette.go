package cluster

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"gonum.org/v1/gonum/stat"
)

// Silhouette returns the mean silhouette coefficient of a partition of points
// into k clusters. Points alone in their cluster score 0. The score is only
// meaningful for 2 <= k <= len(points)-1.
//
// Complexity: O(n²).
func Silhouette(points []orb.Point, labels []int, k int) float64 {
	n := len(points)
	if n == 0 || k < 2 {
		return 0
	}
	sizes := make([]int, k)
	for _, l := range labels {
		sizes[l]++
	}

	scores := make([]float64, n)
	sums := make([]float64, k)
	for i, p := range points {
		for c := range sums {
			sums[c] = 0
		}
		for j, q := range points {
			if i != j {
				sums[labels[j]] += planar.Distance(p, q)
			}
		}

		own := labels[i]
		if sizes[own] <= 1 {
			continue
		}
		a := sums[own] / float64(sizes[own]-1)
		b := math.Inf(1)
		for c := 0; c < k; c++ {
			if c == own || sizes[c] == 0 {
				continue
			}
			if m := sums[c] / float64(sizes[c]); m < b {
				b = m
			}
		}
		if math.IsInf(b, 1) {
			continue
		}
		if den := math.Max(a, b); den > 0 {
			scores[i] = (b - a) / den
		}
	}
	return stat.Mean(scores, nil)
}
