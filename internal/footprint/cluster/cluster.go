package cluster

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/paulmach/orb"

	"github.com/banshee-data/footprint/internal/footprint/space"
)

const (
	// DefaultMinClusters is the smallest cluster count tried.
	DefaultMinClusters = 2
	// DefaultMaxClusters is the largest cluster count tried.
	DefaultMaxClusters = 11
	// DefaultRestarts is the number of k-means++ restarts per k.
	DefaultRestarts = 10
	// DefaultMaxIter caps Lloyd iterations per restart.
	DefaultMaxIter = 300
	// DefaultTol is the relative centre-shift tolerance.
	DefaultTol = 1e-4
)

// Params controls model selection and k-means.
type Params struct {
	MinClusters int
	MaxClusters int
	Restarts    int
	MaxIter     int
	Tol         float64
	Seed        int64
}

// DefaultParams returns the production defaults.
func DefaultParams() Params {
	return Params{
		MinClusters: DefaultMinClusters,
		MaxClusters: DefaultMaxClusters,
		Restarts:    DefaultRestarts,
		MaxIter:     DefaultMaxIter,
		Tol:         DefaultTol,
		Seed:        1,
	}
}

// Validate checks parameter ranges.
func (p Params) Validate() error {
	if p.MinClusters < 2 {
		return fmt.Errorf("MinClusters must be at least 2, got %d", p.MinClusters)
	}
	if p.MaxClusters < p.MinClusters {
		return fmt.Errorf("MaxClusters (%d) must be >= MinClusters (%d)", p.MaxClusters, p.MinClusters)
	}
	if p.Restarts < 1 {
		return fmt.Errorf("Restarts must be positive, got %d", p.Restarts)
	}
	if p.MaxIter < 1 {
		return fmt.Errorf("MaxIter must be positive, got %d", p.MaxIter)
	}
	if p.Tol < 0 || math.IsNaN(p.Tol) {
		return fmt.Errorf("Tol must be non-negative, got %f", p.Tol)
	}
	return nil
}

// Result is the selected partition.
type Result struct {
	K           int              // chosen number of clusters
	Score       float64          // silhouette score of the chosen partition
	Assignments []int            // cluster id per instance, input order
	Members     map[int][]string // cluster id → instance names, input order
	Scores      map[int]float64  // silhouette score per k that was evaluated
}

// Sizes returns the number of instances per cluster id.
func (r *Result) Sizes() map[int]int {
	out := make(map[int]int, len(r.Members))
	for c, m := range r.Members {
		out[c] = len(m)
	}
	return out
}

// Cluster selects the cluster count with the best silhouette score and
// returns that partition. names and points are aligned.
//
// k values that cannot produce a valid silhouette score (more clusters than
// distinct points, or k >= len(points)) are skipped. Fewer than MinClusters
// distinct points is reported as space.ErrInsufficientData.
func Cluster(names []string, points []orb.Point, p Params) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("cluster params: %w: %w", space.ErrInvalidInput, err)
	}
	if len(names) != len(points) {
		return nil, fmt.Errorf("%d names but %d points: %w", len(names), len(points), space.ErrInvalidInput)
	}
	if err := space.CheckSpan(points); err != nil {
		return nil, err
	}
	distinct := countDistinct(points)
	if distinct < p.MinClusters {
		return nil, fmt.Errorf("%d distinct instances, need at least %d: %w", distinct, p.MinClusters, space.ErrInsufficientData)
	}

	rng := rand.New(rand.NewSource(p.Seed))
	res := &Result{Score: math.Inf(-1), Scores: make(map[int]float64)}
	for k := p.MinClusters; k <= p.MaxClusters; k++ {
		if k > distinct || k >= len(points) {
			break
		}
		km := bestOf(points, k, rng, p)
		score := Silhouette(points, km.Labels, k)
		res.Scores[k] = score
		if score > res.Score {
			res.K = k
			res.Score = score
			res.Assignments = append([]int(nil), km.Labels...)
		}
	}
	if res.K == 0 {
		return nil, fmt.Errorf("%d instances admit no valid partition: %w", len(points), space.ErrInsufficientData)
	}

	res.Members = make(map[int][]string, res.K)
	for c := 0; c < res.K; c++ {
		res.Members[c] = []string{}
	}
	for i, c := range res.Assignments {
		res.Members[c] = append(res.Members[c], names[i])
	}
	return res, nil
}

// bestOf runs p.Restarts k-means restarts and keeps the lowest inertia.
func bestOf(points []orb.Point, k int, rng *rand.Rand, p Params) KMeansResult {
	var best KMeansResult
	for r := 0; r < p.Restarts; r++ {
		km := KMeans(points, k, rng, p.MaxIter, p.Tol)
		if r == 0 || km.Inertia < best.Inertia {
			best = km
		}
	}
	return best
}

func countDistinct(points []orb.Point) int {
	seen := make(map[orb.Point]struct{}, len(points))
	for _, p := range points {
		seen[p] = struct{}{}
	}
	return len(seen)
}
