// Package testutil provides shared test utilities and fixtures.
//
// This package centralises common test helpers to reduce code duplication
// across test files and improve test maintainability.
package testutil

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/banshee-data/footprint/internal/footprint/space"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// AssertErrorIs fails the test unless errors.Is(err, target).
func AssertErrorIs(t *testing.T, err, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("error = %v, want %v", err, target)
	}
}

// AssertArea checks an area within an absolute tolerance.
func AssertArea(t *testing.T, got, want, tol float64) {
	t.Helper()
	if math.IsNaN(got) || math.Abs(got-want) > tol {
		t.Errorf("area = %v, want %v (±%v)", got, want, tol)
	}
}

// InstanceNames returns n instance names that sort in creation order.
func InstanceNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("inst-%03d", i)
	}
	return names
}

// BlobFeatures generates dim-dimensional features for n instances scattered
// around blobs well separated centres. The output is fully determined by
// seed.
func BlobFeatures(seed int64, n, dim, blobs int) map[string][]float64 {
	rng := rand.New(rand.NewSource(seed))
	centres := make([][]float64, blobs)
	for b := range centres {
		centres[b] = make([]float64, dim)
		for d := range centres[b] {
			centres[b][d] = float64(b*10) + rng.Float64()
		}
	}

	out := make(map[string][]float64, n)
	for i, name := range InstanceNames(n) {
		c := centres[i%blobs]
		f := make([]float64, dim)
		for d := range f {
			f[d] = c[d] + rng.NormFloat64()
		}
		out[name] = f
	}
	return out
}

// RandomCosts draws a cost in [1, 10) for every (config, instance) pair.
func RandomCosts(seed int64, instances []string, configs ...space.ConfigID) map[space.ConfigID]map[string]float64 {
	rng := rand.New(rand.NewSource(seed))
	sorted := append([]string(nil), instances...)
	sort.Strings(sorted)

	out := make(map[space.ConfigID]map[string]float64, len(configs))
	for _, cfg := range configs {
		row := make(map[string]float64, len(sorted))
		for _, inst := range sorted {
			row[inst] = 1 + 9*rng.Float64()
		}
		out[cfg] = row
	}
	return out
}
