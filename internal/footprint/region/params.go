package region

import (
	"fmt"
	"math"
	"strings"

	"github.com/banshee-data/footprint/internal/footprint/space"
)

// MinGood is the number of good instances needed to form a single triangle.
// Configurations with fewer good instances have a footprint of zero.
const MinGood = 3

// FallbackPolicy decides what the growing stage does once every remaining
// unassigned instance is bad but at least three are still unassigned.
type FallbackPolicy int

const (
	// FallbackAnyUnassigned keeps growing triangles around uniformly drawn
	// unassigned instances, good or not.
	FallbackAnyUnassigned FallbackPolicy = iota
	// FallbackStopGrowing ends the growing stage; the leftovers stay
	// unassigned.
	FallbackStopGrowing
)

func (f FallbackPolicy) String() string {
	switch f {
	case FallbackAnyUnassigned:
		return "any"
	case FallbackStopGrowing:
		return "stop"
	default:
		return fmt.Sprintf("FallbackPolicy(%d)", int(f))
	}
}

// ParseFallback parses "any" or "stop" (case-insensitive). The empty string
// selects the default.
func ParseFallback(s string) (FallbackPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "any":
		return FallbackAnyUnassigned, nil
	case "stop":
		return FallbackStopGrowing, nil
	default:
		return 0, fmt.Errorf("unknown grow fallback %q (want any or stop): %w", s, space.ErrInvalidInput)
	}
}

// Params are the merge gates of one footprint computation.
type Params struct {
	// DensityThreshold: a merge needs more than this many instances per unit
	// of merged hull area.
	DensityThreshold float64
	// PurityThreshold: a merge needs more than this fraction of good
	// instances in the merged region.
	PurityThreshold float64
	// Fallback is the growing-stage policy once no good instance is left.
	Fallback FallbackPolicy
}

// Validate rejects NaN thresholds and unknown fallback policies.
func (p Params) Validate() error {
	if math.IsNaN(p.DensityThreshold) {
		return fmt.Errorf("density threshold is NaN: %w", space.ErrInvalidInput)
	}
	if math.IsNaN(p.PurityThreshold) {
		return fmt.Errorf("purity threshold is NaN: %w", space.ErrInvalidInput)
	}
	if p.Fallback != FallbackAnyUnassigned && p.Fallback != FallbackStopGrowing {
		return fmt.Errorf("unknown fallback policy %v: %w", p.Fallback, space.ErrInvalidInput)
	}
	return nil
}
