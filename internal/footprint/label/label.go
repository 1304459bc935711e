package label

import (
	"fmt"
	"math"

	"github.com/banshee-data/footprint/internal/footprint/space"
)

const (
	// DefaultEpsilon is the default best/cost ratio needed to count as good.
	DefaultEpsilon = 0.95
)

// Params are the labelling thresholds.
type Params struct {
	// Epsilon in (0, 1]: minimum best/cost ratio for a good label.
	Epsilon float64
	// Cutoff marks timeouts: costs at or above it are never good (unless
	// zero). +Inf disables the check.
	Cutoff float64
}

// DefaultParams returns epsilon 0.95 and no cutoff.
func DefaultParams() Params {
	return Params{Epsilon: DefaultEpsilon, Cutoff: math.Inf(1)}
}

// Validate checks parameter ranges.
func (p Params) Validate() error {
	if !(p.Epsilon > 0 && p.Epsilon <= 1) {
		return fmt.Errorf("epsilon must be in (0, 1], got %v: %w", p.Epsilon, space.ErrInvalidInput)
	}
	if !(p.Cutoff > 0) {
		return fmt.Errorf("cutoff must be positive, got %v: %w", p.Cutoff, space.ErrInvalidInput)
	}
	return nil
}

// Classify labels one (configuration, instance) cost against the best cost
// on that instance. A zero cost is always good, which also keeps the ratio
// from dividing by zero.
func Classify(cost, best float64, p Params) space.Label {
	if cost == 0 {
		return space.Good
	}
	if best/cost >= p.Epsilon && cost < p.Cutoff {
		return space.Good
	}
	return space.Bad
}

// Best returns, per instance, the minimum cost over configs. Every
// (config, instance) pair must be present in perf and hold a non-negative
// number.
func Best(perf Table, configs []space.ConfigID, instances []string) (map[string]float64, error) {
	if len(configs) == 0 {
		return nil, fmt.Errorf("no configurations to compare: %w", space.ErrInvalidInput)
	}
	best := make(map[string]float64, len(instances))
	for _, inst := range instances {
		b := math.Inf(1)
		for _, cfg := range configs {
			c, err := perf.Cost(cfg, inst)
			if err != nil {
				return nil, err
			}
			if err := checkCost(cfg, inst, c); err != nil {
				return nil, err
			}
			b = math.Min(b, c)
		}
		best[inst] = b
	}
	return best, nil
}

func checkCost(cfg space.ConfigID, inst string, c float64) error {
	if math.IsNaN(c) || c < 0 {
		return fmt.Errorf("configuration %q on instance %q has cost %v: %w", cfg, inst, c, space.ErrInvalidInput)
	}
	return nil
}

// LabelAll labels every (configuration, instance) pair relative to the best
// cost per instance across all configs.
func LabelAll(perf Table, configs []space.ConfigID, instances []string, p Params) (map[space.ConfigID]space.LabelSet, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return labelAll(perf, configs, instances, p)
}

func labelAll(perf Table, configs []space.ConfigID, instances []string, p Params) (map[space.ConfigID]space.LabelSet, error) {
	best, err := Best(perf, configs, instances)
	if err != nil {
		return nil, err
	}

	out := make(map[space.ConfigID]space.LabelSet, len(configs))
	for _, cfg := range configs {
		ls := make(space.LabelSet, len(instances))
		for _, inst := range instances {
			// Presence was checked by Best.
			ls[inst] = Classify(perf[cfg][inst], best[inst], p)
		}
		out[cfg] = ls
	}
	return out, nil
}

// SweepPoint is the number of good instances per configuration at one
// epsilon.
type SweepPoint struct {
	Epsilon float64
	Good    map[space.ConfigID]int
}

// Sweep labels the instances once per epsilon, keeping the cutoff fixed, and
// reports how many instances each configuration wins at each level. Unlike
// Params, a sweep accepts epsilon 0, where every cost below the cutoff is
// good.
func Sweep(perf Table, configs []space.ConfigID, instances []string, epsilons []float64, cutoff float64) ([]SweepPoint, error) {
	out := make([]SweepPoint, 0, len(epsilons))
	for _, e := range epsilons {
		p := Params{Epsilon: e, Cutoff: cutoff}
		if e == 0 {
			// Validate the cutoff alone.
			p.Epsilon = 1
		}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("sweep at epsilon %v: %w", e, err)
		}
		p.Epsilon = e
		labels, err := labelAll(perf, configs, instances, p)
		if err != nil {
			return nil, fmt.Errorf("sweep at epsilon %v: %w", e, err)
		}
		pt := SweepPoint{Epsilon: e, Good: make(map[space.ConfigID]int, len(configs))}
		for cfg, ls := range labels {
			pt.Good[cfg] = ls.CountGood()
		}
		out = append(out, pt)
	}
	return out, nil
}
