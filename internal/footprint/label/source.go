package label

import (
	"fmt"

	"github.com/banshee-data/footprint/internal/footprint/space"
)

// CostSource answers, for one configuration, the cost on every instance in a
// single lookup. Costs are non-negative; lower is better.
type CostSource interface {
	Costs(cfg space.ConfigID) (map[string]float64, error)
}

// CostFunc adapts a function to CostSource.
type CostFunc func(cfg space.ConfigID) (map[string]float64, error)

// Costs calls f(cfg).
func (f CostFunc) Costs(cfg space.ConfigID) (map[string]float64, error) { return f(cfg) }

// Table is an in-memory cost lookup: configuration → instance → cost. It
// implements CostSource.
type Table map[space.ConfigID]map[string]float64

// Costs returns a copy of the row for cfg.
func (t Table) Costs(cfg space.ConfigID) (map[string]float64, error) {
	row, ok := t[cfg]
	if !ok {
		return nil, fmt.Errorf("no costs for configuration %q: %w", cfg, space.ErrMissingData)
	}
	out := make(map[string]float64, len(row))
	for k, v := range row {
		out[k] = v
	}
	return out, nil
}

// Cost returns a single entry, reporting a MissingDataError when absent.
func (t Table) Cost(cfg space.ConfigID, instance string) (float64, error) {
	v, ok := t[cfg][instance]
	if !ok {
		return 0, &space.MissingDataError{Config: cfg, Instance: instance}
	}
	return v, nil
}
