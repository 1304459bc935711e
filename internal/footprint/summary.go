package footprint

import (
	"github.com/banshee-data/footprint/internal/footprint/label"
	"github.com/banshee-data/footprint/internal/footprint/space"
)

// ClusterStat counts the good instances of one configuration in one
// cluster.
type ClusterStat struct {
	Cluster   int
	Instances int
	Good      int
}

// ClusterSummary reports, per cluster in id order, how many of its
// instances cfg labels good at the current epsilon.
func (f *Footprint) ClusterSummary(cfg ConfigID) ([]ClusterStat, error) {
	labels, err := f.Labels(cfg)
	if err != nil {
		return nil, err
	}
	out := make([]ClusterStat, f.clusters.K)
	for c := range out {
		members := f.clusters.Members[c]
		out[c] = ClusterStat{Cluster: c, Instances: len(members)}
		for _, name := range members {
			if labels[name] == space.Good {
				out[c].Good++
			}
		}
	}
	return out, nil
}

// Sweep counts good instances per configuration at each epsilon without
// touching the cached labels or the current epsilon.
func (f *Footprint) Sweep(epsilons []float64) ([]label.SweepPoint, error) {
	f.mu.Lock()
	table, err := f.tableLocked()
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	// Every row is cached now and the table is not written again.
	return label.Sweep(table, f.configs, f.space.Names(), epsilons, f.cfg.Cutoff)
}
