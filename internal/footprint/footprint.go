package footprint

import (
	"fmt"
	"sort"
	"sync"

	"github.com/paulmach/orb"

	"github.com/banshee-data/footprint/internal/config"
	"github.com/banshee-data/footprint/internal/footprint/cluster"
	"github.com/banshee-data/footprint/internal/footprint/label"
	"github.com/banshee-data/footprint/internal/footprint/reduce"
	"github.com/banshee-data/footprint/internal/footprint/space"
	"github.com/banshee-data/footprint/internal/monitoring"
	"github.com/banshee-data/footprint/internal/timeutil"
)

// Footprint compares a fixed set of configurations over a fixed instance
// set. Positions and clusters are immutable after New; the cost and label
// caches are guarded by mu, so all methods are safe for concurrent use.
type Footprint struct {
	costs     label.CostSource
	configs   []ConfigID // sorted
	display   map[ConfigID]string
	space     *space.Space
	clusters  *cluster.Result
	cfg       EngineConfig
	outputDir string
	clock     timeutil.Clock

	mu      sync.Mutex
	perf    label.Table                 // rows fetched so far
	epsilon float64                     // epsilon of the cached labels
	labels  map[ConfigID]space.LabelSet // nil until first use
}

// New reduces features to 2-D positions, clusters the instances and
// returns a Footprint with empty caches. features maps instance names to
// equal-length vectors; algorithms maps each configuration to a display
// name. Instances are ordered by name.
func New(costs label.CostSource, features map[string][]float64, algorithms map[ConfigID]string, opts ...Option) (*Footprint, error) {
	if costs == nil {
		return nil, fmt.Errorf("nil cost source: %w", ErrInvalidInput)
	}
	if len(algorithms) == 0 {
		return nil, fmt.Errorf("no configurations: %w", ErrInvalidInput)
	}
	if len(features) == 0 {
		return nil, fmt.Errorf("no instances: %w", ErrInvalidInput)
	}

	ec := EngineConfigFromTuning(config.EmptyTuningConfig())
	st := settings{clock: timeutil.RealClock{}}
	for _, opt := range opts {
		opt(&ec, &st)
	}
	if err := ec.Validate(); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(features))
	for name := range features {
		names = append(names, name)
	}
	sort.Strings(names)
	rows := make([][]float64, len(names))
	for i, name := range names {
		rows[i] = features[name]
	}

	stop := monitoring.Timed(fmt.Sprintf("footprint: reduce %d instances", len(names)))
	points, err := reduce.Reduce(rows)
	stop()
	if err != nil {
		return nil, fmt.Errorf("reduce features: %w", err)
	}
	sp, err := space.NewSpace(names, points)
	if err != nil {
		return nil, err
	}

	stop = monitoring.Timed("footprint: cluster instances")
	cl, err := cluster.Cluster(names, points, ec.Cluster)
	stop()
	if err != nil {
		return nil, fmt.Errorf("cluster instances: %w", err)
	}
	monitoring.Logf("footprint: %d instances in %d clusters (silhouette %.3f), %d configurations",
		len(names), cl.K, cl.Score, len(algorithms))

	f := &Footprint{
		costs:     costs,
		display:   make(map[ConfigID]string, len(algorithms)),
		space:     sp,
		clusters:  cl,
		cfg:       ec,
		outputDir: st.outputDir,
		clock:     st.clock,
		perf:      make(label.Table, len(algorithms)),
		epsilon:   ec.Epsilon,
	}
	for id, name := range algorithms {
		f.configs = append(f.configs, id)
		f.display[id] = name
	}
	sort.Slice(f.configs, func(i, j int) bool { return f.configs[i] < f.configs[j] })
	return f, nil
}

// Config returns the effective configuration.
func (f *Footprint) Config() EngineConfig { return f.cfg }

// Configs returns the configuration ids in sorted order.
func (f *Footprint) Configs() []ConfigID {
	return append([]ConfigID(nil), f.configs...)
}

// DisplayName returns the display name given at construction, or the id
// itself for unknown configurations.
func (f *Footprint) DisplayName(cfg ConfigID) string {
	if name, ok := f.display[cfg]; ok {
		return name
	}
	return string(cfg)
}

// Instances returns the instance names in space order.
func (f *Footprint) Instances() []string { return f.space.Names() }

// Positions returns the reduced 2-D position of every instance.
func (f *Footprint) Positions() map[string]orb.Point { return f.space.Positions() }

// Clusters returns cluster id → member names.
func (f *Footprint) Clusters() map[int][]string {
	out := make(map[int][]string, len(f.clusters.Members))
	for c, m := range f.clusters.Members {
		out[c] = append([]string(nil), m...)
	}
	return out
}

// OutputDir returns the directory set with WithOutputDir.
func (f *Footprint) OutputDir() string { return f.outputDir }

func (f *Footprint) known(cfg ConfigID) error {
	if _, ok := f.display[cfg]; !ok {
		return fmt.Errorf("unknown configuration %q: %w", cfg, ErrInvalidInput)
	}
	return nil
}

// Performance returns the cost of cfg on instance. The first access for a
// configuration fetches all of its costs in one lookup.
func (f *Footprint) Performance(cfg ConfigID, instance string) (float64, error) {
	if err := f.known(cfg); err != nil {
		return 0, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fetchLocked(cfg); err != nil {
		return 0, err
	}
	return f.perf.Cost(cfg, instance)
}

func (f *Footprint) fetchLocked(cfg ConfigID) error {
	if _, ok := f.perf[cfg]; ok {
		return nil
	}
	row, err := f.costs.Costs(cfg)
	if err != nil {
		return fmt.Errorf("costs of %q: %w", cfg, err)
	}
	cp := make(map[string]float64, len(row))
	for k, v := range row {
		cp[k] = v
	}
	f.perf[cfg] = cp
	return nil
}

// tableLocked returns the cached costs of every configuration, fetching
// any that are missing.
func (f *Footprint) tableLocked() (label.Table, error) {
	for _, cfg := range f.configs {
		if err := f.fetchLocked(cfg); err != nil {
			return nil, err
		}
	}
	return f.perf, nil
}

// Epsilon returns the epsilon that Labels and Footprint currently use.
func (f *Footprint) Epsilon() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.epsilon
}

// LabelInstances relabels every configuration at epsilon and makes it the
// current epsilon. On error the previous labels stay in place.
func (f *Footprint) LabelInstances(epsilon float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.labelLocked(epsilon)
}

func (f *Footprint) labelLocked(epsilon float64) error {
	table, err := f.tableLocked()
	if err != nil {
		return err
	}
	stop := monitoring.Timed(fmt.Sprintf("footprint: label at epsilon %v", epsilon))
	labels, err := label.LabelAll(table, f.configs, f.space.Names(), label.Params{Epsilon: epsilon, Cutoff: f.cfg.Cutoff})
	stop()
	if err != nil {
		return err
	}
	f.epsilon = epsilon
	f.labels = labels
	return nil
}

func (f *Footprint) ensureLabelsLocked() error {
	if f.labels != nil {
		return nil
	}
	return f.labelLocked(f.epsilon)
}

// Labels returns a copy of the labels of cfg at the current epsilon,
// computing them on first use.
func (f *Footprint) Labels(cfg ConfigID) (space.LabelSet, error) {
	if err := f.known(cfg); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.ensureLabelsLocked(); err != nil {
		return nil, err
	}
	out := make(space.LabelSet, len(f.labels[cfg]))
	for k, v := range f.labels[cfg] {
		out[k] = v
	}
	return out, nil
}

// indexedLabels returns cfg's labels aligned with the space, plus the
// epsilon they were computed at.
func (f *Footprint) indexedLabels(cfg ConfigID) ([]space.Label, float64, error) {
	if err := f.known(cfg); err != nil {
		return nil, 0, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.ensureLabelsLocked(); err != nil {
		return nil, 0, err
	}
	idx, err := f.space.Indexed(cfg, f.labels[cfg])
	return idx, f.epsilon, err
}
