package footprint

import (
	"fmt"

	"github.com/banshee-data/footprint/internal/config"
	"github.com/banshee-data/footprint/internal/footprint/cluster"
	"github.com/banshee-data/footprint/internal/footprint/label"
	"github.com/banshee-data/footprint/internal/footprint/region"
	"github.com/banshee-data/footprint/internal/monitoring"
	"github.com/banshee-data/footprint/internal/timeutil"
)

// EngineConfig holds every tunable of a Footprint.
type EngineConfig struct {
	// Labelling
	Epsilon float64 // initial epsilon, replaced by LabelInstances
	Cutoff  float64 // costs at or above are timeouts; +Inf disables

	// Region engine
	DensityThreshold float64 // gates used by ComputeAllDefaults
	PurityThreshold  float64
	Fallback         region.FallbackPolicy
	Seed             int64

	Cluster cluster.Params
}

// DefaultEngineConfig returns engine configuration loaded from the
// canonical tuning defaults file (config/tuning.defaults.json).
// Panics if the file cannot be found; intended for tests and binaries
// that have already validated config availability.
func DefaultEngineConfig() EngineConfig {
	cfg := config.MustLoadDefaultConfig()
	return EngineConfigFromTuning(cfg)
}

// EngineConfigFromTuning builds an EngineConfig from a loaded TuningConfig.
// Use this in production code where the TuningConfig is already loaded.
func EngineConfigFromTuning(cfg *config.TuningConfig) EngineConfig {
	fallback, err := region.ParseFallback(cfg.GetGrowFallback())
	if err != nil {
		monitoring.Logf("footprint: %v; using %v", err, region.FallbackAnyUnassigned)
		fallback = region.FallbackAnyUnassigned
	}
	return EngineConfig{
		Epsilon:          cfg.GetEpsilon(),
		Cutoff:           cfg.GetCutoff(),
		DensityThreshold: cfg.GetDensityThreshold(),
		PurityThreshold:  cfg.GetPurityThreshold(),
		Fallback:         fallback,
		Seed:             cfg.GetSeed(),
		Cluster: cluster.Params{
			MinClusters: cfg.GetMinClusters(),
			MaxClusters: cfg.GetMaxClusters(),
			Restarts:    cfg.GetKMeansRestarts(),
			MaxIter:     cfg.GetKMeansMaxIter(),
			Tol:         cfg.GetKMeansTol(),
			Seed:        cfg.GetSeed(),
		},
	}
}

// Validate checks every field.
func (c EngineConfig) Validate() error {
	if err := (label.Params{Epsilon: c.Epsilon, Cutoff: c.Cutoff}).Validate(); err != nil {
		return err
	}
	rp := region.Params{DensityThreshold: c.DensityThreshold, PurityThreshold: c.PurityThreshold, Fallback: c.Fallback}
	if err := rp.Validate(); err != nil {
		return err
	}
	if err := c.Cluster.Validate(); err != nil {
		return fmt.Errorf("cluster params: %w: %w", ErrInvalidInput, err)
	}
	return nil
}

// Option customises New.
type Option func(*EngineConfig, *settings)

type settings struct {
	outputDir string
	clock     timeutil.Clock
}

// WithEngineConfig replaces the whole configuration. Options after it still
// apply on top.
func WithEngineConfig(c EngineConfig) Option {
	return func(ec *EngineConfig, _ *settings) { *ec = c }
}

// WithCutoff sets the timeout cost.
func WithCutoff(cutoff float64) Option {
	return func(ec *EngineConfig, _ *settings) { ec.Cutoff = cutoff }
}

// WithGates sets the density and purity thresholds used by
// ComputeAllDefaults.
func WithGates(density, purity float64) Option {
	return func(ec *EngineConfig, _ *settings) {
		ec.DensityThreshold = density
		ec.PurityThreshold = purity
	}
}

// WithSeed sets the seed of both the region engine and the clusterer.
func WithSeed(seed int64) Option {
	return func(ec *EngineConfig, _ *settings) {
		ec.Seed = seed
		ec.Cluster.Seed = seed
	}
}

// WithClusterParams replaces the clusterer parameters, seed included.
func WithClusterParams(p cluster.Params) Option {
	return func(ec *EngineConfig, _ *settings) { ec.Cluster = p }
}

// WithOutputDir records where renderers should place artefacts. The
// Footprint itself never writes files.
func WithOutputDir(dir string) Option {
	return func(_ *EngineConfig, s *settings) { s.outputDir = dir }
}

// WithClock sets the clock used for report timestamps and timings. A nil
// clock is ignored.
func WithClock(c timeutil.Clock) Option {
	return func(_ *EngineConfig, s *settings) {
		if c != nil {
			s.clock = c
		}
	}
}
