package footprint

import (
	"encoding/binary"
	"fmt"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/aclements/go-moremath/stats"
	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/banshee-data/footprint/internal/footprint/region"
	"github.com/banshee-data/footprint/internal/monitoring"
	"github.com/banshee-data/footprint/internal/version"
)

// Report is the outcome of one footprint computation, with everything
// needed to reproduce it.
type Report struct {
	RunID            string
	EngineVersion    string
	Config           ConfigID
	DisplayName      string
	Epsilon          float64
	Cutoff           float64
	DensityThreshold float64
	PurityThreshold  float64
	Seed             int64 // seed of the region engine's random stream
	Area             float64
	Regions          []region.Summary
	Stats            region.Stats
	Started          time.Time
	Elapsed          time.Duration
}

// ConfigSeed returns the seed of cfg's random stream. It depends only on
// the facade seed and the configuration id.
func (f *Footprint) ConfigSeed(cfg ConfigID) int64 {
	return deriveSeed(f.cfg.Seed, string(cfg), 0)
}

func deriveSeed(base int64, key string, run uint64) int64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(base))
	binary.LittleEndian.PutUint64(buf[8:], run)
	d := xxhash.New()
	_, _ = d.Write(buf[:])
	_, _ = d.WriteString(key)
	return int64(d.Sum64())
}

// Footprint returns the footprint area of cfg under the given merge gates,
// using the labels at the current epsilon.
func (f *Footprint) Footprint(cfg ConfigID, density, purity float64) (float64, error) {
	rep, err := f.Compute(cfg, density, purity)
	if err != nil {
		return 0, err
	}
	return rep.Area, nil
}

// Compute runs the region engine for cfg and returns the full report.
// Repeated calls with the same arguments return the same area.
func (f *Footprint) Compute(cfg ConfigID, density, purity float64) (*Report, error) {
	return f.compute(cfg, density, purity, f.ConfigSeed(cfg))
}

func (f *Footprint) compute(cfg ConfigID, density, purity float64, seed int64) (*Report, error) {
	labels, epsilon, err := f.indexedLabels(cfg)
	if err != nil {
		return nil, err
	}

	start := f.clock.Now()
	eng := region.NewEngine(f.space, rand.New(rand.NewSource(seed)))
	eng.Name = string(cfg)
	res, err := eng.Run(labels, region.Params{
		DensityThreshold: density,
		PurityThreshold:  purity,
		Fallback:         f.cfg.Fallback,
	})
	if err != nil {
		return nil, fmt.Errorf("footprint of %q: %w", cfg, err)
	}

	return &Report{
		RunID:            uuid.NewString(),
		EngineVersion:    version.Version,
		Config:           cfg,
		DisplayName:      f.DisplayName(cfg),
		Epsilon:          epsilon,
		Cutoff:           f.cfg.Cutoff,
		DensityThreshold: density,
		PurityThreshold:  purity,
		Seed:             seed,
		Area:             res.Area,
		Regions:          res.Regions,
		Stats:            res.Stats,
		Started:          start,
		Elapsed:          f.clock.Since(start),
	}, nil
}

// ComputeAll computes the footprint of every configuration concurrently.
// The first error cancels nothing already running but is returned once
// all workers finish.
func (f *Footprint) ComputeAll(density, purity float64) (map[ConfigID]*Report, error) {
	// Label once up front so workers only read the cache.
	f.mu.Lock()
	err := f.ensureLabelsLocked()
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}

	defer monitoring.Timed(fmt.Sprintf("footprint: %d configurations", len(f.configs)))()

	var (
		mu  sync.Mutex
		out = make(map[ConfigID]*Report, len(f.configs))
		g   errgroup.Group
	)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, cfg := range f.configs {
		g.Go(func() error {
			rep, err := f.Compute(cfg, density, purity)
			if err != nil {
				return err
			}
			mu.Lock()
			out[cfg] = rep
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// ComputeAllDefaults is ComputeAll with the configured DensityThreshold and
// PurityThreshold.
func (f *Footprint) ComputeAllDefaults() (map[ConfigID]*Report, error) {
	return f.ComputeAll(f.cfg.DensityThreshold, f.cfg.PurityThreshold)
}

// StabilityReport summarises how the footprint of cfg varies with the random
// stream. Run 0 uses ConfigSeed(cfg); later runs use seeds derived from it.
type StabilityReport struct {
	Config ConfigID
	Runs   int
	Areas  []float64 // per run, in run order
	Mean   float64
	StdDev float64
	Min    float64
	Median float64
	Max    float64
}

// Stability computes the footprint of cfg runs times with different seeds.
func (f *Footprint) Stability(cfg ConfigID, density, purity float64, runs int) (*StabilityReport, error) {
	if runs < 1 {
		return nil, fmt.Errorf("runs must be positive, got %d: %w", runs, ErrInvalidInput)
	}
	areas := make([]float64, runs)
	for r := 0; r < runs; r++ {
		rep, err := f.compute(cfg, density, purity, deriveSeed(f.cfg.Seed, string(cfg), uint64(r)))
		if err != nil {
			return nil, err
		}
		areas[r] = rep.Area
	}

	sample := stats.Sample{Xs: areas}
	lo, hi := sample.Bounds()
	st := &StabilityReport{
		Config: cfg,
		Runs:   runs,
		Areas:  areas,
		Mean:   sample.Mean(),
		Min:    lo,
		Median: sample.Quantile(0.5),
		Max:    hi,
	}
	if runs > 1 {
		st.StdDev = sample.StdDev()
	}
	return st, nil
}
