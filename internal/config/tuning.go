package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
)

// DefaultConfigPath is the path to the canonical tuning defaults file.
// This is the single source of truth for all default tuning values.
const DefaultConfigPath = "config/tuning.defaults.json"

// TuningConfig represents the root configuration for footprint tuning
// parameters. Every field is optional; the Get* methods supply defaults for
// fields the JSON leaves out.
type TuningConfig struct {
	// Labelling params
	Epsilon *float64 `json:"epsilon,omitempty"`
	Cutoff  *float64 `json:"cutoff,omitempty"` // omitted means no timeout

	// Region engine params
	DensityThreshold *float64 `json:"density_threshold,omitempty"`
	PurityThreshold  *float64 `json:"purity_threshold,omitempty"`
	GrowFallback     *string  `json:"grow_fallback,omitempty"` // "any" or "stop"
	Seed             *int64   `json:"seed,omitempty"`

	// Clusterer params
	MinClusters    *int     `json:"min_clusters,omitempty"`
	MaxClusters    *int     `json:"max_clusters,omitempty"`
	KMeansRestarts *int     `json:"kmeans_restarts,omitempty"`
	KMeansMaxIter  *int     `json:"kmeans_max_iter,omitempty"`
	KMeansTol      *float64 `json:"kmeans_tol,omitempty"`
}

// Helper functions to create pointers
func ptrFloat64(v float64) *float64 { return &v }
func ptrString(v string) *string    { return &v }
func ptrInt(v int) *int             { return &v }
func ptrInt64(v int64) *int64       { return &v }

// EmptyTuningConfig returns a TuningConfig with all fields set to nil.
// Use LoadTuningConfig to load actual values from the defaults file.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// LoadTuningConfig loads a TuningConfig from a JSON file.
// The file is validated to ensure it has a .json extension and is under the max file size.
// Fields omitted from the JSON file retain their default values, so
// partial configs are safe.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	// Check file size for safety (max 1MB)
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads the canonical tuning defaults from DefaultConfigPath.
// It searches for the file in the current directory and common parent directories.
// Panics if the file cannot be loaded, intended for test setup.
func MustLoadDefaultConfig() *TuningConfig {
	candidates := []string{
		DefaultConfigPath,
		"../../" + DefaultConfigPath,       // from internal/config/
		"../../../" + DefaultConfigPath,    // from internal/footprint/
		"../../../../" + DefaultConfigPath, // from internal/footprint/region/
	}
	for _, path := range candidates {
		if cfg, err := LoadTuningConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that the configuration values are valid.
func (c *TuningConfig) Validate() error {
	if c.Epsilon != nil {
		if !(*c.Epsilon > 0 && *c.Epsilon <= 1) {
			return fmt.Errorf("epsilon must be in (0, 1], got %f", *c.Epsilon)
		}
	}

	if c.Cutoff != nil && !(*c.Cutoff > 0) {
		return fmt.Errorf("cutoff must be positive, got %f", *c.Cutoff)
	}

	if c.PurityThreshold != nil {
		if *c.PurityThreshold < 0 || *c.PurityThreshold > 1 {
			return fmt.Errorf("purity_threshold must be between 0 and 1, got %f", *c.PurityThreshold)
		}
	}

	if c.DensityThreshold != nil && *c.DensityThreshold < 0 {
		return fmt.Errorf("density_threshold must be non-negative, got %f", *c.DensityThreshold)
	}

	if c.GrowFallback != nil {
		switch strings.ToLower(strings.TrimSpace(*c.GrowFallback)) {
		case "", "any", "stop":
		default:
			return fmt.Errorf("invalid grow_fallback '%s' (want any or stop)", *c.GrowFallback)
		}
	}

	if c.MinClusters != nil && *c.MinClusters < 2 {
		return fmt.Errorf("min_clusters must be at least 2, got %d", *c.MinClusters)
	}
	if c.GetMaxClusters() < c.GetMinClusters() {
		return fmt.Errorf("max_clusters (%d) must be >= min_clusters (%d)", c.GetMaxClusters(), c.GetMinClusters())
	}

	if c.KMeansRestarts != nil && *c.KMeansRestarts < 1 {
		return fmt.Errorf("kmeans_restarts must be positive, got %d", *c.KMeansRestarts)
	}
	if c.KMeansMaxIter != nil && *c.KMeansMaxIter < 1 {
		return fmt.Errorf("kmeans_max_iter must be positive, got %d", *c.KMeansMaxIter)
	}
	if c.KMeansTol != nil && *c.KMeansTol < 0 {
		return fmt.Errorf("kmeans_tol must be non-negative, got %f", *c.KMeansTol)
	}

	return nil
}

// GetEpsilon returns the epsilon value or the default.
func (c *TuningConfig) GetEpsilon() float64 {
	if c.Epsilon == nil {
		return 0.95
	}
	return *c.Epsilon
}

// GetCutoff returns the cutoff value, or +Inf when no timeout is configured.
func (c *TuningConfig) GetCutoff() float64 {
	if c.Cutoff == nil {
		return math.Inf(1)
	}
	return *c.Cutoff
}

// GetDensityThreshold returns the density_threshold value or the default.
func (c *TuningConfig) GetDensityThreshold() float64 {
	if c.DensityThreshold == nil {
		return 0.5
	}
	return *c.DensityThreshold
}

// GetPurityThreshold returns the purity_threshold value or the default.
func (c *TuningConfig) GetPurityThreshold() float64 {
	if c.PurityThreshold == nil {
		return 0.75
	}
	return *c.PurityThreshold
}

// GetGrowFallback returns the grow_fallback value or the default ("any").
func (c *TuningConfig) GetGrowFallback() string {
	if c.GrowFallback == nil || *c.GrowFallback == "" {
		return "any"
	}
	return strings.ToLower(strings.TrimSpace(*c.GrowFallback))
}

// GetSeed returns the seed value or the default.
func (c *TuningConfig) GetSeed() int64 {
	if c.Seed == nil {
		return 1
	}
	return *c.Seed
}

// GetMinClusters returns the min_clusters value or the default.
func (c *TuningConfig) GetMinClusters() int {
	if c.MinClusters == nil {
		return 2
	}
	return *c.MinClusters
}

// GetMaxClusters returns the max_clusters value or the default.
func (c *TuningConfig) GetMaxClusters() int {
	if c.MaxClusters == nil {
		return 11
	}
	return *c.MaxClusters
}

// GetKMeansRestarts returns the kmeans_restarts value or the default.
func (c *TuningConfig) GetKMeansRestarts() int {
	if c.KMeansRestarts == nil {
		return 10
	}
	return *c.KMeansRestarts
}

// GetKMeansMaxIter returns the kmeans_max_iter value or the default.
func (c *TuningConfig) GetKMeansMaxIter() int {
	if c.KMeansMaxIter == nil {
		return 300
	}
	return *c.KMeansMaxIter
}

// GetKMeansTol returns the kmeans_tol value or the default.
func (c *TuningConfig) GetKMeansTol() float64 {
	if c.KMeansTol == nil {
		return 1e-4
	}
	return *c.KMeansTol
}
