package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadTuningConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test_config.json")

	testJSON := `{
  "epsilon": 0.9,
  "cutoff": 120,
  "density_threshold": 3,
  "purity_threshold": 0.6,
  "grow_fallback": "stop",
  "seed": 7
}`
	if err := os.WriteFile(configPath, []byte(testJSON), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadTuningConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Epsilon == nil || *cfg.Epsilon != 0.9 {
		t.Errorf("Expected Epsilon 0.9, got %v", cfg.Epsilon)
	}
	if cfg.Cutoff == nil || *cfg.Cutoff != 120 {
		t.Errorf("Expected Cutoff 120, got %v", cfg.Cutoff)
	}
	if cfg.DensityThreshold == nil || *cfg.DensityThreshold != 3 {
		t.Errorf("Expected DensityThreshold 3, got %v", cfg.DensityThreshold)
	}
	if cfg.PurityThreshold == nil || *cfg.PurityThreshold != 0.6 {
		t.Errorf("Expected PurityThreshold 0.6, got %v", cfg.PurityThreshold)
	}
	if cfg.GetGrowFallback() != "stop" {
		t.Errorf("Expected GrowFallback 'stop', got %q", cfg.GetGrowFallback())
	}
	if cfg.GetSeed() != 7 {
		t.Errorf("Expected Seed 7, got %d", cfg.GetSeed())
	}
}

func TestLoadTuningConfigMissing(t *testing.T) {
	_, err := LoadTuningConfig("/nonexistent/path/to/config.json")
	if err == nil {
		t.Error("Expected error when loading missing file, got nil")
	}
}

func TestLoadTuningConfigInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid_config.json")

	invalidJSON := `{
  "epsilon": "invalid"
`
	if err := os.WriteFile(configPath, []byte(invalidJSON), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	_, err := LoadTuningConfig(configPath)
	if err == nil {
		t.Error("Expected error when loading invalid JSON, got nil")
	}
}

func TestLoadTuningConfigRejectsInvalidValues(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "bad_values.json")

	if err := os.WriteFile(configPath, []byte(`{"epsilon": 1.5}`), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	_, err := LoadTuningConfig(configPath)
	if err == nil {
		t.Error("Expected validation error for epsilon 1.5, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *TuningConfig
		wantErr bool
	}{
		{
			name:    "empty config is valid",
			cfg:     &TuningConfig{},
			wantErr: false,
		},
		{
			name:    "epsilon of one is valid",
			cfg:     &TuningConfig{Epsilon: ptrFloat64(1)},
			wantErr: false,
		},
		{
			name:    "negative seed is valid",
			cfg:     &TuningConfig{Seed: ptrInt64(-3)},
			wantErr: false,
		},
		{
			name:    "zero epsilon",
			cfg:     &TuningConfig{Epsilon: ptrFloat64(0)},
			wantErr: true,
		},
		{
			name:    "epsilon above one",
			cfg:     &TuningConfig{Epsilon: ptrFloat64(1.01)},
			wantErr: true,
		},
		{
			name:    "zero cutoff",
			cfg:     &TuningConfig{Cutoff: ptrFloat64(0)},
			wantErr: true,
		},
		{
			name:    "negative density threshold",
			cfg:     &TuningConfig{DensityThreshold: ptrFloat64(-1)},
			wantErr: true,
		},
		{
			name:    "purity threshold above one",
			cfg:     &TuningConfig{PurityThreshold: ptrFloat64(1.5)},
			wantErr: true,
		},
		{
			name:    "unknown grow fallback",
			cfg:     &TuningConfig{GrowFallback: ptrString("nearest")},
			wantErr: true,
		},
		{
			name:    "upper-case grow fallback",
			cfg:     &TuningConfig{GrowFallback: ptrString("STOP")},
			wantErr: false,
		},
		{
			name:    "min clusters below two",
			cfg:     &TuningConfig{MinClusters: ptrInt(1)},
			wantErr: true,
		},
		{
			name:    "max clusters below default min",
			cfg:     &TuningConfig{MaxClusters: ptrInt(1)},
			wantErr: true,
		},
		{
			name:    "max clusters below min clusters",
			cfg:     &TuningConfig{MinClusters: ptrInt(5), MaxClusters: ptrInt(4)},
			wantErr: true,
		},
		{
			name:    "zero restarts",
			cfg:     &TuningConfig{KMeansRestarts: ptrInt(0)},
			wantErr: true,
		},
		{
			name:    "zero max iterations",
			cfg:     &TuningConfig{KMeansMaxIter: ptrInt(0)},
			wantErr: true,
		},
		{
			name:    "negative tolerance",
			cfg:     &TuningConfig{KMeansTol: ptrFloat64(-1e-3)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetGrowFallback(t *testing.T) {
	tests := []struct {
		name string
		cfg  *TuningConfig
		want string
	}{
		{"nil pointer returns default", &TuningConfig{}, "any"},
		{"empty string returns default", &TuningConfig{GrowFallback: ptrString("")}, "any"},
		{"stop", &TuningConfig{GrowFallback: ptrString("stop")}, "stop"},
		{"normalised", &TuningConfig{GrowFallback: ptrString(" Stop ")}, "stop"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.GetGrowFallback(); got != tt.want {
				t.Errorf("GetGrowFallback() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoadDefaultConfigFile(t *testing.T) {
	cfg, err := LoadTuningConfig("../../config/tuning.defaults.json")
	if err != nil {
		t.Fatalf("Failed to load defaults: %v", err)
	}
	if cfg.GetEpsilon() != 0.95 {
		t.Errorf("Expected 0.95, got %f", cfg.GetEpsilon())
	}
	if !math.IsInf(cfg.GetCutoff(), 1) {
		t.Errorf("Expected no cutoff, got %f", cfg.GetCutoff())
	}
	if cfg.GetMaxClusters() != 11 {
		t.Errorf("Expected 11, got %d", cfg.GetMaxClusters())
	}
}

func TestMustLoadDefaultConfig(t *testing.T) {
	cfg := MustLoadDefaultConfig()
	if cfg.GetPurityThreshold() != 0.75 {
		t.Errorf("Expected 0.75, got %f", cfg.GetPurityThreshold())
	}
}

func TestLoadExampleConfigFile(t *testing.T) {
	cfg, err := LoadTuningConfig("../../config/tuning.example.json")
	if err != nil {
		t.Fatalf("Failed to load example: %v", err)
	}
	if cfg.GetCutoff() != 300 {
		t.Errorf("Expected 300, got %f", cfg.GetCutoff())
	}
	if cfg.GetMaxClusters() != 6 {
		t.Errorf("Expected 6, got %d", cfg.GetMaxClusters())
	}
	if cfg.GetGrowFallback() != "stop" {
		t.Errorf("Expected 'stop', got %q", cfg.GetGrowFallback())
	}
}

func TestLoadTuningConfigPartial(t *testing.T) {
	// Partial config: only override epsilon; everything else should keep defaults.
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "partial.json")

	partialJSON := `{
  "epsilon": 0.8
}`
	if err := os.WriteFile(configPath, []byte(partialJSON), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadTuningConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load partial config: %v", err)
	}

	if cfg.GetEpsilon() != 0.8 {
		t.Errorf("Expected overridden Epsilon 0.8, got %f", cfg.GetEpsilon())
	}
	if cfg.GetDensityThreshold() != 0.5 {
		t.Errorf("Expected default DensityThreshold 0.5, got %f", cfg.GetDensityThreshold())
	}
	if cfg.GetKMeansRestarts() != 10 {
		t.Errorf("Expected default KMeansRestarts 10, got %d", cfg.GetKMeansRestarts())
	}
}

func TestLoadTuningConfigRejectsNonJSON(t *testing.T) {
	_, err := LoadTuningConfig("/some/path/config.yaml")
	if err == nil {
		t.Error("Expected error for non-.json extension, got nil")
	}
}

func TestLoadTuningConfigRejectsLargeFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "large.json")

	largeData := make([]byte, 2*1024*1024) // 2MB
	if err := os.WriteFile(configPath, largeData, 0644); err != nil {
		t.Fatalf("Failed to write large file: %v", err)
	}

	_, err := LoadTuningConfig(configPath)
	if err == nil {
		t.Error("Expected error for file size > 1MB, got nil")
	}
}

func TestAllTuningParams(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "all_params.json")

	allParamsJSON := `{
  "epsilon": 0.85,
  "cutoff": 60,
  "density_threshold": 1.5,
  "purity_threshold": 0.9,
  "grow_fallback": "any",
  "seed": 99,
  "min_clusters": 3,
  "max_clusters": 8,
  "kmeans_restarts": 4,
  "kmeans_max_iter": 50,
  "kmeans_tol": 0.001
}`
	if err := os.WriteFile(configPath, []byte(allParamsJSON), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadTuningConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.GetEpsilon() != 0.85 {
		t.Errorf("GetEpsilon() = %v, want 0.85", cfg.GetEpsilon())
	}
	if cfg.GetCutoff() != 60 {
		t.Errorf("GetCutoff() = %v, want 60", cfg.GetCutoff())
	}
	if cfg.GetDensityThreshold() != 1.5 {
		t.Errorf("GetDensityThreshold() = %v, want 1.5", cfg.GetDensityThreshold())
	}
	if cfg.GetPurityThreshold() != 0.9 {
		t.Errorf("GetPurityThreshold() = %v, want 0.9", cfg.GetPurityThreshold())
	}
	if cfg.GetGrowFallback() != "any" {
		t.Errorf("GetGrowFallback() = %q, want any", cfg.GetGrowFallback())
	}
	if cfg.GetSeed() != 99 {
		t.Errorf("GetSeed() = %v, want 99", cfg.GetSeed())
	}
	if cfg.GetMinClusters() != 3 {
		t.Errorf("GetMinClusters() = %v, want 3", cfg.GetMinClusters())
	}
	if cfg.GetMaxClusters() != 8 {
		t.Errorf("GetMaxClusters() = %v, want 8", cfg.GetMaxClusters())
	}
	if cfg.GetKMeansRestarts() != 4 {
		t.Errorf("GetKMeansRestarts() = %v, want 4", cfg.GetKMeansRestarts())
	}
	if cfg.GetKMeansMaxIter() != 50 {
		t.Errorf("GetKMeansMaxIter() = %v, want 50", cfg.GetKMeansMaxIter())
	}
	if cfg.GetKMeansTol() != 0.001 {
		t.Errorf("GetKMeansTol() = %v, want 0.001", cfg.GetKMeansTol())
	}
}

func TestGetterDefaults(t *testing.T) {
	cfg := &TuningConfig{} // empty config

	if cfg.GetEpsilon() != 0.95 {
		t.Errorf("GetEpsilon() = %f, want 0.95", cfg.GetEpsilon())
	}
	if !math.IsInf(cfg.GetCutoff(), 1) {
		t.Errorf("GetCutoff() = %f, want +Inf", cfg.GetCutoff())
	}
	if cfg.GetDensityThreshold() != 0.5 {
		t.Errorf("GetDensityThreshold() = %f, want 0.5", cfg.GetDensityThreshold())
	}
	if cfg.GetPurityThreshold() != 0.75 {
		t.Errorf("GetPurityThreshold() = %f, want 0.75", cfg.GetPurityThreshold())
	}
	if cfg.GetSeed() != 1 {
		t.Errorf("GetSeed() = %d, want 1", cfg.GetSeed())
	}
	if cfg.GetMinClusters() != 2 || cfg.GetMaxClusters() != 11 {
		t.Errorf("cluster range = %d..%d, want 2..11", cfg.GetMinClusters(), cfg.GetMaxClusters())
	}
	if cfg.GetKMeansMaxIter() != 300 {
		t.Errorf("GetKMeansMaxIter() = %d, want 300", cfg.GetKMeansMaxIter())
	}
	if cfg.GetKMeansTol() != 1e-4 {
		t.Errorf("GetKMeansTol() = %g, want 1e-4", cfg.GetKMeansTol())
	}
}
