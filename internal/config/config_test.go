package config

import (
	"math"
	"testing"

	"geoks/adapters/stats/kstest"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"GEOKS_PORT", "GIN_MODE", "GEOKS_DB_URL", "GEOKS_FILTER_THRESHOLD", "GEOKS_FILTER_SIGMA_SCALE"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Server.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Server.GinMode != "release" {
		t.Errorf("GinMode = %q, want release", cfg.Server.GinMode)
	}
	if cfg.DB.URL != "" {
		t.Errorf("DB URL = %q, want empty (persistence disabled)", cfg.DB.URL)
	}
	if cfg.Filter.Threshold != kstest.DefaultSlopeThreshold {
		t.Errorf("Threshold = %v, want default", cfg.Filter.Threshold)
	}
	if cfg.Filter.SigmaScale != kstest.DefaultFilterSigmaScale {
		t.Errorf("SigmaScale = %v, want default", cfg.Filter.SigmaScale)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("GEOKS_PORT", "9999")
	t.Setenv("GEOKS_DB_URL", "postgres://localhost/geoks_test")
	t.Setenv("GEOKS_FILTER_THRESHOLD", "3.5")
	t.Setenv("GEOKS_FILTER_SIGMA_SCALE", "1.0")

	cfg := Load()
	if cfg.Server.Port != "9999" {
		t.Errorf("Port = %q, want 9999", cfg.Server.Port)
	}
	if cfg.DB.URL != "postgres://localhost/geoks_test" {
		t.Errorf("DB URL = %q", cfg.DB.URL)
	}
	if math.Abs(cfg.Filter.Threshold-3.5) > 1e-12 {
		t.Errorf("Threshold = %v, want 3.5", cfg.Filter.Threshold)
	}

	opts := cfg.Filter.FilterOptions()
	if opts.Threshold != cfg.Filter.Threshold || opts.SigmaScale != cfg.Filter.SigmaScale {
		t.Errorf("FilterOptions() = %+v does not mirror config %+v", opts, cfg.Filter)
	}
}

func TestLoad_IgnoresUnparsableFloat(t *testing.T) {
	t.Setenv("GEOKS_FILTER_THRESHOLD", "not-a-number")

	cfg := Load()
	if cfg.Filter.Threshold != kstest.DefaultSlopeThreshold {
		t.Errorf("Threshold = %v, want default after bad input", cfg.Filter.Threshold)
	}
}
