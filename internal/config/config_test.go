package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/eulergrowth/internal/dynamo"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.N0 != 1 {
		t.Errorf("expected n0 1, got %f", cfg.N0)
	}
	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Duration <= 0 {
		t.Error("duration should be positive")
	}

	r, err := cfg.GrowthRate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(r-math.Ln2/0.5) > 1e-12 {
		t.Errorf("expected rate ln2/0.5, got %f", r)
	}
}

func TestGrowthRate_Explicit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DoublingTime = 0
	cfg.SetRate(-0.25)

	r, err := cfg.GrowthRate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r != -0.25 {
		t.Errorf("expected explicit rate -0.25, got %f", r)
	}

	cfg.SetRate(math.NaN())
	if _, err := cfg.GrowthRate(); !errors.Is(err, dynamo.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for NaN rate, got %v", err)
	}
}

func TestParams_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero doubling time", func(c *Config) { c.DoublingTime = 0 }},
		{"zero dt", func(c *Config) { c.Dt = 0 }},
		{"negative duration", func(c *Config) { c.Duration = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, dynamo.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	cfg := DefaultConfig()
	cfg.Name = "roundtrip"
	cfg.Dt = 0.05
	cfg.SetRate(0.3)

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Name != "roundtrip" || loaded.Dt != 0.05 {
		t.Errorf("unexpected config %+v", loaded)
	}
	if loaded.Rate == nil || *loaded.Rate != 0.3 {
		t.Errorf("expected rate 0.3, got %v", loaded.Rate)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("dt: 0.2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Dt != 0.2 {
		t.Errorf("expected dt 0.2, got %f", cfg.Dt)
	}
	if cfg.Duration != DefaultDuration || cfg.DoublingTime != DefaultDoublingTime {
		t.Errorf("defaults lost: %+v", cfg)
	}
	if cfg.Rate != nil {
		t.Errorf("expected no explicit rate, got %v", *cfg.Rate)
	}
}

func TestLoadOnto_DoublingTimeReplacesPresetRate(t *testing.T) {
	dir := t.TempDir()
	doublingOnly := filepath.Join(dir, "doubling.yaml")
	if err := os.WriteFile(doublingOnly, []byte("doubling_time: 0.5\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadOnto(doublingOnly, GetPreset("flat"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Rate != nil {
		t.Fatalf("expected preset rate dropped, got %v", *cfg.Rate)
	}
	r, err := cfg.GrowthRate()
	if err != nil || math.Abs(r-math.Ln2/0.5) > 1e-12 {
		t.Errorf("expected rate ln2/0.5, got %f (%v)", r, err)
	}
	if cfg.N0 != 10 || cfg.Duration != 2 {
		t.Errorf("preset values lost: %+v", cfg)
	}

	both := filepath.Join(dir, "both.yaml")
	if err := os.WriteFile(both, []byte("doubling_time: 0.5\nrate: 0.25\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err = LoadOnto(both, GetPreset("flat"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if r, _ := cfg.GrowthRate(); r != 0.25 {
		t.Errorf("expected explicit file rate 0.25, got %f", r)
	}

	other := filepath.Join(dir, "dt.yaml")
	if err := os.WriteFile(other, []byte("dt: 0.2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err = LoadOnto(other, GetPreset("flat"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Rate == nil || *cfg.Rate != 0 {
		t.Errorf("expected preset rate kept when file has no doubling_time, got %v", cfg.Rate)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("dt: [1, 2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("notebook")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Dt != 0.01 || cfg.Duration != 5 {
		t.Errorf("unexpected notebook preset %+v", cfg)
	}

	cfg.Dt = 1
	if Presets["notebook"].Dt != 0.01 {
		t.Error("GetPreset returned a shared config")
	}

	flat := GetPreset("flat")
	*flat.Rate = 9
	if *Presets["flat"].Rate != 0 {
		t.Error("GetPreset shares the rate pointer")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(presets))
	}
	for i := 1; i < len(presets); i++ {
		if presets[i-1] > presets[i] {
			t.Errorf("presets not sorted: %v", presets)
		}
	}
	for _, name := range presets {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}
