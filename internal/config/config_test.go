package config

import (
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := LoadSnake("")
	if err != nil {
		t.Fatalf("LoadSnake() failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultSnakeConfig()) {
		t.Errorf("embedded config %+v differs from DefaultSnakeConfig %+v", cfg, DefaultSnakeConfig())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadSnakeCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snake.yaml")
	data := "grid:\n  size: 12\nai:\n  show_predictions: false\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadSnake(path)
	if err != nil {
		t.Fatalf("LoadSnake() failed: %v", err)
	}
	if cfg.Grid.Size != 12 {
		t.Errorf("Grid.Size = %d, want 12", cfg.Grid.Size)
	}
	if cfg.AI.ShowPredictions {
		t.Error("ShowPredictions should be false")
	}
	// Keys absent from the file keep their defaults
	if cfg.Gameplay.FoodPoints != 10 || !cfg.AI.SmartFoodPlacement {
		t.Errorf("unset keys lost their defaults: %+v", cfg)
	}
}

func TestLoadSnakeCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadSnake(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("grid: [1, 2"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSnake(bad); err == nil {
		t.Error("expected error for malformed YAML")
	}

	tiny := filepath.Join(dir, "tiny.yaml")
	if err := os.WriteFile(tiny, []byte("grid:\n  size: 2\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSnake(tiny); err == nil || !strings.Contains(err.Error(), "grid.size") {
		t.Errorf("expected grid.size validation error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SnakeConfig)
	}{
		{"zero points", func(c *SnakeConfig) { c.Gameplay.FoodPoints = 0 }},
		{"huge grid", func(c *SnakeConfig) { c.Grid.Size = MaxGridSize + 1 }},
		{"negative rate", func(c *SnakeConfig) { c.AI.DifficultyAdjustmentRate = -0.5 }},
		{"learning rate", func(c *SnakeConfig) { c.AI.LearningRate = 2 }},
		{"nan rate", func(c *SnakeConfig) { c.AI.DifficultyAdjustmentRate = math.NaN() }},
		{"nan learning rate", func(c *SnakeConfig) { c.AI.LearningRate = math.NaN() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultSnakeConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestPresets(t *testing.T) {
	tests := []struct {
		preset   DifficultyPreset
		adaptive bool
		rate     float64
	}{
		{DifficultyEasy, true, 0.02},
		{DifficultyNormal, true, 0.05},
		{DifficultyHard, true, 0.10},
		{DifficultyFixed, false, 0.05},
	}

	for _, tt := range tests {
		cfg := DefaultSnakeConfig()
		ApplySnakePreset(&cfg, tt.preset)
		if cfg.AI.AdaptiveDifficulty != tt.adaptive {
			t.Errorf("%s: AdaptiveDifficulty = %v, want %v", tt.preset, cfg.AI.AdaptiveDifficulty, tt.adaptive)
		}
		if cfg.AI.DifficultyAdjustmentRate != tt.rate {
			t.Errorf("%s: rate = %v, want %v", tt.preset, cfg.AI.DifficultyAdjustmentRate, tt.rate)
		}
	}

	cfg := DefaultSnakeConfig()
	ApplySnakePreset(&cfg, "")
	if !reflect.DeepEqual(cfg, DefaultSnakeConfig()) {
		t.Error("empty preset should not change the config")
	}
}

func TestParsePreset(t *testing.T) {
	if p, err := ParsePreset(" Hard "); err != nil || p != DifficultyHard {
		t.Errorf("ParsePreset(Hard) = %q, %v", p, err)
	}
	if p, err := ParsePreset(""); err != nil || p != "" {
		t.Errorf("ParsePreset(\"\") = %q, %v", p, err)
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestApplyOverrides(t *testing.T) {
	cfg := DefaultSnakeConfig()
	unknown, err := ApplyOverrides(&cfg, []string{"smart_food_placement=false", "difficulty_adjustment_rate = 0.5", "wrap=true"})
	if err != nil {
		t.Fatalf("ApplyOverrides() failed: %v", err)
	}
	if cfg.AI.SmartFoodPlacement {
		t.Error("SmartFoodPlacement should be false")
	}
	if cfg.AI.DifficultyAdjustmentRate != 0.5 {
		t.Errorf("rate = %v, want 0.5", cfg.AI.DifficultyAdjustmentRate)
	}
	if !reflect.DeepEqual(unknown, []string{"wrap"}) {
		t.Errorf("unknown = %v, want [wrap]", unknown)
	}

	if _, err := ApplyOverrides(&cfg, []string{"show_predictions"}); err == nil {
		t.Error("expected error for missing '='")
	}
	if _, err := ApplyOverrides(&cfg, []string{"show_predictions=perhaps"}); err == nil {
		t.Error("expected error for bad bool")
	}
	if _, err := ApplyOverrides(&cfg, []string{"difficulty_adjustment_rate=nan"}); err == nil {
		t.Error("expected error for NaN rate")
	}
}

func TestLoadSnakeRejectsNaNRate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nan.yaml")
	if err := os.WriteFile(path, []byte("ai:\n  difficulty_adjustment_rate: .nan\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSnake(path); err == nil || !strings.Contains(err.Error(), "difficulty_adjustment_rate") {
		t.Errorf("expected rate validation error, got %v", err)
	}
}

func TestMarshalRoundTripsKeys(t *testing.T) {
	data, err := Marshal(DefaultSnakeConfig())
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	for _, key := range []string{"size: 20", "food_points: 10", "difficulty_adjustment_rate: 0.05"} {
		if !strings.Contains(string(data), key) {
			t.Errorf("marshalled config missing %q:\n%s", key, data)
		}
	}
}
