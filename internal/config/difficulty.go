package config

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/ai-snake/internal/adaptive"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the accepted preset names in display order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset validates a preset name. The empty string means no preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	if s == "" {
		return "", nil
	}
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Presets {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty preset %q", s)
}

// AdjustmentRateForPreset returns how quickly difficulty tracks skill.
func AdjustmentRateForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.02
	case DifficultyHard:
		return 0.10
	default:
		return 0.05
	}
}

// IsFixedPreset returns true if the preset disables adaptation.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplySnakePreset modifies the AI section for a preset. An empty preset
// leaves the config untouched.
func ApplySnakePreset(cfg *SnakeConfig, preset DifficultyPreset) {
	switch {
	case preset == "":
		return
	case IsFixedPreset(preset):
		cfg.AI.AdaptiveDifficulty = false
	default:
		cfg.AI.AdaptiveDifficulty = true
		cfg.AI.DifficultyAdjustmentRate = AdjustmentRateForPreset(preset)
	}
}

// ApplyOverrides applies key=value AI overrides such as
// "show_predictions=false". It returns the keys the engine does not know.
func ApplyOverrides(cfg *SnakeConfig, pairs []string) ([]string, error) {
	kv := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("config: override %q is not key=value", pair)
		}
		kv[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}

	patch, unknown, err := adaptive.ParseSettingsPatch(kv)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg.AI = aiConfigFrom(cfg.AI.Settings().Apply(patch))
	return unknown, cfg.Validate()
}
