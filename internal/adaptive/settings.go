package adaptive

import (
	"fmt"
	"math"
	"sort"
	"strconv"
)

// Settings are the engine's feature toggles and rate constants. A Settings
// value is never mutated in place; updates produce a new value.
type Settings struct {
	AdaptiveDifficulty bool
	SmartFoodPlacement bool
	ShowPredictions    bool

	// LearningRate is accepted for configuration compatibility but no
	// algorithm reads it.
	LearningRate float64

	DifficultyAdjustmentRate float64
}

// DefaultSettings returns the settings a fresh engine starts with.
func DefaultSettings() Settings {
	return Settings{
		AdaptiveDifficulty:       true,
		SmartFoodPlacement:       true,
		ShowPredictions:          true,
		LearningRate:             0.1,
		DifficultyAdjustmentRate: 0.05,
	}
}

// SettingsPatch is a partial update. Nil fields are left unchanged.
type SettingsPatch struct {
	AdaptiveDifficulty       *bool
	SmartFoodPlacement       *bool
	ShowPredictions          *bool
	LearningRate             *float64
	DifficultyAdjustmentRate *float64
}

// Apply returns s with every non-nil field of p applied.
func (s Settings) Apply(p SettingsPatch) Settings {
	if p.AdaptiveDifficulty != nil {
		s.AdaptiveDifficulty = *p.AdaptiveDifficulty
	}
	if p.SmartFoodPlacement != nil {
		s.SmartFoodPlacement = *p.SmartFoodPlacement
	}
	if p.ShowPredictions != nil {
		s.ShowPredictions = *p.ShowPredictions
	}
	if p.LearningRate != nil {
		s.LearningRate = *p.LearningRate
	}
	if p.DifficultyAdjustmentRate != nil {
		s.DifficultyAdjustmentRate = *p.DifficultyAdjustmentRate
	}
	return s
}

// Setting keys accepted by ParseSettingsPatch. They match the YAML field
// names used in the game config.
const (
	KeyAdaptiveDifficulty       = "adaptive_difficulty"
	KeySmartFoodPlacement       = "smart_food_placement"
	KeyShowPredictions          = "show_predictions"
	KeyLearningRate             = "learning_rate"
	KeyDifficultyAdjustmentRate = "difficulty_adjustment_rate"
)

// ParseSettingsPatch builds a patch from string key/value pairs. Unknown
// keys are skipped and returned sorted so the caller can report them.
// A recognised key with an unparsable value is an error.
func ParseSettingsPatch(kv map[string]string) (patch SettingsPatch, unknown []string, err error) {
	for key, raw := range kv {
		switch key {
		case KeyAdaptiveDifficulty:
			patch.AdaptiveDifficulty, err = parseBool(key, raw)
		case KeySmartFoodPlacement:
			patch.SmartFoodPlacement, err = parseBool(key, raw)
		case KeyShowPredictions:
			patch.ShowPredictions, err = parseBool(key, raw)
		case KeyLearningRate:
			patch.LearningRate, err = parseRate(key, raw)
		case KeyDifficultyAdjustmentRate:
			patch.DifficultyAdjustmentRate, err = parseRate(key, raw)
		default:
			unknown = append(unknown, key)
		}
		if err != nil {
			return SettingsPatch{}, nil, err
		}
	}
	sort.Strings(unknown)
	return patch, unknown, nil
}

func parseBool(key, raw string) (*bool, error) {
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("adaptive: setting %s: %w", key, err)
	}
	return &v, nil
}

func parseRate(key, raw string) (*float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("adaptive: setting %s: %w", key, err)
	}
	if !ValidRate(v) {
		return nil, fmt.Errorf("adaptive: setting %s: %v out of range [0,1]", key, v)
	}
	return &v, nil
}

// ValidRate reports whether v is a usable rate in [0,1]. NaN is not.
func ValidRate(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= 1
}
