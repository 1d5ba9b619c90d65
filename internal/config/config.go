// Package config provides YAML-based configuration loading and difficulty
// presets for the snake game.
package config

import (
	"fmt"

	"github.com/vovakirdan/ai-snake/internal/adaptive"
)

// Grid size limits.
const (
	MinGridSize = 5
	MaxGridSize = 60
)

// SnakeConfig contains all configuration for the snake game.
type SnakeConfig struct {
	Grid     GridConfig     `yaml:"grid"`
	Gameplay GameplayConfig `yaml:"gameplay"`
	AI       AIConfig       `yaml:"ai"`
}

// GridConfig defines the arena.
type GridConfig struct {
	Size int `yaml:"size"` // cells per side
}

// GameplayConfig defines scoring.
type GameplayConfig struct {
	FoodPoints int `yaml:"food_points"`
}

// AIConfig mirrors adaptive.Settings with YAML keys.
type AIConfig struct {
	AdaptiveDifficulty       bool    `yaml:"adaptive_difficulty"`
	SmartFoodPlacement       bool    `yaml:"smart_food_placement"`
	ShowPredictions          bool    `yaml:"show_predictions"`
	LearningRate             float64 `yaml:"learning_rate"`
	DifficultyAdjustmentRate float64 `yaml:"difficulty_adjustment_rate"`
}

// Settings converts the section to engine settings.
func (c AIConfig) Settings() adaptive.Settings {
	return adaptive.Settings{
		AdaptiveDifficulty:       c.AdaptiveDifficulty,
		SmartFoodPlacement:       c.SmartFoodPlacement,
		ShowPredictions:          c.ShowPredictions,
		LearningRate:             c.LearningRate,
		DifficultyAdjustmentRate: c.DifficultyAdjustmentRate,
	}
}

func aiConfigFrom(s adaptive.Settings) AIConfig {
	return AIConfig{
		AdaptiveDifficulty:       s.AdaptiveDifficulty,
		SmartFoodPlacement:       s.SmartFoodPlacement,
		ShowPredictions:          s.ShowPredictions,
		LearningRate:             s.LearningRate,
		DifficultyAdjustmentRate: s.DifficultyAdjustmentRate,
	}
}

// Validate reports the first out-of-range value.
func (c SnakeConfig) Validate() error {
	if c.Grid.Size < MinGridSize || c.Grid.Size > MaxGridSize {
		return fmt.Errorf("config: grid.size %d outside [%d, %d]", c.Grid.Size, MinGridSize, MaxGridSize)
	}
	if c.Gameplay.FoodPoints <= 0 {
		return fmt.Errorf("config: gameplay.food_points must be positive, got %d", c.Gameplay.FoodPoints)
	}
	if r := c.AI.DifficultyAdjustmentRate; !adaptive.ValidRate(r) {
		return fmt.Errorf("config: ai.difficulty_adjustment_rate %v outside [0, 1]", r)
	}
	if r := c.AI.LearningRate; !adaptive.ValidRate(r) {
		return fmt.Errorf("config: ai.learning_rate %v outside [0, 1]", r)
	}
	return nil
}
