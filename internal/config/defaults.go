package config

import (
	_ "embed"

	"github.com/vovakirdan/ai-snake/internal/adaptive"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the built-in configuration. It matches the
// embedded YAML.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Grid: GridConfig{
			Size: 20,
		},
		Gameplay: GameplayConfig{
			FoodPoints: 10,
		},
		AI: aiConfigFrom(adaptive.DefaultSettings()),
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultSnakeYAML
}
