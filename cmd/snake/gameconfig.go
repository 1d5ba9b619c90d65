package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/ai-snake/internal/config"
	"github.com/vovakirdan/ai-snake/internal/games/snake"
)

// Game configuration flags shared by play, menu and config.
var (
	flagConfig     string
	flagDifficulty string
	flagAI         []string
)

func addGameConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Director preset: easy, normal, hard, fixed")
	cmd.Flags().StringArrayVar(&flagAI, "ai", nil, "AI setting override as key=value (repeatable)")
}

// loadGameConfig resolves the config file, then the preset, then --ai
// overrides, and installs the result for new games.
func loadGameConfig() (config.SnakeConfig, error) {
	cfg, err := config.LoadSnake(flagConfig)
	if err != nil {
		return cfg, err
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return cfg, err
	}
	config.ApplySnakePreset(&cfg, preset)

	unknown, err := config.ApplyOverrides(&cfg, flagAI)
	if err != nil {
		return cfg, err
	}
	for _, k := range unknown {
		logger.Warn("ignoring unknown AI setting", "key", k)
	}

	snake.SetConfig(cfg)
	logger.Debug("game config loaded",
		"grid", cfg.Grid.Size,
		"adaptive", cfg.AI.AdaptiveDifficulty,
		"smart_food", cfg.AI.SmartFoodPlacement,
		"rate", cfg.AI.DifficultyAdjustmentRate,
	)
	return cfg, nil
}
