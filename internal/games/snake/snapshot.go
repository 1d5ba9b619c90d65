package snake

import "github.com/vovakirdan/ai-snake/internal/adaptive"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StateWin         GameStateType = "win"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the game and engine state for determinism tests.
type Snapshot struct {
	Tick       uint64
	Mode       Mode
	Score      int
	SnakeLen   int
	HeadX      int
	HeadY      int
	Dir        adaptive.Direction
	FoodX      int
	FoodY      int
	Difficulty float64
	Strategy   adaptive.Strategy
	State      GameStateType
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.won:
		state = StateWin
	case g.gameOver:
		state = StateGameOver
	case g.paused:
		state = StatePaused
	}

	var head Point
	if len(g.snake) > 0 {
		head = g.snake[0]
	}

	return Snapshot{
		Tick:       g.tick,
		Mode:       g.mode,
		Score:      g.score,
		SnakeLen:   len(g.snake),
		HeadX:      head.X,
		HeadY:      head.Y,
		Dir:        g.direction,
		FoodX:      g.food.X,
		FoodY:      g.food.Y,
		Difficulty: g.engine.Difficulty(),
		Strategy:   g.engine.Strategy(),
		State:      state,
	}
}
