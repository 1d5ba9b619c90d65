// Package snake is a terminal Snake whose food placement and speed are
// driven by an adaptive.Engine watching the player.
package snake

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/ai-snake/internal/adaptive"
	"github.com/vovakirdan/ai-snake/internal/config"
	"github.com/vovakirdan/ai-snake/internal/core"
	"github.com/vovakirdan/ai-snake/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	// ModeAdaptive takes every AI toggle from the config.
	ModeAdaptive Mode = "adaptive"
	// ModeClassic turns the AI off: random food at a fixed speed.
	ModeClassic Mode = "classic"
)

// Game IDs used by the registry and score storage.
const (
	IDAdaptive = "snake"
	IDClassic  = "snake_classic"
)

// Point is a grid cell.
type Point = adaptive.Position

// Layout constants, in screen characters.
const (
	hudHeight  = 2
	cellWidth  = 2 // terminal cells are roughly twice as tall as wide
	panelWidth = 28
	panelGap   = 2
)

// Package-level defaults used by the registry factories. Set them before
// any game is created.
var (
	defaultConfig = config.DefaultSnakeConfig()
	defaultLogger = log.New(io.Discard)
)

// SetConfig sets the configuration used by games the registry creates.
func SetConfig(cfg config.SnakeConfig) {
	defaultConfig = cfg
}

// SetLogger sets the logger used by games the registry creates.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	defaultLogger = l
}

func init() {
	registry.Register(IDAdaptive, func() registry.Game {
		return New()
	})
	registry.Register(IDClassic, func() registry.Game {
		return NewClassic()
	})
}

// Game implements adaptive Snake.
type Game struct {
	mode   Mode
	cfg    config.SnakeConfig
	engine *adaptive.Engine
	logger *log.Logger

	runtime   core.RuntimeConfig
	tick      uint64
	tickMs    float64 // simulated milliseconds per Step
	elapsedMs float64 // simulated time since the round started
	lastInput float64 // elapsedMs of the previous accepted direction
	stepAccum float64 // milliseconds banked toward the next snake step
	score     int

	// Snake state
	gridSize  int
	snake     []Point // Head at index 0
	direction adaptive.Direction
	nextDir   adaptive.Direction
	food      Point
	hasFood   bool

	// Prediction shown as a hint cell, None when hidden
	prediction adaptive.Direction
	showHints  bool

	// Screen layout
	screenW    int
	screenH    int
	mapOffsetX int
	mapOffsetY int
	showPanel  bool

	gameOver bool
	won      bool
	paused   bool
	tooSmall bool
}

// New creates an adaptive-mode game from the package defaults.
func New() *Game {
	return NewWithConfig(ModeAdaptive, defaultConfig, defaultLogger)
}

// NewClassic creates a classic-mode game from the package defaults.
func NewClassic() *Game {
	return NewWithConfig(ModeClassic, defaultConfig, defaultLogger)
}

// NewWithConfig creates a game with an explicit configuration.
func NewWithConfig(mode Mode, cfg config.SnakeConfig, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Game{
		mode:   mode,
		cfg:    cfg,
		logger: logger,
	}
}

// engineSettings derives the engine settings for the mode.
func (g *Game) engineSettings() adaptive.Settings {
	s := g.cfg.AI.Settings()
	if g.mode == ModeClassic {
		s.AdaptiveDifficulty = false
		s.SmartFoodPlacement = false
		s.ShowPredictions = false
	}
	return s
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeClassic {
		return IDClassic
	}
	return IDAdaptive
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeClassic {
		return "Snake (Classic)"
	}
	return "Snake (Adaptive AI)"
}

// Engine exposes the adaptive engine for status displays.
func (g *Game) Engine() *adaptive.Engine {
	return g.engine
}

// Reset starts a new round. The engine is created on the first call,
// seeded from cfg.Seed, and reset on every later one.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if g.engine == nil {
		g.engine = adaptive.New(
			adaptive.WithSource(adaptive.NewSource(uint64(cfg.Seed))),
			adaptive.WithSettings(g.engineSettings()),
			adaptive.WithLogger(g.logger),
		)
	} else {
		g.engine.Reset()
	}

	g.runtime = cfg
	g.tick = 0
	g.tickMs = cfg.TickDuration()
	g.elapsedMs = 0
	g.lastInput = 0
	g.stepAccum = 0
	g.score = 0
	g.gameOver = false
	g.won = false
	g.paused = false
	g.prediction = adaptive.None
	g.showHints = g.engine.Settings().ShowPredictions

	g.gridSize = g.cfg.Grid.Size
	centre := g.gridSize / 2
	g.snake = []Point{{X: centre, Y: centre}}
	g.direction = adaptive.Right
	g.nextDir = adaptive.Right

	g.Resize(cfg.ScreenW, cfg.ScreenH)
	g.spawnFood()
}

// Resize recomputes the layout without touching the round.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h

	arenaW := g.gridSize*cellWidth + 2
	arenaH := g.gridSize + 2
	g.tooSmall = w < arenaW || h < arenaH+hudHeight
	g.showPanel = w >= arenaW+panelGap+panelWidth

	total := arenaW
	if g.showPanel {
		total += panelGap + panelWidth
	}
	g.mapOffsetX = max(0, (w-total)/2) + 1
	g.mapOffsetY = hudHeight + 1
}

// spawnFood asks the engine for a cell. A full board ends the round as a win.
func (g *Game) spawnFood() {
	pos, ok := g.engine.PlaceFood(g.snake, g.gridSize)
	if !ok {
		g.hasFood = false
		g.won = true
		g.gameOver = true
		g.logger.Info("board cleared", "game", g.ID(), "score", g.score)
		return
	}
	g.food = pos
	g.hasFood = true
}

func (g *Game) isSnakeAt(p Point) bool {
	for _, seg := range g.snake {
		if seg == p {
			return true
		}
	}
	return false
}

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++

	if input.Has(core.ActionRestart) && g.gameOver {
		cfg := g.runtime
		cfg.ScreenW, cfg.ScreenH = g.screenW, g.screenH
		g.Reset(cfg)
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}
	if input.Has(core.ActionToggleHints) {
		g.showHints = !g.showHints
	}

	if g.gameOver || g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	g.elapsedMs += g.tickMs
	g.processInput(input)

	g.stepAccum += g.tickMs
	interval := float64(adaptive.MoveInterval(g.engine.Difficulty())) / float64(time.Millisecond)
	if g.stepAccum >= interval {
		g.stepAccum -= interval
		g.moveSnake()
		if !g.gameOver {
			g.engine.AdjustDifficulty()
		}
		// One step per tick; a slow tick rate must not bank steps.
		g.stepAccum = min(g.stepAccum, interval)
	}

	g.prediction = adaptive.None
	if g.showHints && !g.gameOver {
		g.prediction = g.engine.PredictNext(g.direction)
	}

	return core.StepResult{State: g.State()}
}

// processInput buffers a direction change and reports it to the engine.
// Any input except a reversal is accepted, including the current heading.
func (g *Game) processInput(input core.InputFrame) {
	var d adaptive.Direction
	switch {
	case input.Has(core.ActionUp):
		d = adaptive.Up
	case input.Has(core.ActionDown):
		d = adaptive.Down
	case input.Has(core.ActionLeft):
		d = adaptive.Left
	case input.Has(core.ActionRight):
		d = adaptive.Right
	default:
		return
	}

	if isOpposite(d, g.direction) {
		return
	}
	g.nextDir = d

	reaction := time.Duration((g.elapsedMs - g.lastInput) * float64(time.Millisecond))
	g.lastInput = g.elapsedMs
	g.engine.RecordMove(d, reaction)
}

func isOpposite(a, b adaptive.Direction) bool {
	return (a == adaptive.Up && b == adaptive.Down) ||
		(a == adaptive.Down && b == adaptive.Up) ||
		(a == adaptive.Left && b == adaptive.Right) ||
		(a == adaptive.Right && b == adaptive.Left)
}

// moveSnake moves the snake one cell in the buffered direction.
func (g *Game) moveSnake() {
	if len(g.snake) == 0 {
		return
	}

	g.direction = g.nextDir
	newHead := g.snake[0].Step(g.direction)

	if newHead.X < 0 || newHead.X >= g.gridSize || newHead.Y < 0 || newHead.Y >= g.gridSize {
		g.die("wall")
		return
	}

	// The tail moves out of the way unless the snake is eating
	for _, seg := range g.snake[:len(g.snake)-1] {
		if seg == newHead {
			g.die("self")
			return
		}
	}

	g.snake = append([]Point{newHead}, g.snake...)

	if g.hasFood && newHead == g.food {
		g.score += g.cfg.Gameplay.FoodPoints
		g.engine.RecordFoodCollection()
		g.spawnFood()
		return
	}
	g.snake = g.snake[:len(g.snake)-1]
}

func (g *Game) die(cause string) {
	g.gameOver = true
	g.engine.RecordCollision()

	st := g.engine.Status()
	g.logger.Info("game over",
		"game", g.ID(),
		"cause", cause,
		"score", g.score,
		"skill", st.SkillLevel,
		"strategy", st.Strategy,
	)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Won:      g.won,
		Paused:   g.paused,
	}
}

// Summary is the end-of-round record kept in the session history.
type Summary struct {
	GameID string
	Score  int
	Status adaptive.Status
}

// Summary reports the score and the engine's final status.
func (g *Game) Summary() Summary {
	return Summary{
		GameID: g.ID(),
		Score:  g.score,
		Status: g.engine.Status(),
	}
}
