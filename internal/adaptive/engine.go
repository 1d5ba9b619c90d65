package adaptive

import (
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"
)

// Strategy is the director's current food placement mode.
type Strategy string

const (
	StrategyLearning        Strategy = "learning"
	StrategyChallenging     Strategy = "challenging"
	StrategyEncouraging     Strategy = "encouraging"
	StrategyPatternBreaking Strategy = "pattern-breaking"
)

// Difficulty bounds and defaults.
const (
	InitialDifficulty = 0.3
	MinDifficulty     = 0.1
	MaxDifficulty     = 1.0
)

// Thresholds used by strategy selection.
const (
	strugglingCollisions = 3
	strugglingReactionMs = 800.0
	excellingSkill       = 4
	excellingReactionMs  = 250.0
)

// difficultyTargets is indexed by skill level - 1.
var difficultyTargets = [5]float64{0.2, 0.35, 0.5, 0.7, 0.9}

// GameState is the director's session-scoped state.
type GameState struct {
	CurrentDifficulty float64
	CurrentStrategy   Strategy
	PredictedNextMove Direction // None until a prediction is made
	LastFoodPlacement *Position
}

// Status is a read-only snapshot for display.
type Status struct {
	DifficultyPercent  int
	Strategy           Strategy
	Prediction         Direction
	SkillLevel         int
	TotalMoves         int
	SuccessRatePercent int
}

// Engine is the adaptive director. It owns a Behavior model and turns its
// observations into food placements and a smoothed difficulty.
type Engine struct {
	behavior *Behavior
	settings Settings
	state    GameState
	rng      Source
	logger   *log.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithSource sets the random source used for placement.
func WithSource(src Source) Option {
	return func(e *Engine) {
		e.rng = src
	}
}

// WithSettings replaces the default settings.
func WithSettings(s Settings) Option {
	return func(e *Engine) {
		e.settings = s
	}
}

// WithLogger sets the logger for strategy and reset events.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// New creates an engine in its fresh-game state.
func New(opts ...Option) *Engine {
	e := &Engine{
		behavior: NewBehavior(),
		settings: DefaultSettings(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = NewSource(0)
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}
	e.resetState()
	return e
}

func (e *Engine) resetState() {
	e.state = GameState{
		CurrentDifficulty: InitialDifficulty,
		CurrentStrategy:   StrategyLearning,
	}
}

// Reset returns the engine to the state of a freshly constructed one.
// Settings are kept.
func (e *Engine) Reset() {
	e.behavior.Reset()
	e.resetState()
	e.logger.Debug("engine reset")
}

// RecordMove reports one accepted directional input and the time since the
// previous accepted input.
func (e *Engine) RecordMove(d Direction, reaction time.Duration) {
	e.behavior.RecordMove(d, reaction)
}

// RecordCollision reports that the snake died and re-evaluates strategy.
func (e *Engine) RecordCollision() {
	e.behavior.RecordCollision()
	e.updateStrategy()
}

// RecordFoodCollection reports that food was eaten and re-evaluates
// strategy.
func (e *Engine) RecordFoodCollection() {
	e.behavior.RecordFoodCollection()
	e.updateStrategy()
}

// updateStrategy picks the strategy by priority: struggling players are
// encouraged before excelling or repetitive ones are considered.
func (e *Engine) updateStrategy() {
	stats := e.behavior.stats
	next := StrategyLearning
	switch {
	case stats.CollisionCount > strugglingCollisions || stats.AverageReactionTime > strugglingReactionMs:
		next = StrategyEncouraging
	case stats.SkillLevel >= excellingSkill && stats.AverageReactionTime < excellingReactionMs:
		next = StrategyChallenging
	case e.behavior.IsRepetitive():
		next = StrategyPatternBreaking
	}

	if next != e.state.CurrentStrategy {
		e.logger.Debug("strategy changed",
			"from", e.state.CurrentStrategy,
			"to", next,
			"skill", stats.SkillLevel,
			"collisions", stats.CollisionCount,
			"avg_reaction_ms", math.Round(stats.AverageReactionTime),
		)
	}
	e.state.CurrentStrategy = next
}

// PredictNext returns the player's likely next move, or None when
// predictions are disabled.
func (e *Engine) PredictNext(current Direction) Direction {
	if !e.settings.ShowPredictions {
		return None
	}
	if len(e.behavior.stats.LastMoves) < 2 {
		return current
	}
	next := e.behavior.PredictNext(current)
	e.state.PredictedNextMove = next
	return next
}

// AdjustDifficulty moves the difficulty one smoothing step toward the
// target implied by the current skill level.
func (e *Engine) AdjustDifficulty() {
	if !e.settings.AdaptiveDifficulty {
		return
	}
	rate := e.settings.DifficultyAdjustmentRate
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return
	}
	target := TargetDifficulty(e.behavior.stats.SkillLevel)
	d := e.state.CurrentDifficulty
	d += (target - d) * rate
	e.state.CurrentDifficulty = math.Max(MinDifficulty, math.Min(MaxDifficulty, d))
}

// TargetDifficulty returns the difficulty a player of the given skill level
// should converge to. Out-of-range levels map to InitialDifficulty.
func TargetDifficulty(skillLevel int) float64 {
	if skillLevel < 1 || skillLevel > len(difficultyTargets) {
		return InitialDifficulty
	}
	return difficultyTargets[skillLevel-1]
}

// MoveInterval maps a difficulty to the time between snake steps. Higher
// difficulty is faster, floored at 50ms.
func MoveInterval(difficulty float64) time.Duration {
	ms := math.Max(50, 150-100*difficulty)
	return time.Duration(math.Round(ms * float64(time.Millisecond)))
}

// Status returns a display snapshot. It has no side effects.
func (e *Engine) Status() Status {
	stats := e.behavior.stats
	return Status{
		DifficultyPercent:  int(math.Round(e.state.CurrentDifficulty * 100)),
		Strategy:           e.state.CurrentStrategy,
		Prediction:         e.state.PredictedNextMove,
		SkillLevel:         stats.SkillLevel,
		TotalMoves:         stats.TotalMoves,
		SuccessRatePercent: int(math.Round(stats.SuccessRate() * 100)),
	}
}

// UpdateSettings applies a partial settings update.
func (e *Engine) UpdateSettings(p SettingsPatch) {
	e.settings = e.settings.Apply(p)
}

// Settings returns the current settings.
func (e *Engine) Settings() Settings {
	return e.settings
}

// State returns a copy of the director state.
func (e *Engine) State() GameState {
	s := e.state
	if s.LastFoodPlacement != nil {
		p := *s.LastFoodPlacement
		s.LastFoodPlacement = &p
	}
	return s
}

// Difficulty returns the current difficulty in [MinDifficulty, MaxDifficulty].
func (e *Engine) Difficulty() float64 {
	return e.state.CurrentDifficulty
}

// Strategy returns the current strategy.
func (e *Engine) Strategy() Strategy {
	return e.state.CurrentStrategy
}

// Behavior exposes the underlying behaviour model for read access.
func (e *Engine) Behavior() *Behavior {
	return e.behavior
}
