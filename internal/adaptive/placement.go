package adaptive

import (
	"math"
	"sort"
)

// Placement tuning.
const (
	topCandidateFraction = 0.3
	rankDecay            = 0.8
	bodyPenalty          = 50.0
	bodyPenaltyRadius    = 2
)

type candidate struct {
	pos   Position
	score float64
}

// PlaceFood picks a free cell on a gridSize x gridSize board. It returns
// false if the snake covers the whole board.
//
// With smart placement disabled the cell is uniformly random. Otherwise
// every free cell is scored for the current strategy and one of the top 30%
// is drawn with weights decaying by rank.
func (e *Engine) PlaceFood(snake []Position, gridSize int) (Position, bool) {
	free := freeCells(snake, gridSize)
	if len(free) == 0 {
		return Position{}, false
	}

	var pos Position
	if !e.settings.SmartFoodPlacement {
		pos = free[intn(e.rng, len(free))]
	} else {
		pos = e.pickScored(free, snake)
	}

	e.state.LastFoodPlacement = &pos
	return pos, true
}

// freeCells lists unoccupied cells column by column.
func freeCells(snake []Position, gridSize int) []Position {
	occupied := make(map[Position]bool, len(snake))
	for _, seg := range snake {
		occupied[seg] = true
	}

	free := make([]Position, 0, max(0, gridSize*gridSize-len(occupied)))
	for x := 0; x < gridSize; x++ {
		for y := 0; y < gridSize; y++ {
			p := Position{X: x, Y: y}
			if !occupied[p] {
				free = append(free, p)
			}
		}
	}
	return free
}

func (e *Engine) pickScored(free, snake []Position) Position {
	head := free[0]
	if len(snake) > 0 {
		head = snake[0]
	}

	scored := make([]candidate, len(free))
	for i, p := range free {
		scored[i] = candidate{pos: p, score: e.scoreCell(p, head, snake)}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	top := scored[:max(1, int(math.Ceil(float64(len(scored))*topCandidateFraction)))]

	weights := make([]float64, len(top))
	total := 0.0
	for i := range top {
		weights[i] = math.Pow(rankDecay, float64(i))
		total += weights[i]
	}

	r := e.rng.Float64() * total
	for i, c := range top {
		r -= weights[i]
		if r <= 0 {
			return c.pos
		}
	}
	return top[0].pos
}

// scoreCell rates a free cell for the current strategy. Higher is better.
func (e *Engine) scoreCell(pos, head Position, snake []Position) float64 {
	d := float64(Manhattan(pos, head))
	var score float64

	switch e.state.CurrentStrategy {
	case StrategyLearning:
		score = 100 - 10*math.Abs(d-5)
	case StrategyChallenging:
		score = 5 * d
		if directionTo(head, pos) != heading(snake) {
			score += 30
		}
	case StrategyEncouraging:
		score = 100 - 15*d
	case StrategyPatternBreaking:
		if directionTo(head, pos) != e.behavior.MostPreferredDirection() {
			score += 50
		}
		score += e.rng.Float64() * 20
	}

	if len(snake) > 1 {
		for _, seg := range snake[1:] {
			if Manhattan(pos, seg) < bodyPenaltyRadius {
				score -= bodyPenalty
			}
		}
	}
	return score
}
