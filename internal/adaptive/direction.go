// Package adaptive implements the adaptive gameplay engine for Snake: a
// behaviour model that learns from the player's moves and a director that
// uses it to place food and steer difficulty.
//
// The engine is single-threaded and frame-driven. It owns no timers and
// never blocks; the host game loop calls into it synchronously.
package adaptive

// Direction is one of the four cardinal movement directions.
type Direction uint8

const (
	None Direction = iota
	Up
	Down
	Left
	Right
)

// Directions lists the cardinal directions in the order used for
// preference tie-breaking.
var Directions = [4]Direction{Up, Down, Left, Right}

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "none"
	}
}

// Arrow returns a single-rune glyph for HUD display.
func (d Direction) Arrow() rune {
	switch d {
	case Up:
		return '↑'
	case Down:
		return '↓'
	case Left:
		return '←'
	case Right:
		return '→'
	default:
		return '?'
	}
}

// Valid reports whether d is a cardinal direction.
func (d Direction) Valid() bool {
	return d >= Up && d <= Right
}

// ParseDirection converts a direction name to a Direction.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "up":
		return Up, true
	case "down":
		return Down, true
	case "left":
		return Left, true
	case "right":
		return Right, true
	}
	return None, false
}

// Position is a grid cell. Y grows downwards.
type Position struct {
	X, Y int
}

// Step returns the neighbouring cell in direction d.
func (p Position) Step(d Direction) Position {
	switch d {
	case Up:
		return Position{X: p.X, Y: p.Y - 1}
	case Down:
		return Position{X: p.X, Y: p.Y + 1}
	case Left:
		return Position{X: p.X - 1, Y: p.Y}
	case Right:
		return Position{X: p.X + 1, Y: p.Y}
	}
	return p
}

// Manhattan returns |dx| + |dy| between two cells.
func Manhattan(a, b Position) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

// heading infers the snake's current direction from its head and neck.
// Snakes shorter than two segments are treated as heading right.
func heading(snake []Position) Direction {
	if len(snake) < 2 {
		return Right
	}
	head, neck := snake[0], snake[1]
	switch {
	case head.X > neck.X:
		return Right
	case head.X < neck.X:
		return Left
	case head.Y > neck.Y:
		return Down
	default:
		return Up
	}
}

// directionTo returns the dominant direction of the straight line from one
// cell to another. Ties between the axes go to the vertical axis.
func directionTo(from, to Position) Direction {
	dx := to.X - from.X
	dy := to.Y - from.Y
	if abs(dx) > abs(dy) {
		if dx > 0 {
			return Right
		}
		return Left
	}
	if dy > 0 {
		return Down
	}
	return Up
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
