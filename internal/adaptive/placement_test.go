package adaptive

import (
	"testing"
	"time"
)

func forceStrategy(e *Engine, s Strategy) {
	e.state.CurrentStrategy = s
}

func TestPlaceFoodFullGrid(t *testing.T) {
	e := newTestEngine()
	var snake []Position
	for x := 0; x < 3; x++ {
		for y := 0; y < 3; y++ {
			snake = append(snake, Position{X: x, Y: y})
		}
	}

	if pos, ok := e.PlaceFood(snake, 3); ok {
		t.Errorf("PlaceFood on full grid returned %v, want no position", pos)
	}

	off := false
	e.UpdateSettings(SettingsPatch{SmartFoodPlacement: &off})
	if _, ok := e.PlaceFood(snake, 3); ok {
		t.Error("random PlaceFood on full grid should report no position")
	}
}

func TestPlaceFoodNeverOnSnake(t *testing.T) {
	e := New(WithSource(NewSource(42)))
	const grid = 8

	strategies := []Strategy{StrategyLearning, StrategyChallenging, StrategyEncouraging, StrategyPatternBreaking}
	for _, s := range strategies {
		forceStrategy(e, s)

		// Grow a snake along rows until one free cell remains.
		var snake []Position
		for i := 0; i < grid*grid-1; i++ {
			snake = append([]Position{{X: i % grid, Y: i / grid}}, snake...)

			pos, ok := e.PlaceFood(snake, grid)
			if !ok {
				t.Fatalf("%s: no position with %d of %d cells occupied", s, len(snake), grid*grid)
			}
			if pos.X < 0 || pos.X >= grid || pos.Y < 0 || pos.Y >= grid {
				t.Fatalf("%s: position %v out of bounds", s, pos)
			}
			for _, seg := range snake {
				if seg == pos {
					t.Fatalf("%s: food placed on snake at %v", s, pos)
				}
			}
		}
	}
}

func TestPlaceFoodRecordsPlacement(t *testing.T) {
	e := newTestEngine()
	pos, ok := e.PlaceFood([]Position{{X: 1, Y: 1}}, 4)
	if !ok {
		t.Fatal("expected a position")
	}

	last := e.State().LastFoodPlacement
	if last == nil || *last != pos {
		t.Errorf("LastFoodPlacement = %v, want %v", last, pos)
	}
}

func TestRandomPlacementUsesSource(t *testing.T) {
	e := newTestEngine(0)
	off := false
	e.UpdateSettings(SettingsPatch{SmartFoodPlacement: &off})

	pos, _ := e.PlaceFood([]Position{{X: 0, Y: 0}}, 4)
	if pos != (Position{X: 0, Y: 1}) {
		t.Errorf("first free cell = %v, want (0,1)", pos)
	}

	e = newTestEngine(0.9999)
	e.UpdateSettings(SettingsPatch{SmartFoodPlacement: &off})
	pos, _ = e.PlaceFood([]Position{{X: 0, Y: 0}}, 4)
	if pos != (Position{X: 3, Y: 3}) {
		t.Errorf("last free cell = %v, want (3,3)", pos)
	}
}

func TestLearningPlacementWeightedChoice(t *testing.T) {
	snake := []Position{{X: 0, Y: 0}}

	// Learning peaks at distance 5: (2,3) and (3,2) score 100, then the
	// distance 4 and 6 cells at 90. Top 30% of 15 free cells is 5.
	tests := []struct {
		draw float64
		want Position
	}{
		{0, Position{X: 2, Y: 3}},
		{0.25, Position{X: 2, Y: 3}},
		{0.5, Position{X: 3, Y: 2}},
		{0.6, Position{X: 1, Y: 3}},
		{0.9999, Position{X: 3, Y: 1}},
	}

	for _, tt := range tests {
		e := newTestEngine(tt.draw)
		got, ok := e.PlaceFood(snake, 4)
		if !ok {
			t.Fatal("expected a position")
		}
		if got != tt.want {
			t.Errorf("draw %v: got %v, want %v", tt.draw, got, tt.want)
		}
	}
}

func TestEncouragingPlacesNearHead(t *testing.T) {
	e := newTestEngine(0)
	forceStrategy(e, StrategyEncouraging)

	got, _ := e.PlaceFood([]Position{{X: 5, Y: 5}}, 11)
	if Manhattan(got, Position{X: 5, Y: 5}) != 1 {
		t.Errorf("encouraging placed food at %v, want adjacent to head", got)
	}
	if got != (Position{X: 4, Y: 5}) {
		t.Errorf("got %v, want first adjacent cell (4,5)", got)
	}
}

func TestChallengingPrefersTurns(t *testing.T) {
	e := newTestEngine(0)
	forceStrategy(e, StrategyChallenging)

	// Heading right by default. (3,3) is farthest and needs a turn.
	got, _ := e.PlaceFood([]Position{{X: 0, Y: 0}}, 4)
	if got != (Position{X: 3, Y: 3}) {
		t.Errorf("challenging placed food at %v, want (3,3)", got)
	}
}

func TestScoreCell(t *testing.T) {
	head := Position{X: 5, Y: 5}
	snake := []Position{head, {X: 5, Y: 6}, {X: 5, Y: 7}}

	tests := []struct {
		strategy Strategy
		pos      Position
		want     float64
	}{
		// distance 2, next to one body segment
		{StrategyEncouraging, Position{X: 4, Y: 6}, 100 - 30 - 50},
		// distance 5, clear of the body
		{StrategyLearning, Position{X: 0, Y: 5}, 100},
		// distance 3 straight up, same as heading (head above neck)
		{StrategyChallenging, Position{X: 5, Y: 2}, 15},
		// distance 3 to the right, a turn
		{StrategyChallenging, Position{X: 8, Y: 5}, 45},
		// beside the tail only
		{StrategyEncouraging, Position{X: 6, Y: 7}, 100 - 45 - 50},
		// touching the tail, too far from the rest
		{StrategyLearning, Position{X: 5, Y: 8}, 100 - 10*2 - 50},
	}

	for _, tt := range tests {
		e := newTestEngine(0)
		forceStrategy(e, tt.strategy)
		if got := e.scoreCell(tt.pos, head, snake); got != tt.want {
			t.Errorf("%s %v: score %v, want %v", tt.strategy, tt.pos, got, tt.want)
		}
	}
}

func TestPatternBreakingScore(t *testing.T) {
	e := newTestEngine(0.5)
	forceStrategy(e, StrategyPatternBreaking)
	for i := 0; i < 5; i++ {
		e.RecordMove(Right, 100*time.Millisecond)
	}

	head := Position{X: 5, Y: 5}
	snake := []Position{head}

	// 0.5 draw -> 10 points of noise.
	if got := e.scoreCell(Position{X: 9, Y: 5}, head, snake); got != 10 {
		t.Errorf("cell along preferred direction scored %v, want 10", got)
	}
	if got := e.scoreCell(Position{X: 1, Y: 5}, head, snake); got != 60 {
		t.Errorf("cell against preferred direction scored %v, want 60", got)
	}
}

func TestDirectionHelpers(t *testing.T) {
	if got := heading([]Position{{X: 1, Y: 1}}); got != Right {
		t.Errorf("single segment heading = %v, want right", got)
	}
	if got := heading([]Position{{X: 1, Y: 1}, {X: 1, Y: 2}}); got != Up {
		t.Errorf("heading = %v, want up", got)
	}
	if got := heading([]Position{{X: 1, Y: 1}, {X: 2, Y: 1}}); got != Left {
		t.Errorf("heading = %v, want left", got)
	}

	from := Position{X: 5, Y: 5}
	cases := map[Position]Direction{
		{X: 9, Y: 6}: Right,
		{X: 1, Y: 4}: Left,
		{X: 7, Y: 7}: Down, // tie goes vertical
		{X: 3, Y: 3}: Up,
		{X: 5, Y: 9}: Down,
	}
	for to, want := range cases {
		if got := directionTo(from, to); got != want {
			t.Errorf("directionTo(%v) = %v, want %v", to, got, want)
		}
	}
}
