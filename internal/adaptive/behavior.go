package adaptive

import "time"

// HistorySize is the number of recent moves kept for pattern analysis.
const HistorySize = 10

// Pattern is three consecutive directions, oldest first.
type Pattern [3]Direction

// String joins the pattern's direction names.
func (p Pattern) String() string {
	return p[0].String() + p[1].String() + p[2].String()
}

// PatternTable counts observed 3-grams. Keys are remembered in the order
// they were first seen so lookups that scan the table are deterministic.
type PatternTable struct {
	counts map[Pattern]int
	order  []Pattern
}

// NewPatternTable creates an empty pattern table.
func NewPatternTable() *PatternTable {
	return &PatternTable{counts: make(map[Pattern]int)}
}

// Observe increments the count for p.
func (t *PatternTable) Observe(p Pattern) {
	if _, ok := t.counts[p]; !ok {
		t.order = append(t.order, p)
	}
	t.counts[p]++
}

// Count returns how often p has been observed.
func (t *PatternTable) Count(p Pattern) int {
	return t.counts[p]
}

// Len returns the number of distinct patterns.
func (t *PatternTable) Len() int {
	return len(t.order)
}

// MostFrequentAfter returns the third direction of the most frequent
// pattern starting with (first, second). Ties resolve to the pattern seen
// first. ok is false if no pattern has that prefix.
func (t *PatternTable) MostFrequentAfter(first, second Direction) (next Direction, ok bool) {
	best := 0
	for _, p := range t.order {
		if p[0] != first || p[1] != second {
			continue
		}
		if c := t.counts[p]; c > best {
			best = c
			next = p[2]
		}
	}
	return next, best > 0
}

// Clear removes all patterns.
func (t *PatternTable) Clear() {
	clear(t.counts)
	t.order = t.order[:0]
}

// PlayerStats summarises everything observed about the player this session.
type PlayerStats struct {
	TotalMoves          int
	AverageReactionTime float64 // milliseconds
	PreferredDirections map[Direction]int
	LastMoves           []Direction // oldest first, at most HistorySize
	SkillLevel          int         // 1..5
	CollisionCount      int
	FoodCollected       int
}

// SuccessRate returns food / (food + collisions), with the denominator
// floored at 1.
func (s PlayerStats) SuccessRate() float64 {
	return float64(s.FoodCollected) / float64(max(1, s.CollisionCount+s.FoodCollected))
}

// Behavior is the player behaviour model. It only records observations and
// derives summaries from them; all mutation goes through the Record methods.
type Behavior struct {
	stats    PlayerStats
	patterns *PatternTable
}

// NewBehavior creates an empty behaviour model.
func NewBehavior() *Behavior {
	b := &Behavior{patterns: NewPatternTable()}
	b.Reset()
	return b
}

// Reset forgets every observation.
func (b *Behavior) Reset() {
	b.stats = PlayerStats{
		PreferredDirections: map[Direction]int{Up: 0, Down: 0, Left: 0, Right: 0},
		LastMoves:           make([]Direction, 0, HistorySize),
		SkillLevel:          1,
	}
	b.patterns.Clear()
}

// RecordMove ingests one accepted player move.
func (b *Behavior) RecordMove(d Direction, reaction time.Duration) {
	s := &b.stats
	s.TotalMoves++

	sample := float64(reaction) / float64(time.Millisecond)
	s.AverageReactionTime += (sample - s.AverageReactionTime) / float64(s.TotalMoves)

	s.PreferredDirections[d]++

	if len(s.LastMoves) == HistorySize {
		copy(s.LastMoves, s.LastMoves[1:])
		s.LastMoves = s.LastMoves[:HistorySize-1]
	}
	s.LastMoves = append(s.LastMoves, d)

	if n := len(s.LastMoves); n >= 3 {
		b.patterns.Observe(Pattern{s.LastMoves[n-3], s.LastMoves[n-2], s.LastMoves[n-1]})
	}

	b.updateSkill()
}

// RecordCollision counts a death.
func (b *Behavior) RecordCollision() {
	b.stats.CollisionCount++
	b.updateSkill()
}

// RecordFoodCollection counts a food item eaten.
func (b *Behavior) RecordFoodCollection() {
	b.stats.FoodCollected++
	b.updateSkill()
}

func (b *Behavior) updateSkill() {
	b.stats.SkillLevel = SkillLevelFor(b.stats.SuccessRate(), b.stats.AverageReactionTime)
}

// SkillLevelFor maps a success rate and an average reaction time in
// milliseconds to a skill level in [1,5]. All thresholds are strict.
func SkillLevelFor(successRate, avgReactionMs float64) int {
	level := 1
	switch {
	case successRate > 0.8 && avgReactionMs < 200:
		level = 5
	case successRate > 0.6 && avgReactionMs < 300:
		level = 4
	case successRate > 0.4 && avgReactionMs < 500:
		level = 3
	case successRate > 0.2:
		level = 2
	}
	return min(5, max(1, level))
}

// Stats returns a copy of the current statistics.
func (b *Behavior) Stats() PlayerStats {
	s := b.stats
	s.PreferredDirections = make(map[Direction]int, len(b.stats.PreferredDirections))
	for d, n := range b.stats.PreferredDirections {
		s.PreferredDirections[d] = n
	}
	s.LastMoves = append([]Direction(nil), b.stats.LastMoves...)
	return s
}

// SkillLevel returns the derived skill level.
func (b *Behavior) SkillLevel() int {
	return b.stats.SkillLevel
}

// Patterns exposes the 3-gram table for inspection.
func (b *Behavior) Patterns() *PatternTable {
	return b.patterns
}

// PredictNext guesses the player's next move from the last two moves. With
// fewer than two moves, or no matching pattern, it returns current.
func (b *Behavior) PredictNext(current Direction) Direction {
	moves := b.stats.LastMoves
	if len(moves) < 2 {
		return current
	}
	if next, ok := b.patterns.MostFrequentAfter(moves[len(moves)-2], moves[len(moves)-1]); ok {
		return next
	}
	return current
}

// IsRepetitive reports whether the last three moves repeat the three before
// them.
func (b *Behavior) IsRepetitive() bool {
	moves := b.stats.LastMoves
	n := len(moves)
	if n < 6 {
		return false
	}
	for i := 0; i < 3; i++ {
		if moves[n-6+i] != moves[n-3+i] {
			return false
		}
	}
	return true
}

// MostPreferredDirection returns the direction chosen most often. Ties go
// to the later direction in Directions order, so an empty history yields
// Right.
func (b *Behavior) MostPreferredDirection() Direction {
	prefs := b.stats.PreferredDirections
	best := Directions[0]
	for _, d := range Directions[1:] {
		if prefs[d] >= prefs[best] {
			best = d
		}
	}
	return best
}
