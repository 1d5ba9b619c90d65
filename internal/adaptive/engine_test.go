package adaptive

import (
	"math"
	"reflect"
	"testing"
	"time"
)

// fixedSource replays a sequence of draws, repeating the last one.
type fixedSource struct {
	vals []float64
	i    int
}

func (s *fixedSource) Float64() float64 {
	v := s.vals[min(s.i, len(s.vals)-1)]
	s.i++
	return v
}

func newTestEngine(draws ...float64) *Engine {
	if len(draws) == 0 {
		draws = []float64{0}
	}
	return New(WithSource(&fixedSource{vals: draws}))
}

func TestFreshEngineState(t *testing.T) {
	e := newTestEngine()

	st := e.Status()
	if st.DifficultyPercent != 30 {
		t.Errorf("DifficultyPercent = %d, want 30", st.DifficultyPercent)
	}
	if st.Strategy != StrategyLearning {
		t.Errorf("Strategy = %s, want learning", st.Strategy)
	}
	if st.Prediction != None {
		t.Errorf("Prediction = %v, want none", st.Prediction)
	}
	if st.SkillLevel != 1 || st.TotalMoves != 0 || st.SuccessRatePercent != 0 {
		t.Errorf("unexpected fresh status: %+v", st)
	}
	if e.State().LastFoodPlacement != nil {
		t.Error("fresh engine should have no food placement")
	}
}

func TestCollisionsRouteToEncouraging(t *testing.T) {
	e := newTestEngine()

	// An excellent player first.
	e.RecordMove(Right, 100*time.Millisecond)
	for i := 0; i < 20; i++ {
		e.RecordFoodCollection()
	}
	if e.Strategy() != StrategyChallenging {
		t.Fatalf("Strategy = %s, want challenging before collisions", e.Strategy())
	}

	for i := 0; i < 4; i++ {
		e.RecordCollision()
	}
	e.RecordCollision()

	if e.Strategy() != StrategyEncouraging {
		t.Errorf("Strategy = %s, want encouraging", e.Strategy())
	}
}

func TestSlowReactionsRouteToEncouraging(t *testing.T) {
	e := newTestEngine()
	e.RecordMove(Up, 900*time.Millisecond)
	e.RecordFoodCollection()

	if e.Strategy() != StrategyEncouraging {
		t.Errorf("Strategy = %s, want encouraging", e.Strategy())
	}
}

func TestExcellingPlayer(t *testing.T) {
	e := newTestEngine()
	e.RecordMove(Right, 150*time.Millisecond)
	for i := 0; i < 9; i++ {
		e.RecordFoodCollection()
	}
	e.RecordCollision()

	st := e.Status()
	if st.SkillLevel != 5 {
		t.Errorf("SkillLevel = %d, want 5", st.SkillLevel)
	}
	if st.SuccessRatePercent != 90 {
		t.Errorf("SuccessRatePercent = %d, want 90", st.SuccessRatePercent)
	}
	if st.Strategy != StrategyChallenging {
		t.Errorf("Strategy = %s, want challenging", st.Strategy)
	}
}

func TestRepetitivePlayer(t *testing.T) {
	e := newTestEngine()
	for i := 0; i < 2; i++ {
		e.RecordMove(Right, 400*time.Millisecond)
		e.RecordMove(Right, 400*time.Millisecond)
		e.RecordMove(Down, 400*time.Millisecond)
	}
	e.RecordFoodCollection()

	if e.Strategy() != StrategyPatternBreaking {
		t.Errorf("Strategy = %s, want pattern-breaking", e.Strategy())
	}

	e.RecordMove(Left, 400*time.Millisecond)
	e.RecordFoodCollection()
	if e.Strategy() != StrategyLearning {
		t.Errorf("Strategy = %s, want learning once the repetition is broken", e.Strategy())
	}
}

func TestStrugglingBeatsRepetitive(t *testing.T) {
	e := newTestEngine()
	for i := 0; i < 2; i++ {
		e.RecordMove(Right, 0)
		e.RecordMove(Right, 0)
		e.RecordMove(Down, 0)
	}
	for i := 0; i < 4; i++ {
		e.RecordCollision()
	}

	if e.Strategy() != StrategyEncouraging {
		t.Errorf("Strategy = %s, want encouraging", e.Strategy())
	}
}

func TestPredictNext(t *testing.T) {
	e := newTestEngine()

	if got := e.PredictNext(Left); got != Left {
		t.Errorf("PredictNext with no history = %v, want left", got)
	}
	if e.Status().Prediction != None {
		t.Error("short-history prediction should not be stored")
	}

	for i := 0; i < 3; i++ {
		e.RecordMove(Right, 0)
		e.RecordMove(Right, 0)
		e.RecordMove(Down, 0)
	}

	if got := e.PredictNext(Down); got != Right {
		t.Errorf("PredictNext = %v, want right", got)
	}
	if e.Status().Prediction != Right {
		t.Errorf("stored prediction = %v, want right", e.Status().Prediction)
	}
}

func TestPredictNextDisabled(t *testing.T) {
	e := newTestEngine()
	e.RecordMove(Up, 0)
	e.RecordMove(Up, 0)
	e.RecordMove(Up, 0)

	off := false
	e.UpdateSettings(SettingsPatch{ShowPredictions: &off})

	if got := e.PredictNext(Up); got != None {
		t.Errorf("PredictNext = %v, want none when disabled", got)
	}
}

func TestAdjustDifficultySmoothing(t *testing.T) {
	e := newTestEngine()
	e.AdjustDifficulty()

	// Skill 1 targets 0.2: 0.3 + (0.2 - 0.3) * 0.05.
	want := 0.295
	if got := e.Difficulty(); math.Abs(got-want) > 1e-12 {
		t.Errorf("Difficulty = %f, want %f", got, want)
	}
}

func TestAdjustDifficultyStaysClamped(t *testing.T) {
	for _, rate := range []float64{0.05, 0.5, 1.0} {
		for _, excellent := range []bool{false, true} {
			e := New(
				WithSource(&fixedSource{vals: []float64{0}}),
				WithSettings(DefaultSettings().Apply(SettingsPatch{DifficultyAdjustmentRate: &rate})),
			)
			if excellent {
				e.RecordMove(Up, 50*time.Millisecond)
				for i := 0; i < 10; i++ {
					e.RecordFoodCollection()
				}
			}

			for i := 0; i < 1000; i++ {
				e.AdjustDifficulty()
				if d := e.Difficulty(); d < MinDifficulty || d > MaxDifficulty {
					t.Fatalf("rate %v: difficulty %f escaped [%v,%v]", rate, d, MinDifficulty, MaxDifficulty)
				}
			}

			target := TargetDifficulty(e.Status().SkillLevel)
			if math.Abs(e.Difficulty()-target) > 1e-6 {
				t.Errorf("rate %v: difficulty %f did not converge to %f", rate, e.Difficulty(), target)
			}
		}
	}
}

func TestAdjustDifficultyIgnoresNonFiniteRate(t *testing.T) {
	for _, rate := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		e := New(
			WithSource(&fixedSource{vals: []float64{0}}),
			WithSettings(DefaultSettings().Apply(SettingsPatch{DifficultyAdjustmentRate: &rate})),
		)
		e.AdjustDifficulty()
		if e.Difficulty() != InitialDifficulty {
			t.Errorf("rate %v: Difficulty = %f, want unchanged %f", rate, e.Difficulty(), InitialDifficulty)
		}
		if iv := MoveInterval(e.Difficulty()); iv < 50*time.Millisecond || iv > 150*time.Millisecond {
			t.Errorf("rate %v: MoveInterval = %v", rate, iv)
		}
	}
}

func TestAdjustDifficultyDisabled(t *testing.T) {
	e := newTestEngine()
	off := false
	e.UpdateSettings(SettingsPatch{AdaptiveDifficulty: &off})

	for i := 0; i < 10; i++ {
		e.AdjustDifficulty()
	}
	if e.Difficulty() != InitialDifficulty {
		t.Errorf("Difficulty = %f, want unchanged %f", e.Difficulty(), InitialDifficulty)
	}
}

func TestTargetDifficulty(t *testing.T) {
	want := map[int]float64{0: 0.3, 1: 0.2, 2: 0.35, 3: 0.5, 4: 0.7, 5: 0.9, 6: 0.3}
	for level, w := range want {
		if got := TargetDifficulty(level); got != w {
			t.Errorf("TargetDifficulty(%d) = %v, want %v", level, got, w)
		}
	}
}

func TestMoveInterval(t *testing.T) {
	tests := []struct {
		difficulty float64
		want       time.Duration
	}{
		{0, 150 * time.Millisecond},
		{0.3, 120 * time.Millisecond},
		{0.5, 100 * time.Millisecond},
		{1.0, 50 * time.Millisecond},
	}
	for _, tt := range tests {
		if got := MoveInterval(tt.difficulty); got != tt.want {
			t.Errorf("MoveInterval(%v) = %v, want %v", tt.difficulty, got, tt.want)
		}
	}
}

func TestResetMatchesFreshEngine(t *testing.T) {
	e := newTestEngine(0.4)
	for i := 0; i < 12; i++ {
		e.RecordMove(Directions[i%4], time.Duration(i*40)*time.Millisecond)
	}
	e.RecordFoodCollection()
	e.RecordCollision()
	e.PredictNext(Up)
	e.AdjustDifficulty()
	e.PlaceFood([]Position{{X: 2, Y: 2}}, 6)

	e.Reset()
	once := snapshotEngine(e)
	e.Reset()
	twice := snapshotEngine(e)

	fresh := snapshotEngine(newTestEngine())

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("second reset changed state: %+v vs %+v", once, twice)
	}
	if !reflect.DeepEqual(once, fresh) {
		t.Errorf("reset state %+v differs from fresh %+v", once, fresh)
	}
}

type engineSnapshot struct {
	Status   Status
	State    GameState
	Stats    PlayerStats
	Patterns int
}

func snapshotEngine(e *Engine) engineSnapshot {
	return engineSnapshot{
		Status:   e.Status(),
		State:    e.State(),
		Stats:    e.Behavior().Stats(),
		Patterns: e.Behavior().Patterns().Len(),
	}
}

func TestResetKeepsSettings(t *testing.T) {
	e := newTestEngine()
	off := false
	e.UpdateSettings(SettingsPatch{SmartFoodPlacement: &off})
	e.Reset()

	if e.Settings().SmartFoodPlacement {
		t.Error("Reset should not restore default settings")
	}
}

func TestUpdateSettingsPartial(t *testing.T) {
	e := newTestEngine()
	rate := 0.2
	e.UpdateSettings(SettingsPatch{DifficultyAdjustmentRate: &rate})

	s := e.Settings()
	if s.DifficultyAdjustmentRate != 0.2 {
		t.Errorf("DifficultyAdjustmentRate = %v, want 0.2", s.DifficultyAdjustmentRate)
	}
	if !s.AdaptiveDifficulty || !s.SmartFoodPlacement || !s.ShowPredictions {
		t.Errorf("untouched toggles changed: %+v", s)
	}
	if s.LearningRate != 0.1 {
		t.Errorf("LearningRate = %v, want 0.1", s.LearningRate)
	}
}

func TestParseSettingsPatch(t *testing.T) {
	patch, unknown, err := ParseSettingsPatch(map[string]string{
		KeyShowPredictions:          "false",
		KeyDifficultyAdjustmentRate: "0.1",
		"turbo":                     "yes",
		"colour":                    "red",
	})
	if err != nil {
		t.Fatalf("ParseSettingsPatch() failed: %v", err)
	}

	if !reflect.DeepEqual(unknown, []string{"colour", "turbo"}) {
		t.Errorf("unknown = %v, want [colour turbo]", unknown)
	}

	s := DefaultSettings().Apply(patch)
	if s.ShowPredictions {
		t.Error("ShowPredictions should be false")
	}
	if s.DifficultyAdjustmentRate != 0.1 {
		t.Errorf("DifficultyAdjustmentRate = %v, want 0.1", s.DifficultyAdjustmentRate)
	}
	if !s.SmartFoodPlacement {
		t.Error("SmartFoodPlacement should be untouched")
	}
}

func TestParseSettingsPatchErrors(t *testing.T) {
	bad := []map[string]string{
		{KeyAdaptiveDifficulty: "maybe"},
		{KeyLearningRate: "fast"},
		{KeyDifficultyAdjustmentRate: "1.5"},
		{KeyDifficultyAdjustmentRate: "-0.1"},
		{KeyDifficultyAdjustmentRate: "NaN"},
		{KeyLearningRate: "nan"},
		{KeyDifficultyAdjustmentRate: "+Inf"},
	}
	for _, kv := range bad {
		if _, _, err := ParseSettingsPatch(kv); err == nil {
			t.Errorf("ParseSettingsPatch(%v) expected error", kv)
		}
	}
}
