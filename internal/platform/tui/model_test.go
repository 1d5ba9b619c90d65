package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/ai-snake/internal/config"
	"github.com/vovakirdan/ai-snake/internal/core"
	"github.com/vovakirdan/ai-snake/internal/games/snake"
	"github.com/vovakirdan/ai-snake/internal/storage"
)

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestModel(t *testing.T, store *storage.Store) (Model, *snake.Game) {
	t.Helper()
	g := snake.NewWithConfig(snake.ModeAdaptive, config.DefaultSnakeConfig(), nil)
	m := NewModel(g, store, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 100, Seed: 3})
	m.Init()
	return m, g
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm
}

// tickUntilGameOver steers up into the wall.
func tickUntilGameOver(t *testing.T, m Model) Model {
	t.Helper()
	m = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	for i := 0; i < 2000; i++ {
		m = update(t, m, TickMsg(time.Now()))
		if m.gameState.GameOver {
			return m
		}
	}
	t.Fatal("game did not end")
	return m
}

func TestModelRecordsSessionOnce(t *testing.T) {
	store := openTestStore(t)
	m, _ := newTestModel(t, store)

	m = tickUntilGameOver(t, m)
	for i := 0; i < 10; i++ {
		m = update(t, m, TickMsg(time.Now()))
	}

	sessions, err := store.RecentSessions(snake.IDAdaptive, 10)
	if err != nil {
		t.Fatalf("RecentSessions failed: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}
	if sessions[0].TotalMoves != 1 {
		t.Errorf("TotalMoves = %d, want 1", sessions[0].TotalMoves)
	}
	if sessions[0].SessionID == "" {
		t.Error("session should get an ID")
	}
}

func TestModelRestartAllowsNewRecord(t *testing.T) {
	store := openTestStore(t)
	m, _ := newTestModel(t, store)

	m = tickUntilGameOver(t, m)
	m = update(t, m, runeKey('r'))
	m = update(t, m, TickMsg(time.Now()))
	if m.gameState.GameOver || m.scoreSaved {
		t.Fatalf("restart should start a fresh round: %+v saved=%v", m.gameState, m.scoreSaved)
	}

	tickUntilGameOver(t, m)
	sessions, _ := store.RecentSessions(snake.IDAdaptive, 10)
	if len(sessions) != 2 {
		t.Errorf("expected 2 sessions, got %d", len(sessions))
	}
}

func TestModelResizeKeepsRound(t *testing.T) {
	m, g := newTestModel(t, nil)
	for i := 0; i < 30; i++ {
		m = update(t, m, TickMsg(time.Now()))
	}
	before := g.Snapshot()

	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	after := g.Snapshot()
	if after.Tick != before.Tick || after.HeadX != before.HeadX {
		t.Errorf("resize restarted the game: before %+v after %+v", before, after)
	}
	if m.screen.Width() != 120 || m.screen.Height() != 40 {
		t.Errorf("screen = %dx%d, want 120x40", m.screen.Width(), m.screen.Height())
	}
}

func TestModelBackWhenEmbedded(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m.embedded = true

	m = update(t, m, runeKey('b'))
	if !m.BackToMenu() || m.IsQuitting() {
		t.Error("back should return to the menu when embedded")
	}
}

func TestSessionRecordFromSummary(t *testing.T) {
	g := snake.NewWithConfig(snake.ModeClassic, config.DefaultSnakeConfig(), nil)
	g.Reset(core.DefaultConfig())

	rec := SessionRecord(g.Summary())
	if rec.GameID != snake.IDClassic || rec.DifficultyPercent != 30 || rec.Strategy != "learning" || rec.SkillLevel != 1 {
		t.Errorf("record = %+v", rec)
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(10, 3)
	s.DrawText(0, 0, "plain")
	s.DrawTextColor(0, 1, "green", core.ColorGreen)

	out := RenderScreen(s)
	if strings.Count(out, "\n") != 2 {
		t.Errorf("expected 3 lines, got %q", out)
	}
	for _, want := range []string{"plain", "green"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}
