package snake

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/ai-snake/internal/adaptive"
	"github.com/vovakirdan/ai-snake/internal/core"
)

const difficultyBarWidth = 10

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	g.renderHUD(dst)

	if g.tooSmall {
		g.renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", g.gridSize*cellWidth+2, g.gridSize+2+hudHeight))
		return
	}

	g.renderArena(dst)
	g.renderHint(dst)
	g.renderFood(dst)
	g.renderSnake(dst)
	if g.showPanel {
		g.renderPanel(dst)
	}

	switch {
	case g.won:
		g.renderOverlay(dst, "Board cleared!", fmt.Sprintf("Final Score: %d", g.score), g.skillLine(), "Press R to restart")
	case g.gameOver:
		g.renderOverlay(dst, "Game Over", fmt.Sprintf("Score: %d", g.score), g.skillLine(), "Press R to restart")
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// skillLine is the end-of-round assessment.
func (g *Game) skillLine() string {
	return fmt.Sprintf("Skill assessment: %d/5", g.engine.Status().SkillLevel)
}

// screenPos maps a grid cell to the left screen column of that cell.
func (g *Game) screenPos(p Point) (int, int) {
	return g.mapOffsetX + p.X*cellWidth, g.mapOffsetY + p.Y
}

func (g *Game) setCell(dst *core.Screen, p Point, left, right rune, c core.Color) {
	x, y := g.screenPos(p)
	dst.SetColor(x, y, left, c)
	dst.SetColor(x+1, y, right, c)
}

func (g *Game) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" %s | Score: %d  Length: %d", g.Title(), g.score, len(g.snake))
	dst.DrawText(0, 0, hud)
	dst.DrawHLine(0, 1, dst.Width(), '─')
}

func (g *Game) renderArena(dst *core.Screen) {
	dst.DrawBox(core.NewRect(
		g.mapOffsetX-1,
		g.mapOffsetY-1,
		g.gridSize*cellWidth+2,
		g.gridSize+2,
	), core.ColorGray)
}

// renderHint marks the cell the player is predicted to turn toward.
func (g *Game) renderHint(dst *core.Screen) {
	if !g.showHints || g.prediction == adaptive.None || g.gameOver || len(g.snake) == 0 {
		return
	}
	p := g.snake[0].Step(g.prediction)
	if p.X < 0 || p.X >= g.gridSize || p.Y < 0 || p.Y >= g.gridSize {
		return
	}
	g.setCell(dst, p, '+', ' ', core.ColorYellow)
}

func (g *Game) renderFood(dst *core.Screen) {
	if !g.hasFood {
		return
	}
	glyph := '*'
	if g.engine.Settings().SmartFoodPlacement {
		glyph = '@'
	}
	g.setCell(dst, g.food, glyph, ' ', core.ColorRed)
}

func (g *Game) renderSnake(dst *core.Screen) {
	for i := len(g.snake) - 1; i >= 0; i-- {
		if i == 0 {
			g.setCell(dst, g.snake[i], '█', '█', core.ColorBrightGreen)
		} else {
			g.setCell(dst, g.snake[i], '▓', '▓', core.ColorGreen)
		}
	}
}

// renderPanel draws the engine status beside the arena.
func (g *Game) renderPanel(dst *core.Screen) {
	st := g.engine.Status()
	x := g.mapOffsetX + g.gridSize*cellWidth + 1 + panelGap
	y := g.mapOffsetY - 1

	dst.DrawBox(core.NewRect(x, y, panelWidth, 11), core.ColorGray)
	dst.DrawTextColor(x+2, y, " AI DIRECTOR ", core.ColorCyan)

	filled := st.DifficultyPercent * difficultyBarWidth / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", difficultyBarWidth-filled)

	prediction := "-"
	if st.Prediction != adaptive.None {
		prediction = fmt.Sprintf("%c %s", st.Prediction.Arrow(), st.Prediction)
	}

	hints := "off"
	if g.showHints {
		hints = "on"
	}
	food := "random *"
	if g.engine.Settings().SmartFoodPlacement {
		food = "smart @"
	}

	rows := []struct {
		label string
		value string
		color core.Color
	}{
		{"Difficulty", fmt.Sprintf("%s %d%%", bar, st.DifficultyPercent), difficultyColor(st.DifficultyPercent)},
		{"Strategy", string(st.Strategy), core.ColorMagenta},
		{"Prediction", prediction, core.ColorYellow},
		{"Skill", fmt.Sprintf("%s %d/5", strings.Repeat("*", st.SkillLevel), st.SkillLevel), core.ColorBrightYellow},
		{"Moves", fmt.Sprintf("%d", st.TotalMoves), core.ColorDefault},
		{"Success", fmt.Sprintf("%d%%", st.SuccessRatePercent), core.ColorDefault},
		{"Food", food, core.ColorRed},
		{"Hints (T)", hints, core.ColorDefault},
	}
	for i, r := range rows {
		dst.DrawText(x+2, y+2+i, r.label)
		dst.DrawTextColor(x+12, y+2+i, r.value, r.color)
	}
}

func difficultyColor(pct int) core.Color {
	switch {
	case pct >= 70:
		return core.ColorBrightRed
	case pct >= 40:
		return core.ColorOrange
	default:
		return core.ColorGreen
	}
}

// renderOverlay draws a centered box with one message per line.
func (g *Game) renderOverlay(dst *core.Screen, lines ...string) {
	maxLen := 0
	for _, l := range lines {
		maxLen = max(maxLen, len([]rune(l)))
	}
	boxW := maxLen + 4
	boxH := len(lines) + 2
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	for y := boxY; y < boxY+boxH; y++ {
		for x := boxX; x < boxX+boxW; x++ {
			dst.Set(x, y, ' ')
		}
	}
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH), core.ColorWhite)
	for i, l := range lines {
		dst.DrawTextCentered(boxY+1+i, l)
	}
}
