package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/bigfish/game"
	"github.com/pthm-cable/bigfish/systems"
	"github.com/pthm-cable/bigfish/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Players      []game.PlayerView
	Colors       []rl.Color // per slot
	FishCount    int
	Tick         int32
	Speed        int
	FPS          int32
	Paused       bool
	Terminal     bool
	ScreenWidth  int32
	ScreenHeight int32
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// ScoreLine formats one player's score line.
func ScoreLine(p game.PlayerView) string {
	line := fmt.Sprintf("%s: %d", p.Name, p.Score)
	if p.Dead {
		line += " (DEAD)"
	}
	return line
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	for i, p := range data.Players {
		color := rl.White
		if i < len(data.Colors) {
			color = data.Colors[i]
		}
		rl.DrawText(ScoreLine(p), 10, 10+int32(i)*26, 22, color)
	}

	y := 12 + int32(len(data.Players))*26
	rl.DrawText(
		fmt.Sprintf("Fish: %d | Tick: %d | Speed: %dx | FPS: %d", data.FishCount, data.Tick, data.Speed, data.FPS),
		10, y, 14, rl.LightGray,
	)

	if data.Paused {
		rl.DrawText("PAUSED", 10, y+18, 16, rl.Yellow)
	}

	if data.Terminal {
		h.drawGameOver(data)
	}
}

// drawGameOver renders the centered game-over prompt.
func (h *HUD) drawGameOver(data HUDData) {
	title := "GAME OVER"
	prompt := "Press SPACE to play again"

	tw := rl.MeasureText(title, 48)
	pw := rl.MeasureText(prompt, 20)
	cx := data.ScreenWidth / 2
	cy := data.ScreenHeight / 2

	rl.DrawRectangle(0, cy-60, data.ScreenWidth, 120, rl.Color{R: 0, G: 0, B: 0, A: 150})
	rl.DrawText(title, cx-tw/2, cy-40, 48, rl.White)
	rl.DrawText(prompt, cx-pw/2, cy+20, 20, rl.LightGray)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// HallOfFamePanel lists the best finished rounds.
type HallOfFamePanel struct {
	renderer *Renderer
}

// NewHallOfFamePanel creates a new hall of fame panel.
func NewHallOfFamePanel() *HallOfFamePanel {
	return &HallOfFamePanel{renderer: NewRenderer()}
}

// Draw renders up to five entries centered below the game-over prompt.
func (p *HallOfFamePanel) Draw(entries []telemetry.HallEntry, screenWidth, screenHeight int32) {
	if len(entries) == 0 {
		return
	}
	r := p.renderer
	n := min(len(entries), 5)
	width := int32(300)
	height := int32(n)*r.Theme.LineHeight + r.Theme.LineHeight + r.Theme.Padding*2
	x := screenWidth/2 - width/2
	y := screenHeight/2 + 70

	r.DrawPanel(x, y, width, height)
	y = r.DrawSectionHeader(x+r.Theme.Padding, y+r.Theme.Padding, "Hall of Fame")
	for i := 0; i < n; i++ {
		e := entries[i]
		text := fmt.Sprintf("%d. %-8s %3d  size %.0f  %.0fs", i+1, e.Name, e.Score, e.Size, e.SurvivalSec)
		rl.DrawText(text, x+r.Theme.Padding, y, r.Theme.FontSize, r.Theme.ValueColor)
		y += r.Theme.LineHeight
	}
}

// PerfPanel renders the per-phase tick timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel with phases in tick order.
func (p *PerfPanel) Draw(stats telemetry.PerfStats, registry *systems.SystemRegistry) {
	x := p.x
	y := p.y

	rl.DrawText("Tick Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Avg: %s  Max: %s", stats.AvgTickDuration.Round(time.Microsecond),
		stats.MaxTickDuration.Round(time.Microsecond)), x, y, 14, rl.Yellow)
	y += 16

	for _, id := range registry.IDs() {
		avg := stats.PhaseAvg[id]
		pct := stats.PhasePct[id]

		color := rl.LightGray
		if pct > 40 {
			color = rl.Red
		} else if pct > 20 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-10s %8s %5.1f%%", registry.GetName(id), avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
