// Package renderer draws the playfield: water, swimmers and effect particles.
package renderer

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/bigfish/components"
	"github.com/pthm-cable/bigfish/game"
)

// Swimmer colors
var (
	ColorPlayers = []rl.Color{
		{R: 255, G: 150, B: 40, A: 255},
		{R: 230, G: 80, B: 200, A: 255},
	}
	ColorDeadPlayer = rl.Color{R: 90, G: 90, B: 90, A: 160}
	ColorFishA      = rl.Color{R: 70, G: 200, B: 180, A: 255}
	ColorFishB      = rl.Color{R: 240, G: 210, B: 80, A: 255}
	ColorPatrol     = rl.Color{R: 90, G: 140, B: 255, A: 255}
	ColorPursue     = rl.Color{R: 240, G: 70, B: 60, A: 255}
	ColorFlee       = rl.Color{R: 90, G: 230, B: 90, A: 255}
	ColorEye        = rl.Color{R: 20, G: 20, B: 30, A: 255}
	ColorHitbox     = rl.Color{R: 255, G: 255, B: 255, A: 90}
	ColorThreat     = rl.Color{R: 255, G: 60, B: 60, A: 60}
)

// FishStyle selects how fish are tinted and decorated.
type FishStyle struct {
	ModeColors   bool    // tint by behavior mode instead of variant
	Hitboxes     bool    // draw the collision circle
	ThreatRadius float64 // ring drawn around each player (0 = off)
}

// SwimmerRenderer draws fish and players as oriented ellipses with a tail.
type SwimmerRenderer struct{}

// NewSwimmerRenderer creates a new swimmer renderer.
func NewSwimmerRenderer() *SwimmerRenderer {
	return &SwimmerRenderer{}
}

// Draw renders every swimmer in the view.
func (r *SwimmerRenderer) Draw(v game.View, style FishStyle) {
	for i := range v.Fish {
		r.drawFish(&v.Fish[i], style)
	}
	for i := range v.Players {
		r.drawPlayer(&v.Players[i], style)
	}
}

func (r *SwimmerRenderer) drawFish(f *game.FishView, style FishStyle) {
	color := ColorFishA
	if f.Variant == 1 {
		color = ColorFishB
	}
	if style.ModeColors {
		color = ModeColor(f.Mode)
	}

	drawBody(f.X, f.Y, f.Size, f.Angle, color)
	if style.Hitboxes {
		rl.DrawCircleLines(int32(f.X), int32(f.Y), float32(f.Size/2), ColorHitbox)
	}
}

func (r *SwimmerRenderer) drawPlayer(p *game.PlayerView, style FishStyle) {
	color := ColorPlayers[int(p.Slot)%len(ColorPlayers)]
	if p.Dead {
		color = ColorDeadPlayer
	}

	if style.ThreatRadius > 0 && !p.Dead {
		rl.DrawCircleLines(int32(p.X), int32(p.Y), float32(style.ThreatRadius), ColorThreat)
	}

	drawBody(p.X, p.Y, p.Size, p.Angle, color)
	if style.Hitboxes {
		rl.DrawCircleLines(int32(p.X), int32(p.Y), float32(p.Size/2), ColorHitbox)
	}

	label := p.Name
	if p.Dead {
		label = fmt.Sprintf("%s (DEAD)", p.Name)
	}
	w := rl.MeasureText(label, 14)
	rl.DrawText(label, int32(p.X)-w/2, int32(p.Y-p.Size/2)-18, 14, color)
}

// ModeColor returns the tint for a behavior mode.
func ModeColor(m components.Mode) rl.Color {
	switch m {
	case components.ModePursuing:
		return ColorPursue
	case components.ModeFleeing:
		return ColorFlee
	default:
		return ColorPatrol
	}
}

// drawBody draws a swimmer of the given size facing angle degrees
// (screen space, 0 faces right, 90 faces up).
func drawBody(x, y, size, angle float64, color rl.Color) {
	rad := angle * math.Pi / 180
	fx, fy := math.Cos(rad), -math.Sin(rad) // forward
	px, py := -fy, fx                       // perpendicular

	rl.DrawEllipse(int32(x), int32(y), float32(size/2), float32(size/3), color)

	// Tail behind the body
	back := rl.Vector2{X: float32(x - fx*size*0.45), Y: float32(y - fy*size*0.45)}
	tip1 := rl.Vector2{X: float32(x - fx*size*0.8 + px*size*0.3), Y: float32(y - fy*size*0.8 + py*size*0.3)}
	tip2 := rl.Vector2{X: float32(x - fx*size*0.8 - px*size*0.3), Y: float32(y - fy*size*0.8 - py*size*0.3)}
	drawTriangle(back, tip1, tip2, color)

	// Eye toward the front
	eye := rl.Vector2{X: float32(x + fx*size*0.25 + px*size*0.08), Y: float32(y + fy*size*0.25 + py*size*0.08)}
	rl.DrawCircleV(eye, float32(math.Max(size*0.05, 1.5)), ColorEye)
}
