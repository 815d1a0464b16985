package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// lightBands is the number of drifting light shafts drawn over the water.
const lightBands = 6

// WaterBackground renders a depth gradient with slowly drifting light shafts.
type WaterBackground struct {
	width, height int32
	surface       rl.Color
	deep          rl.Color
	shaft         rl.Color
}

// NewWaterBackground creates a new water background renderer.
func NewWaterBackground(width, height int32) *WaterBackground {
	return &WaterBackground{
		width:   width,
		height:  height,
		surface: rl.Color{R: 40, G: 110, B: 160, A: 255},
		deep:    rl.Color{R: 8, G: 28, B: 60, A: 255},
		shaft:   rl.Color{R: 200, G: 230, B: 255, A: 18},
	}
}

// Draw renders the background. time is in seconds.
func (w *WaterBackground) Draw(time float32) {
	rl.DrawRectangleGradientV(0, 0, w.width, w.height, w.surface, w.deep)

	spacing := float32(w.width) / lightBands
	for i := 0; i < lightBands; i++ {
		phase := float64(time)*0.15 + float64(i)*1.7
		x := float32(i)*spacing + float32(math.Sin(phase))*spacing*0.3
		top := float32(math.Abs(math.Sin(phase*0.7)))*spacing*0.2 + spacing*0.15

		// A slanted quad fading toward the bottom of the screen.
		a := rl.Vector2{X: x, Y: 0}
		b := rl.Vector2{X: x + top, Y: 0}
		c := rl.Vector2{X: x + top + spacing*0.6, Y: float32(w.height)}
		d := rl.Vector2{X: x + spacing*0.4, Y: float32(w.height)}
		drawQuad(a, b, c, d, w.shaft)
	}
}

// drawQuad fills a convex quad given in either winding.
func drawQuad(a, b, c, d rl.Vector2, color rl.Color) {
	drawTriangle(a, b, c, color)
	drawTriangle(a, c, d, color)
}

// drawTriangle fills a triangle given in either winding. raylib culls
// clockwise triangles, so the vertices are reordered when needed.
func drawTriangle(a, b, c rl.Vector2, color rl.Color) {
	cross := (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
	if cross > 0 {
		b, c = c, b
	}
	rl.DrawTriangle(a, b, c, color)
}
