package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Speed limits for the steps slider.
const (
	MinSteps = 1
	MaxSteps = 10
)

// ControlActions reports what the user changed in the controls panel this frame.
type ControlActions struct {
	Steps       int // requested steps per update
	TogglePause bool
	Reset       bool
}

// ControlsPanel renders the debug panel: speed, pause, reset and overlay
// toggles, followed by the last stats window.
type ControlsPanel struct {
	renderer *Renderer
	stats    []SectionDescriptor
	x, y     int32
	width    int32
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		stats:    MatchStatsSections(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Contains reports whether a screen point lies over the visible panel.
func (c *ControlsPanel) Contains(x, y float32, height int32) bool {
	if !c.visible {
		return false
	}
	return x >= float32(c.x) && x <= float32(c.x+c.width) && y >= float32(c.y) && y <= float32(c.y+height)
}

// Height returns the panel height for the given stats window.
func (c *ControlsPanel) Height(overlays *OverlayRegistry, stats any) int32 {
	r := c.renderer
	lineHeight := r.Theme.LineHeight
	h := r.Theme.Padding*2 + lineHeight + 4 // title
	h += 24 + 36                            // slider, buttons
	for _, cat := range overlays.Categories() {
		h += lineHeight + int32(len(overlays.ByCategory(cat)))*22 + 4
	}
	for _, sd := range c.stats {
		h += r.SectionHeight(sd, stats)
	}
	return h
}

// Draw renders the controls panel and returns the user's changes.
func (c *ControlsPanel) Draw(overlays *OverlayRegistry, steps int, paused bool, stats any) ControlActions {
	actions := ControlActions{Steps: steps}
	if !c.visible {
		return actions
	}

	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight
	inner := c.width - padding*2

	r.DrawPanel(c.x, c.y, c.width, c.Height(overlays, stats))

	x := c.x + padding
	y := c.y + padding

	rl.DrawText("Debug", x, y, 16, rl.White)
	y += lineHeight + 4

	label := fmt.Sprintf("Speed %dx", steps)
	rl.DrawText(label, x, y+4, r.Theme.FontSize, r.Theme.LabelColor)
	value := gui.SliderBar(
		rl.Rectangle{X: float32(x + 70), Y: float32(y), Width: float32(inner - 100), Height: 20},
		fmt.Sprint(MinSteps), fmt.Sprint(MaxSteps),
		float32(steps), MinSteps, MaxSteps,
	)
	actions.Steps = int(value + 0.5)
	y += 24

	pauseText := "Pause"
	if paused {
		pauseText = "Resume"
	}
	half := float32(inner-10) / 2
	if gui.Button(rl.Rectangle{X: float32(x), Y: float32(y + 4), Width: half, Height: 26}, pauseText) {
		actions.TogglePause = true
	}
	if gui.Button(rl.Rectangle{X: float32(x) + half + 10, Y: float32(y + 4), Width: half, Height: 26}, "Reset") {
		actions.Reset = true
	}
	y += 36

	for _, category := range overlays.Categories() {
		rl.DrawText(categoryLabel(category), x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
		y += lineHeight

		for _, desc := range overlays.ByCategory(category) {
			if c.drawToggle(x, y, desc, overlays.IsEnabled(desc.ID), inner) {
				overlays.Toggle(desc.ID)
			}
			y += 22
		}
		y += 4
	}

	for _, sd := range c.stats {
		y = r.DrawSection(x, y, sd, stats, inner)
	}

	return actions
}

// drawToggle draws a single overlay toggle button. Returns true when clicked.
func (c *ControlsPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, width int32) bool {
	r := c.renderer

	mark := "[ ]"
	if enabled {
		mark = "[x]"
	}
	clicked := gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(width - 40), Height: 20},
		fmt.Sprintf("%s %s", mark, desc.Name))

	if desc.KeyLabel != "" {
		keyText := fmt.Sprintf("[%s]", desc.KeyLabel)
		keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
		rl.DrawText(keyText, x+width-keyWidth, y+4, r.Theme.FontSize, rl.Color{R: 150, G: 150, B: 150, A: 255})
	}
	return clicked
}

// categoryLabel returns a display label for a category.
func categoryLabel(cat string) string {
	switch cat {
	case "visual":
		return "Visual"
	case "behavior":
		return "Behavior"
	case "debug":
		return "Debug"
	default:
		return cat
	}
}
