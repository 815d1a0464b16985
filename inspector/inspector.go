package inspector

import (
	"fmt"
	"strconv"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/bigfish/components"
	"github.com/pthm-cable/bigfish/game"
)

// Panel dimensions
const (
	PanelWidth   = 320
	PanelPadding = 10
	HeaderHeight = 30
)

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 30, G: 30, B: 35, A: 240}
	ColorPanelHeader = rl.Color{R: 45, G: 45, B: 55, A: 255}
	ColorPanelBorder = rl.Color{R: 70, G: 70, B: 80, A: 255}
	ColorHeaderText  = rl.Color{R: 255, G: 255, B: 255, A: 255}
	ColorCloseBtn    = rl.Color{R: 180, G: 80, B: 80, A: 255}
	ColorSection     = rl.Color{R: 50, G: 50, B: 60, A: 255}
	ColorSectionText = rl.Color{R: 200, G: 200, B: 220, A: 255}
	ColorTargetLine  = rl.Color{R: 255, G: 80, B: 80, A: 160}
)

// Source is the view of the match the inspector reads from.
type Source interface {
	SwimmerAt(x, y float64) (ecs.Entity, bool)
	Inspect(e ecs.Entity) (game.Inspection, bool)
}

// Inspector manages swimmer selection and panel rendering.
type Inspector struct {
	selected    ecs.Entity
	hasSelected bool
	panelX      int32
	panelY      int32
}

// NewInspector creates a new inspector docked to the right edge.
func NewInspector(screenWidth, screenHeight int32) *Inspector {
	return &Inspector{
		panelX: screenWidth - PanelWidth - 10,
		panelY: 10,
	}
}

// HandleInput processes click detection for swimmer selection. The mouse
// is given in screen space for the panel and in world space for picking.
func (ins *Inspector) HandleInput(mouseX, mouseY, worldX, worldY float32, src Source) {
	// Right click or Escape to deselect
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) || rl.IsKeyPressed(rl.KeyEscape) {
		ins.Deselect()
		return
	}

	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return
	}

	if ins.hasSelected {
		closeX := ins.panelX + PanelWidth - 25
		closeY := ins.panelY + 5
		if int32(mouseX) >= closeX && int32(mouseX) <= closeX+20 &&
			int32(mouseY) >= closeY && int32(mouseY) <= closeY+20 {
			ins.Deselect()
			return
		}

		// Clicks inside the panel do not change the selection
		if int32(mouseX) >= ins.panelX && int32(mouseX) <= ins.panelX+PanelWidth &&
			int32(mouseY) >= ins.panelY {
			return
		}
	}

	if e, ok := src.SwimmerAt(float64(worldX), float64(worldY)); ok {
		ins.selected = e
		ins.hasSelected = true
	}
}

// Deselect clears the current selection.
func (ins *Inspector) Deselect() {
	ins.hasSelected = false
	ins.selected = ecs.Entity{}
}

// Selected returns the currently selected entity.
func (ins *Inspector) Selected() (ecs.Entity, bool) {
	return ins.selected, ins.hasSelected
}

// Draw renders the inspector panel if a swimmer is selected. The selection
// is dropped once the swimmer leaves the world.
func (ins *Inspector) Draw(src Source) {
	if !ins.hasSelected {
		return
	}

	info, ok := src.Inspect(ins.selected)
	if !ok {
		ins.Deselect()
		return
	}

	title, sections := panelContents(info)

	panelHeight := int32(HeaderHeight + PanelPadding)
	for _, s := range sections {
		panelHeight += 20 + 12
		for _, f := range s.fields {
			panelHeight += fieldHeight(f)
		}
	}
	panelHeight += PanelPadding

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, panelHeight, ColorPanelBg)
	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: float32(ins.panelX), Y: float32(ins.panelY), Width: PanelWidth, Height: float32(panelHeight)},
		1,
		ColorPanelBorder,
	)

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, HeaderHeight, ColorPanelHeader)
	rl.DrawText(title, ins.panelX+PanelPadding, ins.panelY+7, 16, ColorHeaderText)

	closeX := ins.panelX + PanelWidth - 25
	closeY := ins.panelY + 5
	rl.DrawRectangle(closeX, closeY, 20, 20, ColorCloseBtn)
	rl.DrawText("X", closeX+6, closeY+3, 14, rl.White)

	x := ins.panelX + PanelPadding
	y := ins.panelY + HeaderHeight + PanelPadding
	for _, s := range sections {
		ins.drawSectionHeader(x, y, s.title)
		y += 20
		for _, f := range s.fields {
			y += DrawField(x, y, f)
		}
		y += 4
		rl.DrawLine(x, y, ins.panelX+PanelWidth-PanelPadding, y, ColorPanelBorder)
		y += 8
	}
}

type section struct {
	title  string
	fields []Field
}

// panelContents lays out the panel title and sections for a swimmer.
func panelContents(info game.Inspection) (string, []section) {
	var title string
	transform := section{title: "TRANSFORM"}
	transform.fields = append(transform.fields,
		Field{Name: "Position", Value: fmt.Sprintf("(%.0f, %.0f)", info.Position.X, info.Position.Y), Widget: WidgetLabel},
		Field{Name: "Velocity", Value: fmt.Sprintf("(%.2f, %.2f)", info.Velocity.X, info.Velocity.Y), Widget: WidgetLabel},
	)
	transform.fields = append(transform.fields, ExtractFields(info.Heading)...)
	transform.fields = append(transform.fields, ExtractFields(info.Body)...)

	sections := []section{transform}

	switch {
	case info.Fish != nil:
		title = fmt.Sprintf("FISH #%d", info.Entity.ID())

		stats := section{title: "MOTION"}
		for _, d := range components.FishFieldDescriptors() {
			v := components.GetFishValue(info.Fish, &info.Body, &info.Velocity, d.ID)
			f := Field{Name: d.Label, Value: v, Widget: WidgetLabel, Options: map[string]string{"fmt": d.Format}}
			if d.IsBar {
				f.Widget = WidgetBar
				f.Options["max"] = strconv.FormatFloat(d.Max, 'f', -1, 64)
			}
			stats.fields = append(stats.fields, f)
		}

		behavior := section{title: "BEHAVIOR", fields: ExtractFields(info.Fish)}
		target := "none"
		if info.Fish.HasTarget() {
			target = fmt.Sprintf("#%d", info.Fish.Target.ID())
		}
		behavior.fields = append(behavior.fields, Field{Name: "Target", Value: target, Widget: WidgetLabel})

		sections = append(sections, stats, behavior)

	case info.Player != nil:
		title = fmt.Sprintf("PLAYER %s", info.Player.Name)
		sections = append(sections, section{title: "PLAYER", fields: ExtractFields(info.Player)})
	}

	return title, sections
}

// drawSectionHeader renders a section title.
func (ins *Inspector) drawSectionHeader(x, y int32, title string) {
	rl.DrawRectangle(x-2, y-2, PanelWidth-2*PanelPadding+4, 18, ColorSection)
	rl.DrawText(title, x+2, y, 14, ColorSectionText)
}

// DrawSelectionHighlight draws a ring around the selected swimmer and a
// line to its chase target.
func (ins *Inspector) DrawSelectionHighlight(src Source) {
	if !ins.hasSelected {
		return
	}

	info, ok := src.Inspect(ins.selected)
	if !ok {
		return
	}

	radius := float32(info.Body.Size) * 0.9
	rl.DrawCircleLines(int32(info.Position.X), int32(info.Position.Y), radius, rl.Yellow)

	if info.Fish == nil || !info.Fish.HasTarget() {
		return
	}
	target, ok := src.Inspect(info.Fish.Target)
	if !ok {
		return
	}
	rl.DrawLineEx(
		rl.Vector2{X: float32(info.Position.X), Y: float32(info.Position.Y)},
		rl.Vector2{X: float32(target.Position.X), Y: float32(target.Position.Y)},
		1.5,
		ColorTargetLine,
	)
}
