package ui

import (
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/bigfish/camera"
	"github.com/pthm-cable/bigfish/config"
	"github.com/pthm-cable/bigfish/game"
	"github.com/pthm-cable/bigfish/inspector"
	"github.com/pthm-cable/bigfish/renderer"
	"github.com/pthm-cable/bigfish/telemetry"
)

const controlsLegend = "SPACE: new game when over | P: pause | ,/.: speed | F1: debug | F11: fullscreen | click: inspect | wheel/middle drag: zoom/pan | HOME: reset view"

// zoomStep is the zoom factor per mouse wheel notch.
const zoomStep = 1.1

// App runs the windowed game loop. The window must be open before NewApp.
type App struct {
	game     *game.Game
	cfg      *config.Config
	bindings Bindings
	camera   *camera.Camera

	water     *renderer.WaterBackground
	swimmers  *renderer.SwimmerRenderer
	particles *renderer.ParticleSystem
	inspector *inspector.Inspector

	hud        *HUD
	hallOfFame *HallOfFamePanel
	controls   *ControlsPanel
	perf       *PerfPanel
	overlays   *OverlayRegistry

	lastStats telemetry.WindowStats
	lastTotal int64
	width     int32
	height    int32
}

// NewApp wires the presentation layer to a game.
func NewApp(g *game.Game, cfg *config.Config, seed int64) (*App, error) {
	bindings, err := NewBindings(cfg.Controls)
	if err != nil {
		return nil, fmt.Errorf("resolving controls: %w", err)
	}

	w, h := int32(cfg.Screen.Width), int32(cfg.Screen.Height)
	a := &App{
		game:       g,
		cfg:        cfg,
		bindings:   bindings,
		camera:     camera.New(float32(w), float32(h), float32(w), float32(h)),
		water:      renderer.NewWaterBackground(w, h),
		swimmers:   renderer.NewSwimmerRenderer(),
		particles:  renderer.NewParticleSystem(seed),
		inspector:  inspector.NewInspector(w, h),
		hud:        NewHUD(),
		hallOfFame: NewHallOfFamePanel(),
		controls:   NewControlsPanel(10, 100, 280),
		perf:       NewPerfPanel(10, h-160),
		overlays:   NewOverlayRegistry(),
		width:      w,
		height:     h,
	}
	g.SetStatsCallback(func(s telemetry.WindowStats) {
		a.lastStats = s
	})
	return a, nil
}

// Run loops until the window closes or maxTicks total ticks have run
// (0 = unlimited).
func (a *App) Run(maxTicks int64) {
	for !rl.WindowShouldClose() {
		a.handleKeys()
		a.handleMouse()

		a.game.Update(a.bindings.Poll())
		a.game.RecordFrame()

		view := a.game.View()
		var events []telemetry.Event
		if total := a.game.TotalTicks(); total != a.lastTotal {
			a.lastTotal = total
			events = a.game.FrameEvents()
		}
		a.particles.Observe(events, view)
		if !a.game.Paused() {
			a.particles.Update()
		}

		a.draw(view)

		if maxTicks > 0 && a.game.TotalTicks() >= maxTicks {
			slog.Info("max ticks reached", "tick", a.game.TotalTicks())
			return
		}
	}
}

// handleKeys processes global key bindings. Keys bound to a player are
// never used for anything else.
func (a *App) handleKeys() {
	pressed := func(key int32) bool {
		return !a.bindings.Uses(key) && rl.IsKeyPressed(key)
	}

	if pressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if pressed(rl.KeyF1) {
		a.controls.Toggle()
	}
	if pressed(rl.KeySpace) && a.game.Terminal() {
		a.reset()
	}
	if pressed(rl.KeyP) {
		a.game.SetPaused(!a.game.Paused())
	}
	if pressed(rl.KeyComma) && a.game.StepsPerUpdate() > MinSteps {
		a.game.SetStepsPerUpdate(a.game.StepsPerUpdate() - 1)
	}
	if pressed(rl.KeyPeriod) && a.game.StepsPerUpdate() < MaxSteps {
		a.game.SetStepsPerUpdate(a.game.StepsPerUpdate() + 1)
	}
	if pressed(rl.KeyHome) {
		a.camera.Reset()
	}

	a.overlays.PollKeys(a.bindings.Uses)
}

func (a *App) handleMouse() {
	mouse := rl.GetMousePosition()
	if a.controls.Contains(mouse.X, mouse.Y, a.controls.Height(a.overlays, a.lastStats)) {
		return
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		factor := float32(zoomStep)
		if wheel < 0 {
			factor = 1 / factor
		}
		a.camera.ZoomAt(mouse.X, mouse.Y, factor)
	}
	if rl.IsMouseButtonDown(rl.MouseButtonMiddle) {
		delta := rl.GetMouseDelta()
		a.camera.Pan(-delta.X, -delta.Y)
	}

	wx, wy := a.camera.ScreenToWorld(mouse.X, mouse.Y)
	a.inspector.HandleInput(mouse.X, mouse.Y, wx, wy, a.game)
}

// camera2D converts the view camera for raylib's 2D mode.
func (a *App) camera2D() rl.Camera2D {
	return rl.Camera2D{
		Offset: rl.Vector2{X: a.camera.ViewportW / 2, Y: a.camera.ViewportH / 2},
		Target: rl.Vector2{X: a.camera.X, Y: a.camera.Y},
		Zoom:   a.camera.Zoom,
	}
}

func (a *App) reset() {
	a.game.Reset()
	a.particles.Reset()
	a.inspector.Deselect()
	a.lastStats = telemetry.WindowStats{}
	a.lastTotal = a.game.TotalTicks()
}

func (a *App) draw(view game.View) {
	rl.BeginDrawing()
	defer rl.EndDrawing()

	rl.ClearBackground(rl.Black)

	rl.BeginMode2D(a.camera2D())
	a.water.Draw(float32(rl.GetTime()))

	if a.overlays.IsEnabled(OverlayTargets) {
		drawTargets(view)
	}

	style := renderer.FishStyle{
		ModeColors: a.overlays.IsEnabled(OverlayModeColors),
		Hitboxes:   a.overlays.IsEnabled(OverlayHitboxes),
	}
	if a.overlays.IsEnabled(OverlayThreatRadius) {
		style.ThreatRadius = a.cfg.Behavior.ThreatRadius
	}
	a.swimmers.Draw(view, style)
	a.particles.Draw()
	a.inspector.DrawSelectionHighlight(a.game)
	rl.EndMode2D()

	a.hud.Draw(HUDData{
		Players:      view.Players,
		Colors:       renderer.ColorPlayers,
		FishCount:    len(view.Fish),
		Tick:         view.Tick,
		Speed:        a.game.StepsPerUpdate(),
		FPS:          rl.GetFPS(),
		Paused:       a.game.Paused(),
		Terminal:     view.Terminal,
		ScreenWidth:  a.width,
		ScreenHeight: a.height,
	})
	if view.Terminal {
		a.hallOfFame.Draw(a.game.HallOfFame(), a.width, a.height)
	}

	if a.overlays.IsEnabled(OverlayPerf) {
		a.perf.Draw(a.game.PerfStats(), a.game.Registry())
	}

	actions := a.controls.Draw(a.overlays, a.game.StepsPerUpdate(), a.game.Paused(), a.lastStats)
	a.game.SetStepsPerUpdate(actions.Steps)
	if actions.TogglePause {
		a.game.SetPaused(!a.game.Paused())
	}
	if actions.Reset {
		a.reset()
	}

	a.inspector.Draw(a.game)
	a.hud.DrawControls(a.width, a.height, controlsLegend)
}

// drawTargets draws a line from every chasing fish to its target.
func drawTargets(view game.View) {
	color := renderer.ColorPursue
	color.A = 120
	for i := range view.Fish {
		f := &view.Fish[i]
		if !f.HasTarget {
			continue
		}
		rl.DrawLineV(
			rl.Vector2{X: float32(f.X), Y: float32(f.Y)},
			rl.Vector2{X: float32(f.TargetX), Y: float32(f.TargetY)},
			color,
		)
	}
}
