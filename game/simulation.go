package game

import (
	"github.com/pthm-cable/bigfish/systems"
)

// Step runs one tick: players move, fish decide and move, collisions
// resolve, then the terminal check and the spawn gate. Once every player
// is dead, Step does nothing until Reset.
func (g *Game) Step(in Input) {
	g.events = g.events[:0]
	if g.terminal {
		return
	}

	g.tick++
	g.totalTicks++
	g.perfCollector.StartTick()

	g.perfCollector.StartPhase(systems.PhasePlayers)
	copy(g.inputs, in.Players[:])
	g.players.Update(g.inputs)

	g.perfCollector.StartPhase(systems.PhaseBehavior)
	g.behavior.Update()

	g.perfCollector.StartPhase(systems.PhasePhysics)
	g.physics.Update()

	g.perfCollector.StartPhase(systems.PhaseCollision)
	g.collision.Resolve(&g.resolution)
	g.applyResolution()

	// The tick that ends the match spawns nothing.
	if !g.checkTerminal() {
		g.perfCollector.StartPhase(systems.PhaseSpawn)
		g.trySpawn()

		g.perfCollector.StartPhase(systems.PhaseTelemetry)
		g.flushTelemetry()
	}

	g.writeEvents()
	g.perfCollector.EndTick()
}

// Update advances the match by the configured number of ticks, all with the
// same input. It does nothing while paused.
func (g *Game) Update(in Input) {
	if g.paused || g.terminal {
		return
	}
	g.frameEvents = g.frameEvents[:0]
	for i := 0; i < g.stepsPerUpdate && !g.terminal; i++ {
		g.Step(in)
		g.frameEvents = append(g.frameEvents, g.events...)
	}
}

// UpdateHeadless advances the match with idle players. A finished match is
// reset so long headless runs produce one session after another.
func (g *Game) UpdateHeadless() {
	if g.terminal {
		g.Reset()
	}
	g.Update(Input{})
}

// writeEvents appends this tick's events to the events log.
func (g *Game) writeEvents() {
	if g.outputManager == nil || len(g.events) == 0 {
		return
	}
	if err := g.outputManager.WriteEvents(g.events); err != nil {
		g.logger.Error("failed to write events", "error", err)
	}
}
