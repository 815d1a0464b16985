package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/bigfish/telemetry"
)

// emit appends an event to this tick's list and counts it in the stats window.
func (g *Game) emit(ev telemetry.Event) {
	g.events = append(g.events, ev)
	g.collector.Record(ev)
}

// applyResolution commits the collision outcome and emits its events.
// Player and absorber state is read after the world has been updated, so
// sizes in the events are the new sizes.
func (g *Game) applyResolution() {
	res := &g.resolution
	g.collision.Apply(res)
	g.numFish -= res.Removed()

	for _, e := range res.Despawned {
		g.emit(telemetry.NewFishDespawnedEvent(g.tick, e.ID(), g.retire(e)))
	}

	for _, m := range res.Meals {
		slot := g.slotOf(m.Player)
		g.retire(m.Fish)
		g.emit(telemetry.NewFishEatenEvent(g.tick, m.Fish.ID(), m.FishSize, slot, m.Player.ID()))
		g.emit(telemetry.NewPlayerGrewEvent(g.tick, slot, m.Player.ID(), g.bodyMap.Get(m.Player).Size, m.Growth))
	}

	for _, a := range res.Absorbed {
		g.retire(a.Prey)
		g.lifetimeTracker.RecordAbsorb(a.Eater.ID(), g.bodyMap.Get(a.Eater).Size)
		g.emit(telemetry.NewFishAbsorbedEvent(g.tick, a.Prey.ID(), a.PreySize, a.Eater.ID()))
	}

	for _, d := range res.Deaths {
		slot := g.slotOf(d.Player)
		player := g.playerMap.Get(d.Player)
		size := g.bodyMap.Get(d.Player).Size
		if slot >= 0 {
			g.deathTicks[slot] = g.tick
		}
		g.emit(telemetry.NewPlayerDiedEvent(g.tick, slot, d.Player.ID(), size, d.Fish.ID()))
		g.logger.Info("player died",
			"tick", g.tick,
			"player", player.Name,
			"score", player.Score,
			"size", size,
			"fish_size", d.FishSize,
		)
	}
}

// retire drops a removed fish from the lifetime tracker and records how long
// it lived. Returns the fish's last size (fish only grow), or 0 if it was
// never tracked.
func (g *Game) retire(e ecs.Entity) float64 {
	ls := g.lifetimeTracker.Remove(e.ID())
	if ls == nil {
		return 0
	}
	g.collector.RecordLifetime(ls.SurvivalSec(g.tick, g.cfg.Derived.DT))
	return ls.PeakSize
}

// slotOf returns the slot of a player entity.
func (g *Game) slotOf(e ecs.Entity) int8 {
	for i, pe := range g.playerEntities {
		if pe == e {
			return int8(i)
		}
	}
	return telemetry.NoSlot
}

// checkTerminal marks the match over once every player is dead. Returns true
// on the tick the match ends.
func (g *Game) checkTerminal() bool {
	for _, e := range g.playerEntities {
		if !g.playerMap.Get(e).Dead {
			return false
		}
	}

	g.terminal = true
	g.emit(telemetry.NewGameOverEvent(g.tick))
	g.finishMatch()
	return true
}

// finishMatch records the final scores and flushes the partial stats window.
func (g *Game) finishMatch() {
	args := []any{"tick", g.tick}

	for i, e := range g.playerEntities {
		player := g.playerMap.Get(e)
		size := g.bodyMap.Get(e).Size
		survival := float64(g.deathTicks[i]) * g.cfg.Derived.DT
		args = append(args, player.Name, player.Score)

		g.hallOfFame.Consider(telemetry.HallEntry{
			Name:        player.Name,
			Score:       player.Score,
			Size:        size,
			SurvivalSec: survival,
			Session:     g.session.String(),
		})
	}
	g.logger.Info("game over", args...)

	g.flushWindow()
	if g.snapshotDir != "" {
		g.saveSnapshot(nil)
	}
}
