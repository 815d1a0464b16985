package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/bigfish/components"
	"github.com/pthm-cable/bigfish/config"
	"github.com/pthm-cable/bigfish/systems"
	"github.com/pthm-cable/bigfish/telemetry"
)

// spawnPlayer creates a player at its configured start position.
func (g *Game) spawnPlayer(slot uint8, start config.PlayerStart) ecs.Entity {
	cfg := g.cfg

	pos := components.Position{X: start.X * cfg.Derived.Width, Y: start.Y * cfg.Derived.Height}
	vel := components.Velocity{}
	body := components.Body{Size: cfg.Player.InitialSize, MaxSpeed: cfg.Player.MaxSpeed}
	heading := components.Heading{}
	player := components.Player{Slot: slot, Name: start.Name}

	return g.playerMapper.NewEntity(&pos, &vel, &body, &heading, &player)
}

// spawnFish creates a fish from a plan.
func (g *Game) spawnFish(p systems.FishPlan) ecs.Entity {
	pos := components.Position{X: p.X, Y: p.Y}
	vel := components.Velocity{X: p.VX}
	body := components.Body{Size: p.Size, MaxSpeed: p.MaxSpeed}
	heading := components.Heading{}
	if p.Direction < 0 {
		heading.Angle = 180
	}
	fish := components.Fish{
		BaseSpeed:    p.BaseSpeed,
		Speed:        p.BaseSpeed,
		Direction:    p.Direction,
		MaxChaseTime: p.MaxChaseTime,
		Variant:      p.Variant,
	}

	e := g.fishMapper.NewEntity(&pos, &vel, &body, &heading, &fish)
	g.numFish++
	return e
}

// trySpawn rolls the spawn gate and, if it passes, injects one fish sized
// against the largest living player.
func (g *Game) trySpawn() {
	if !g.spawner.ShouldSpawn(g.numFish) {
		return
	}

	ref := g.spawner.ReferenceSize(g.livingPlayerSizes())
	plan := g.spawner.Plan(ref)
	e := g.spawnFish(plan)

	g.lifetimeTracker.Register(e.ID(), g.tick, plan.Size, plan.Bucket.String())
	g.emit(telemetry.NewFishSpawnedEvent(g.tick, e.ID(), plan.Size))
}

// livingPlayerSizes returns the sizes of players that are still alive.
func (g *Game) livingPlayerSizes() []float64 {
	sizes := make([]float64, 0, len(g.playerEntities))
	for _, e := range g.playerEntities {
		if g.playerMap.Get(e).Dead {
			continue
		}
		sizes = append(sizes, g.bodyMap.Get(e).Size)
	}
	return sizes
}
