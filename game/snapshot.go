package game

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/bigfish/components"
	"github.com/pthm-cable/bigfish/telemetry"
)

// CaptureSnapshot copies the match into a serializable snapshot.
// Fish targets are stored as fish indices or player slots.
func (g *Game) CaptureSnapshot(bookmark *telemetry.Bookmark) *telemetry.Snapshot {
	snap := &telemetry.Snapshot{
		Version:  telemetry.SnapshotVersion,
		RNGSeed:  g.rngSeed,
		Session:  g.session.String(),
		Width:    g.cfg.Derived.Width,
		Height:   g.cfg.Derived.Height,
		Tick:     g.tick,
		Terminal: g.terminal,
		Players:  make([]telemetry.PlayerState, len(g.playerEntities)),
		Bookmark: bookmark,
	}

	pq := g.playerFilter.Query()
	for pq.Next() {
		pos, vel, body, heading, player := pq.Get()
		if int(player.Slot) >= len(snap.Players) {
			continue
		}
		snap.Players[player.Slot] = telemetry.PlayerState{
			Slot:  player.Slot,
			Name:  player.Name,
			Score: player.Score,
			Dead:  player.Dead,
			X:     pos.X,
			Y:     pos.Y,
			VelX:  vel.X,
			VelY:  vel.Y,
			Size:  body.Size,
			Angle: heading.Angle,
		}
	}

	fishIndex := make(map[ecs.Entity]int, g.numFish)
	targets := make([]ecs.Entity, 0, g.numFish)

	fq := g.fishFilter.Query()
	for fq.Next() {
		pos, vel, body, heading, fish := fq.Get()
		e := fq.Entity()

		fishIndex[e] = len(snap.Fish)
		targets = append(targets, fish.Target)
		snap.Fish = append(snap.Fish, telemetry.FishState{
			X:            pos.X,
			Y:            pos.Y,
			VelX:         vel.X,
			VelY:         vel.Y,
			Size:         body.Size,
			Angle:        heading.Angle,
			BaseSpeed:    fish.BaseSpeed,
			Speed:        fish.Speed,
			Direction:    fish.Direction,
			ChaseTime:    fish.ChaseTime,
			MaxChaseTime: fish.MaxChaseTime,
			Variant:      fish.Variant,
			Lifetime:     g.lifetimeTracker.Get(e.ID()).ToJSON(),
		})
	}

	for i, target := range targets {
		if target.IsZero() || !g.world.Alive(target) {
			continue
		}
		if j, ok := fishIndex[target]; ok {
			snap.Fish[i].TargetKind = telemetry.TargetFish
			snap.Fish[i].TargetIndex = j
			continue
		}
		if slot := g.slotOf(target); slot >= 0 {
			snap.Fish[i].TargetKind = telemetry.TargetPlayer
			snap.Fish[i].TargetIndex = int(slot)
		}
	}

	return snap
}

// Restore replaces the match with the state held in a snapshot. The
// restored match runs under a new session id.
func (g *Game) Restore(snap *telemetry.Snapshot) error {
	if snap.Width != g.cfg.Derived.Width || snap.Height != g.cfg.Derived.Height {
		return fmt.Errorf("snapshot playfield %vx%v does not match config %vx%v",
			snap.Width, snap.Height, g.cfg.Derived.Width, g.cfg.Derived.Height)
	}
	if len(snap.Players) != len(g.cfg.Player.Starts) {
		return fmt.Errorf("snapshot has %d players, config has %d", len(snap.Players), len(g.cfg.Player.Starts))
	}
	seen := make([]bool, len(snap.Players))
	for _, ps := range snap.Players {
		if int(ps.Slot) >= len(snap.Players) {
			return fmt.Errorf("player slot %d out of range", ps.Slot)
		}
		if seen[ps.Slot] {
			return fmt.Errorf("duplicate player slot %d", ps.Slot)
		}
		seen[ps.Slot] = true
	}
	for i, fs := range snap.Fish {
		if err := validateTarget(fs, len(snap.Fish), len(snap.Players)); err != nil {
			return fmt.Errorf("fish %d: %w", i, err)
		}
	}

	g.newMatch()

	for _, ps := range snap.Players {
		pos, vel, body, heading, player := g.playerMapper.Get(g.playerEntities[ps.Slot])
		*pos = components.Position{X: ps.X, Y: ps.Y}
		*vel = components.Velocity{X: ps.VelX, Y: ps.VelY}
		body.Size = components.ClampSize(ps.Size, g.cfg.Population.MinSize)
		heading.Angle = ps.Angle
		player.Name = ps.Name
		player.Score = ps.Score
		player.Dead = ps.Dead
		if ps.Dead {
			g.deathTicks[ps.Slot] = snap.Tick
		}
	}

	entities := make([]ecs.Entity, len(snap.Fish))
	for i, fs := range snap.Fish {
		pos := components.Position{X: fs.X, Y: fs.Y}
		vel := components.Velocity{X: fs.VelX, Y: fs.VelY}
		body := components.Body{Size: components.ClampSize(fs.Size, g.cfg.Population.MinSize), MaxSpeed: g.cfg.Fish.MaxSpeed}
		heading := components.Heading{Angle: fs.Angle}
		fish := components.Fish{
			BaseSpeed:    fs.BaseSpeed,
			Speed:        fs.Speed,
			Direction:    fs.Direction,
			ChaseTime:    fs.ChaseTime,
			MaxChaseTime: fs.MaxChaseTime,
			Variant:      fs.Variant,
		}
		entities[i] = g.fishMapper.NewEntity(&pos, &vel, &body, &heading, &fish)
		g.numFish++

		if ls := fs.Lifetime.FromJSON(); ls != nil {
			g.lifetimeTracker.Put(entities[i].ID(), ls)
		} else {
			g.lifetimeTracker.Register(entities[i].ID(), snap.Tick, body.Size, "restored")
		}
	}

	// Targets are linked once every fish exists.
	for i, fs := range snap.Fish {
		var target ecs.Entity
		switch fs.TargetKind {
		case telemetry.TargetFish:
			target = entities[fs.TargetIndex]
		case telemetry.TargetPlayer:
			target = g.playerEntities[fs.TargetIndex]
		default:
			continue
		}
		_, _, _, _, fish := g.fishMapper.Get(entities[i])
		fish.Target = target
	}

	g.tick = snap.Tick
	g.terminal = snap.Terminal
	g.collector.StartWindow(g.tick)

	g.logger.Info("match restored",
		"from_session", snap.Session,
		"tick", g.tick,
		"fish", g.numFish,
		"terminal", g.terminal,
	)
	return nil
}

// validateTarget checks a saved target reference against the snapshot's
// fish and player counts.
func validateTarget(fs telemetry.FishState, nFish, nPlayers int) error {
	switch fs.TargetKind {
	case telemetry.TargetNone:
		return nil
	case telemetry.TargetFish:
		if fs.TargetIndex < 0 || fs.TargetIndex >= nFish {
			return fmt.Errorf("target fish %d out of range", fs.TargetIndex)
		}
	case telemetry.TargetPlayer:
		if fs.TargetIndex < 0 || fs.TargetIndex >= nPlayers {
			return fmt.Errorf("target player %d out of range", fs.TargetIndex)
		}
	default:
		return fmt.Errorf("unknown target kind %q", fs.TargetKind)
	}
	return nil
}
