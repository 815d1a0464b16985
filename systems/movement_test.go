package systems

import (
	"math"
	"math/rand"
	"testing"
)

func TestPlayerSpeedNeverExceedsMax(t *testing.T) {
	tw := newTestWorld(t)
	e := tw.addPlayer(0, 960, 540, 30)
	sys := NewPlayerSystem(tw.w, tw.bounds(), PlayerParams{Accel: tw.cfg.Player.Accel, Damping: tw.cfg.Player.Damping})

	all := []Directions{{Up: true, Right: true}}
	for tick := 0; tick < 100; tick++ {
		sys.Update(all)
		vel := tw.velMap.Get(e)
		if s := math.Hypot(vel.X, vel.Y); s > tw.cfg.Player.MaxSpeed+1e-9 {
			t.Fatalf("tick %d: speed %v exceeds %v", tick, s, tw.cfg.Player.MaxSpeed)
		}
	}
}

func TestPlayerClampedToScreen(t *testing.T) {
	tw := newTestWorld(t)
	e := tw.addPlayer(0, 960, 540, 30)
	sys := NewPlayerSystem(tw.w, tw.bounds(), PlayerParams{Accel: tw.cfg.Player.Accel, Damping: tw.cfg.Player.Damping})

	for tick := 0; tick < 1000; tick++ {
		sys.Update([]Directions{{Left: true, Up: true}})
	}

	pos := tw.posMap.Get(e)
	if pos.X != 30 {
		t.Errorf("x = %v, want clamped to size 30", pos.X)
	}
	if pos.Y != 15 {
		t.Errorf("y = %v, want clamped to size/2 = 15", pos.Y)
	}
}

func TestDeadPlayerIgnoresInput(t *testing.T) {
	tw := newTestWorld(t)
	e := tw.addPlayer(0, 960, 540, 30)
	tw.player.Get(e).Dead = true
	sys := NewPlayerSystem(tw.w, tw.bounds(), PlayerParams{Accel: 3, Damping: 0.9})

	sys.Update([]Directions{{Right: true}})

	if pos := tw.posMap.Get(e); pos.X != 960 || pos.Y != 540 {
		t.Errorf("dead player moved to (%v, %v)", pos.X, pos.Y)
	}
}

func TestPlayerUsesOwnSlot(t *testing.T) {
	tw := newTestWorld(t)
	p0 := tw.addPlayer(0, 500, 540, 30)
	p1 := tw.addPlayer(1, 1500, 540, 30)
	sys := NewPlayerSystem(tw.w, tw.bounds(), PlayerParams{Accel: 3, Damping: 0.9})

	sys.Update([]Directions{{}, {Down: true}})

	if vel := tw.velMap.Get(p0); vel.Y != 0 {
		t.Errorf("slot 0 moved with vy = %v", vel.Y)
	}
	if vel := tw.velMap.Get(p1); vel.Y != 3 {
		t.Errorf("slot 1 vy = %v, want 3", vel.Y)
	}
}

func TestFishPhysicsStep(t *testing.T) {
	tw := newTestWorld(t)
	e := tw.addFish(500, 500, 20, 2)
	vel := tw.velMap.Get(e)
	vel.X, vel.Y = 10, 0

	NewPhysicsSystem(tw.w, tw.bounds(), tw.cfg.Fish.Damping).Update()

	// 10 * 0.98 = 9.8, clamped to 4
	if vel := tw.velMap.Get(e); math.Abs(vel.X-4) > 1e-9 || vel.Y != 0 {
		t.Errorf("velocity = (%v, %v), want (4, 0)", vel.X, vel.Y)
	}
	if pos := tw.posMap.Get(e); math.Abs(pos.X-504) > 1e-9 {
		t.Errorf("x = %v, want 504", pos.X)
	}
}

func TestFishPhysicsVerticalClampOnly(t *testing.T) {
	tw := newTestWorld(t)
	e := tw.addFish(5, 1075, 20, 2)
	vel := tw.velMap.Get(e)
	vel.X, vel.Y = -3, 3

	NewPhysicsSystem(tw.w, tw.bounds(), tw.cfg.Fish.Damping).Update()

	pos := tw.posMap.Get(e)
	if pos.Y != 1070 {
		t.Errorf("y = %v, want clamped to 1070", pos.Y)
	}
	if pos.X >= 5 || pos.X <= 0 {
		t.Errorf("x = %v, want to keep moving left past no wall", pos.X)
	}
}

func TestFishSpeedNeverExceedsMax(t *testing.T) {
	tw := newTestWorld(t)
	rng := rand.New(rand.NewSource(9))
	for i := 0; i < 30; i++ {
		tw.addFish(rng.Float64()*1920, rng.Float64()*1080, 5+rng.Float64()*60, 1+rng.Float64()*2)
	}
	tw.addPlayer(0, 600, 540, 30)
	tw.addPlayer(1, 1300, 540, 30)

	behavior := tw.behavior(9)
	physics := NewPhysicsSystem(tw.w, tw.bounds(), tw.cfg.Fish.Damping)

	for tick := 0; tick < 300; tick++ {
		behavior.Update()
		physics.Update()

		snap := behavior.Snapshot()
		for i := 0; i < snap.FishCount(); i++ {
			e := snap.Swimmers[i].Entity
			vel := tw.velMap.Get(e)
			if s := math.Hypot(vel.X, vel.Y); s > tw.cfg.Fish.MaxSpeed+1e-9 {
				t.Fatalf("tick %d: fish speed %v exceeds %v", tick, s, tw.cfg.Fish.MaxSpeed)
			}
		}
	}
}
