package systems

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/bigfish/components"
	"github.com/pthm-cable/bigfish/config"
)

// BehaviorParams holds the tuning of the patrol/pursue/flee classifier.
type BehaviorParams struct {
	Width          float64
	SizeRatio      float64
	ThreatRadius   float64
	ChaseRadius    float64
	FleeImpulse    float64
	PursueImpulse  float64
	ChaseBoost     float64
	PatrolAccel    float64
	NudgeChance    float64
	NudgeMagnitude float64
	TurnMargin     float64
}

// BehaviorParamsFromConfig extracts behavior parameters from the config.
func BehaviorParamsFromConfig(cfg *config.Config) BehaviorParams {
	return BehaviorParams{
		Width:          cfg.Derived.Width,
		SizeRatio:      cfg.Behavior.SizeRatio,
		ThreatRadius:   cfg.Behavior.ThreatRadius,
		ChaseRadius:    cfg.Behavior.ChaseRadius,
		FleeImpulse:    cfg.Behavior.FleeImpulse,
		PursueImpulse:  cfg.Behavior.PursueImpulse,
		ChaseBoost:     cfg.Behavior.ChaseBoost,
		PatrolAccel:    cfg.Fish.PatrolAccel,
		NudgeChance:    cfg.Fish.NudgeChance,
		NudgeMagnitude: cfg.Fish.NudgeMagnitude,
		TurnMargin:     cfg.Fish.TurnMargin,
	}
}

// BehaviorSystem decides each fish's velocity impulse for the tick.
//
// Fleeing and Pursuing are recomputed from scratch every tick; only the
// target handle and chase timer carry over. All fish read the same snapshot
// of positions, sizes and targets taken before any of them is updated.
type BehaviorSystem struct {
	world        *ecs.World
	fishFilter   *ecs.Filter5[components.Position, components.Velocity, components.Body, components.Heading, components.Fish]
	playerFilter *ecs.Filter3[components.Position, components.Body, components.Player]
	params       BehaviorParams
	rng          *rand.Rand

	grid      *SpatialGrid
	snapshot  *Snapshot
	chasers   map[ecs.Entity][]int // target -> indices of fish chasing it
	neighbors []Neighbor
}

// NewBehaviorSystem creates a new behavior system.
func NewBehaviorSystem(w *ecs.World, params BehaviorParams, height, cellSize float64, rng *rand.Rand) *BehaviorSystem {
	return &BehaviorSystem{
		world:        w,
		fishFilter:   ecs.NewFilter5[components.Position, components.Velocity, components.Body, components.Heading, components.Fish](w),
		playerFilter: ecs.NewFilter3[components.Position, components.Body, components.Player](w),
		params:       params,
		rng:          rng,
		grid:         NewSpatialGrid(params.Width, height, cellSize),
		snapshot:     newSnapshot(),
		chasers:      make(map[ecs.Entity][]int),
	}
}

// Update evaluates every fish against the current world.
func (s *BehaviorSystem) Update() {
	s.snapshot.capture(s.fishFilter, s.playerFilter)
	s.indexSnapshot()

	for i := range s.snapshot.fish {
		s.evaluate(i, &s.snapshot.fish[i])
	}
}

// indexSnapshot rebuilds the spatial grid and the chaser index.
func (s *BehaviorSystem) indexSnapshot() {
	s.grid.Clear()
	clear(s.chasers)

	for i, sw := range s.snapshot.Swimmers {
		s.grid.Insert(i, sw.Pos)
		if !sw.Player && !sw.Target.IsZero() {
			s.chasers[sw.Target] = append(s.chasers[sw.Target], i)
		}
	}
}

// evaluate runs the per-tick decision for one fish.
func (s *BehaviorSystem) evaluate(i int, ref *fishRef) {
	fish := ref.fish

	// A target removed since last tick, or a player who died, is dropped
	// before anything reads its position.
	if fish.HasTarget() && !s.targetValid(fish.Target) {
		fish.ResetChase()
	}

	fish.BeingChased = s.beingChased(i)
	if fish.BeingChased {
		if s.flee(i, ref) {
			fish.Mode = components.ModeFleeing
			return
		}
		s.patrol(ref)
		fish.Mode = components.ModePatrolling
		return
	}

	if s.pursue(i, ref) {
		fish.Mode = components.ModePursuing
		return
	}
	s.patrol(ref)
	fish.Mode = components.ModePatrolling
}

// targetValid reports whether a target is still a fish in the world or a
// living player.
func (s *BehaviorSystem) targetValid(target ecs.Entity) bool {
	if target.IsZero() || !s.world.Alive(target) {
		return false
	}
	j, ok := s.snapshot.Lookup(target)
	if !ok {
		return false
	}
	return s.snapshot.Swimmers[j].Alive
}

// beingChased reports whether any much larger fish is targeting fish i, or
// any much larger living player is within the threat radius.
func (s *BehaviorSystem) beingChased(i int) bool {
	self := &s.snapshot.Swimmers[i]
	ratio := s.params.SizeRatio

	for _, j := range s.chasers[self.Entity] {
		if j != i && outranks(s.snapshot.Swimmers[j].Size, self.Size, ratio) {
			return true
		}
	}

	s.neighbors = s.grid.QueryRadiusInto(s.neighbors[:0], self.Pos, s.params.ThreatRadius, i)
	for _, n := range s.neighbors {
		other := &s.snapshot.Swimmers[n.Index]
		if other.Player && other.Alive && outranks(other.Size, self.Size, ratio) {
			return true
		}
	}
	return false
}

// flee pushes fish i away from the nearest much larger swimmer.
// Returns false if no such swimmer exists.
func (s *BehaviorSystem) flee(i int, ref *fishRef) bool {
	self := &s.snapshot.Swimmers[i]

	nearest := -1
	nearestDist := math.Inf(1)
	for j := range s.snapshot.Swimmers {
		other := &s.snapshot.Swimmers[j]
		if j == i || !other.Alive || !outranks(other.Size, self.Size, s.params.SizeRatio) {
			continue
		}
		if d := distance(self.Pos, other.Pos); d < nearestDist {
			nearest = j
			nearestDist = d
		}
	}
	if nearest < 0 {
		return false
	}

	if away, ok := direction(s.snapshot.Swimmers[nearest].Pos, self.Pos); ok {
		impulse := r2.Scale(ref.fish.Speed*s.params.FleeImpulse, away)
		ref.vel.Set(r2.Add(ref.vel.Vec(), impulse))
	}
	ref.fish.FaceDirection(ref.vel.X)
	return true
}

// pursue acquires a target if needed and steers toward it.
// Returns false when the fish should patrol this tick instead.
func (s *BehaviorSystem) pursue(i int, ref *fishRef) bool {
	fish := ref.fish

	if !fish.HasTarget() {
		if target, ok := s.acquire(i); ok {
			fish.StartChase(target, s.params.ChaseBoost)
		}
	}
	if !fish.HasTarget() {
		return false
	}

	fish.ChaseTime++
	if fish.ChaseTime > fish.MaxChaseTime {
		fish.ResetChase()
		return false
	}

	j, _ := s.snapshot.Lookup(fish.Target)
	self := &s.snapshot.Swimmers[i]
	if toward, ok := direction(self.Pos, s.snapshot.Swimmers[j].Pos); ok {
		impulse := r2.Scale(fish.Speed*s.params.PursueImpulse, toward)
		ref.vel.Set(r2.Add(ref.vel.Vec(), impulse))
	}
	fish.FaceDirection(ref.vel.X)
	return true
}

// acquire finds the nearest living swimmer within the chase radius that
// fish i outranks. Ties go to the earlier snapshot index.
func (s *BehaviorSystem) acquire(i int) (ecs.Entity, bool) {
	self := &s.snapshot.Swimmers[i]

	best := -1
	bestDist := math.Inf(1)
	s.neighbors = s.grid.QueryRadiusInto(s.neighbors[:0], self.Pos, s.params.ChaseRadius, i)
	for _, n := range s.neighbors {
		other := &s.snapshot.Swimmers[n.Index]
		if !other.Alive || !outranks(self.Size, other.Size, s.params.SizeRatio) {
			continue
		}
		if n.Dist < bestDist || (n.Dist == bestDist && n.Index < best) {
			best = n.Index
			bestDist = n.Dist
		}
	}
	if best < 0 {
		return ecs.Entity{}, false
	}
	return s.snapshot.Swimmers[best].Entity, true
}

// patrol keeps the fish cruising horizontally, turning near the screen edges.
func (s *BehaviorSystem) patrol(ref *fishRef) {
	fish := ref.fish
	x := ref.pos.X
	margin := s.params.TurnMargin * s.params.Width

	if (fish.Direction > 0 && x > s.params.Width-margin) || (fish.Direction < 0 && x < margin) {
		fish.Direction = -fish.Direction
		ref.vel.X = -ref.vel.X
	}

	if s.rng.Float64() < s.params.NudgeChance {
		ref.vel.Y += (s.rng.Float64()*2 - 1) * s.params.NudgeMagnitude
	}

	ref.vel.X += fish.Direction * s.params.PatrolAccel
}

// Snapshot returns the snapshot taken by the latest Update.
func (s *BehaviorSystem) Snapshot() *Snapshot {
	return s.snapshot
}
