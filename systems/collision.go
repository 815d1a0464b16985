package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/bigfish/components"
)

// CollisionParams holds the growth rules applied when something is eaten.
type CollisionParams struct {
	SizeRatio           float64
	PlayerGrowthDivisor float64
	FishGrowth          float64
	MinSize             float64
}

// Meal records a player eating a fish.
type Meal struct {
	Player   ecs.Entity
	Fish     ecs.Entity
	FishSize float64
	Growth   float64
}

// Death records a player eaten by a fish.
type Death struct {
	Player   ecs.Entity
	Fish     ecs.Entity
	FishSize float64
}

// Absorption records a fish swallowing a much smaller fish.
type Absorption struct {
	Eater     ecs.Entity
	Prey      ecs.Entity
	PreySize  float64
	EaterSize float64 // before growth
}

// Resolution is the outcome of one collision scan. Nothing in the world is
// touched until Apply is called; every entity appears at most once across
// Despawned, Meals and Absorbed.
type Resolution struct {
	Despawned []ecs.Entity
	Meals     []Meal
	Deaths    []Death
	Absorbed  []Absorption
}

// Reset clears the resolution for reuse.
func (r *Resolution) Reset() {
	r.Despawned = r.Despawned[:0]
	r.Meals = r.Meals[:0]
	r.Deaths = r.Deaths[:0]
	r.Absorbed = r.Absorbed[:0]
}

// Removed returns the number of fish the resolution removes.
func (r *Resolution) Removed() int {
	return len(r.Despawned) + len(r.Meals) + len(r.Absorbed)
}

// CollisionSystem detects off-screen fish, player-fish contacts and fish-fish
// contacts on the post-movement positions.
type CollisionSystem struct {
	world        *ecs.World
	fishFilter   *ecs.Filter5[components.Position, components.Velocity, components.Body, components.Heading, components.Fish]
	playerFilter *ecs.Filter3[components.Position, components.Body, components.Player]
	bodyMap      *ecs.Map[components.Body]
	fishMap      *ecs.Map[components.Fish]
	playerMap    *ecs.Map[components.Player]
	bounds       Bounds
	params       CollisionParams

	snapshot *Snapshot
	removed  []bool // per snapshot index
	resolved []bool // per snapshot index: player already collided, fish already absorbed
}

// NewCollisionSystem creates a new collision system.
func NewCollisionSystem(w *ecs.World, bounds Bounds, params CollisionParams) *CollisionSystem {
	return &CollisionSystem{
		world:        w,
		fishFilter:   ecs.NewFilter5[components.Position, components.Velocity, components.Body, components.Heading, components.Fish](w),
		playerFilter: ecs.NewFilter3[components.Position, components.Body, components.Player](w),
		bodyMap:      ecs.NewMap[components.Body](w),
		fishMap:      ecs.NewMap[components.Fish](w),
		playerMap:    ecs.NewMap[components.Player](w),
		bounds:       bounds,
		params:       params,
		snapshot:     newSnapshot(),
	}
}

// Resolve scans the world and fills res. Fish are visited in snapshot order;
// within each fish, players are checked first, then the other fish. The first
// qualifying contact wins, and anything already removed is skipped.
func (s *CollisionSystem) Resolve(res *Resolution) {
	res.Reset()
	s.snapshot.capture(s.fishFilter, s.playerFilter)

	n := len(s.snapshot.Swimmers)
	s.removed = resizeBools(s.removed, n)
	s.resolved = resizeBools(s.resolved, n)

	nFish := s.snapshot.FishCount()
	swimmers := s.snapshot.Swimmers

	for i := 0; i < nFish; i++ {
		fish := &swimmers[i]
		if s.removed[i] {
			continue
		}

		if s.offScreen(fish) {
			s.removed[i] = true
			res.Despawned = append(res.Despawned, fish.Entity)
			continue
		}

		if s.resolvePlayers(i, res) {
			continue
		}

		if !s.resolved[i] {
			s.resolveFish(i, res)
		}
	}
}

// offScreen reports whether a fish has fully left the playfield.
func (s *CollisionSystem) offScreen(sw *Swimmer) bool {
	return sw.Pos.X < -sw.Size || sw.Pos.X > s.bounds.Width+sw.Size ||
		sw.Pos.Y < -sw.Size || sw.Pos.Y > s.bounds.Height+sw.Size
}

// resolvePlayers checks fish i against every player that has not collided yet
// this tick. Returns true if the fish was eaten.
func (s *CollisionSystem) resolvePlayers(i int, res *Resolution) bool {
	swimmers := s.snapshot.Swimmers
	fish := &swimmers[i]

	for p := s.snapshot.FishCount(); p < len(swimmers); p++ {
		player := &swimmers[p]
		if !player.Alive || s.resolved[p] {
			continue
		}
		if !overlapping(player.Pos, player.Size, fish.Pos, fish.Size) {
			continue
		}

		// Any contact uses up the player's collision for this tick, even
		// when the sizes are too close for either to eat the other.
		s.resolved[p] = true

		switch {
		case outranks(player.Size, fish.Size, s.params.SizeRatio):
			s.removed[i] = true
			res.Meals = append(res.Meals, Meal{
				Player:   player.Entity,
				Fish:     fish.Entity,
				FishSize: fish.Size,
				Growth:   min(fish.Size/s.params.PlayerGrowthDivisor, player.Size),
			})
			return true
		case outranks(fish.Size, player.Size, s.params.SizeRatio):
			player.Alive = false
			res.Deaths = append(res.Deaths, Death{
				Player:   player.Entity,
				Fish:     fish.Entity,
				FishSize: fish.Size,
			})
		}
		return false
	}
	return false
}

// resolveFish lets fish i absorb the first much smaller fish it touches.
func (s *CollisionSystem) resolveFish(i int, res *Resolution) {
	swimmers := s.snapshot.Swimmers
	eater := &swimmers[i]

	for j := 0; j < s.snapshot.FishCount(); j++ {
		if j == i || s.removed[j] || s.resolved[j] {
			continue
		}
		prey := &swimmers[j]
		if !outranks(eater.Size, prey.Size, s.params.SizeRatio) {
			continue
		}
		if !overlapping(eater.Pos, eater.Size, prey.Pos, prey.Size) {
			continue
		}

		s.removed[j] = true
		s.resolved[i] = true
		res.Absorbed = append(res.Absorbed, Absorption{
			Eater:     eater.Entity,
			Prey:      prey.Entity,
			PreySize:  prey.Size,
			EaterSize: eater.Size,
		})
		return
	}
}

// Apply commits a resolution to the world: growth, score and death first,
// then entity removal.
func (s *CollisionSystem) Apply(res *Resolution) {
	for _, m := range res.Meals {
		if player := s.playerMap.Get(m.Player); player != nil {
			player.Score++
		}
		if body := s.bodyMap.Get(m.Player); body != nil {
			body.Grow(m.Growth, s.params.MinSize)
		}
	}

	for _, d := range res.Deaths {
		if player := s.playerMap.Get(d.Player); player != nil {
			player.Dead = true
		}
	}

	for _, a := range res.Absorbed {
		if body := s.bodyMap.Get(a.Eater); body != nil {
			body.Grow(s.params.FishGrowth, s.params.MinSize)
		}
		if fish := s.fishMap.Get(a.Eater); fish != nil {
			fish.ResetChase()
		}
	}

	for _, e := range res.Despawned {
		s.remove(e)
	}
	for _, m := range res.Meals {
		s.remove(m.Fish)
	}
	for _, a := range res.Absorbed {
		s.remove(a.Prey)
	}
}

// remove deletes an entity if it is still alive.
func (s *CollisionSystem) remove(e ecs.Entity) {
	if s.world.Alive(e) {
		s.world.RemoveEntity(e)
	}
}

// resizeBools returns a zeroed slice of length n, reusing buf when possible.
func resizeBools(buf []bool, n int) []bool {
	if cap(buf) < n {
		return make([]bool, n)
	}
	buf = buf[:n]
	clear(buf)
	return buf
}
