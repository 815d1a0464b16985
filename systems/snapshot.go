package systems

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/bigfish/components"
)

// Swimmer is a read-only copy of one swimmer's state.
type Swimmer struct {
	Entity ecs.Entity
	Pos    r2.Vec
	Size   float64
	Player bool
	Alive  bool       // false only for dead players
	Target ecs.Entity // fish only; zero when not chasing
}

// fishRef holds live component pointers for one fish. Pointers stay valid
// until the next structural change to the world.
type fishRef struct {
	entity  ecs.Entity
	pos     *components.Position
	vel     *components.Velocity
	body    *components.Body
	heading *components.Heading
	fish    *components.Fish
}

// Snapshot captures every swimmer at one instant. Fish come first in query
// order, then players in query order; that order is the iteration order used
// for first-match rules.
type Snapshot struct {
	Swimmers []Swimmer
	index    map[ecs.Entity]int
	fish     []fishRef
	nFish    int
}

// newSnapshot returns an empty snapshot ready for reuse.
func newSnapshot() *Snapshot {
	return &Snapshot{index: make(map[ecs.Entity]int)}
}

// reset clears the snapshot for the next capture.
func (s *Snapshot) reset() {
	s.Swimmers = s.Swimmers[:0]
	s.fish = s.fish[:0]
	s.nFish = 0
	clear(s.index)
}

// add appends a swimmer and returns its index.
func (s *Snapshot) add(sw Swimmer) int {
	i := len(s.Swimmers)
	s.Swimmers = append(s.Swimmers, sw)
	s.index[sw.Entity] = i
	return i
}

// Lookup returns the snapshot index of an entity.
func (s *Snapshot) Lookup(e ecs.Entity) (int, bool) {
	if e.IsZero() {
		return 0, false
	}
	i, ok := s.index[e]
	return i, ok
}

// FishCount returns the number of fish in the snapshot. Fish occupy
// indices [0, FishCount).
func (s *Snapshot) FishCount() int {
	return s.nFish
}

// capture fills the snapshot from the world.
func (s *Snapshot) capture(
	fishFilter *ecs.Filter5[components.Position, components.Velocity, components.Body, components.Heading, components.Fish],
	playerFilter *ecs.Filter3[components.Position, components.Body, components.Player],
) {
	s.reset()

	fq := fishFilter.Query()
	for fq.Next() {
		pos, vel, body, heading, fish := fq.Get()
		e := fq.Entity()
		s.add(Swimmer{
			Entity: e,
			Pos:    pos.Vec(),
			Size:   body.Size,
			Alive:  true,
			Target: fish.Target,
		})
		s.fish = append(s.fish, fishRef{entity: e, pos: pos, vel: vel, body: body, heading: heading, fish: fish})
	}
	s.nFish = len(s.Swimmers)

	pq := playerFilter.Query()
	for pq.Next() {
		pos, body, player := pq.Get()
		s.add(Swimmer{
			Entity: pq.Entity(),
			Pos:    pos.Vec(),
			Size:   body.Size,
			Player: true,
			Alive:  !player.Dead,
		})
	}
}
