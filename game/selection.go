package game

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/bigfish/components"
)

// pickSlack widens the click target around small swimmers.
const pickSlack = 10.0

// Inspection holds copies of one swimmer's components. Exactly one of Fish
// and Player is set.
type Inspection struct {
	Entity   ecs.Entity
	Position components.Position
	Velocity components.Velocity
	Body     components.Body
	Heading  components.Heading
	Fish     *components.Fish
	Player   *components.Player
}

// SwimmerAt returns the swimmer under a screen position, preferring the
// closest center when bodies overlap.
func (g *Game) SwimmerAt(x, y float64) (ecs.Entity, bool) {
	var closest ecs.Entity
	closestDist := math.Inf(1)

	consider := func(e ecs.Entity, pos *components.Position, body *components.Body) {
		d := math.Hypot(pos.X-x, pos.Y-y)
		if d <= body.Size/2+pickSlack && d < closestDist {
			closest = e
			closestDist = d
		}
	}

	fq := g.fishFilter.Query()
	for fq.Next() {
		pos, _, body, _, _ := fq.Get()
		consider(fq.Entity(), pos, body)
	}

	pq := g.playerFilter.Query()
	for pq.Next() {
		pos, _, body, _, _ := pq.Get()
		consider(pq.Entity(), pos, body)
	}

	return closest, !closest.IsZero()
}

// Inspect returns a copy of a swimmer's components, or false if the entity
// has been removed since it was selected.
func (g *Game) Inspect(e ecs.Entity) (Inspection, bool) {
	if e.IsZero() || !g.world.Alive(e) {
		return Inspection{}, false
	}

	if g.fishMap.Has(e) {
		pos, vel, body, heading, fish := g.fishMapper.Get(e)
		f := *fish
		return Inspection{Entity: e, Position: *pos, Velocity: *vel, Body: *body, Heading: *heading, Fish: &f}, true
	}

	pos, vel, body, heading, player := g.playerMapper.Get(e)
	p := *player
	return Inspection{Entity: e, Position: *pos, Velocity: *vel, Body: *body, Heading: *heading, Player: &p}, true
}
