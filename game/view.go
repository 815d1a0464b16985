package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/bigfish/components"
)

// PlayerView is the drawable state of one player.
type PlayerView struct {
	Slot       uint8
	Name       string
	X, Y       float64
	VelX, VelY float64
	Size       float64
	Angle      float64 // degrees, 0 faces right
	Score      int
	Dead       bool
}

// FishView is the drawable state of one fish.
type FishView struct {
	ID         uint32
	X, Y       float64
	VelX, VelY float64
	Size       float64
	Angle      float64 // degrees, 0 faces right
	Mode       components.Mode
	Variant    uint8

	// Chase target position, valid when HasTarget is set.
	HasTarget        bool
	TargetX, TargetY float64
}

// View is a read-only copy of the match for drawing. Fish is reused by the
// next call to View.
type View struct {
	Session  string
	Tick     int32
	Terminal bool
	Players  []PlayerView // indexed by slot
	Fish     []FishView
}

// View returns the current match state.
func (g *Game) View() View {
	v := View{
		Session:  g.session.String(),
		Tick:     g.tick,
		Terminal: g.terminal,
		Players:  make([]PlayerView, len(g.playerEntities)),
	}

	pq := g.playerFilter.Query()
	for pq.Next() {
		pos, vel, body, heading, player := pq.Get()
		if int(player.Slot) >= len(v.Players) {
			continue
		}
		v.Players[player.Slot] = PlayerView{
			Slot:  player.Slot,
			Name:  player.Name,
			X:     pos.X,
			Y:     pos.Y,
			VelX:  vel.X,
			VelY:  vel.Y,
			Size:  body.Size,
			Angle: heading.Angle,
			Score: player.Score,
			Dead:  player.Dead,
		}
	}

	g.fishView = g.fishView[:0]
	fq := g.fishFilter.Query()
	for fq.Next() {
		pos, vel, body, heading, fish := fq.Get()
		fv := FishView{
			ID:      fq.Entity().ID(),
			X:       pos.X,
			Y:       pos.Y,
			VelX:    vel.X,
			VelY:    vel.Y,
			Size:    body.Size,
			Angle:   heading.Angle,
			Mode:    fish.Mode,
			Variant: fish.Variant,
		}
		if fish.HasTarget() && g.chaseable(fish.Target) {
			tp := g.posMap.Get(fish.Target)
			fv.HasTarget = true
			fv.TargetX, fv.TargetY = tp.X, tp.Y
		}
		g.fishView = append(g.fishView, fv)
	}
	v.Fish = g.fishView

	return v
}

// chaseable reports whether e can still be chased: a live fish or a player
// that has not died. A player eaten this tick keeps its entity.
func (g *Game) chaseable(e ecs.Entity) bool {
	if !g.world.Alive(e) {
		return false
	}
	return !g.playerMap.Has(e) || !g.playerMap.Get(e).Dead
}
