package systems

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/bigfish/components"
)

// Directions is one player's pressed directions for a tick.
type Directions struct {
	Up, Down, Left, Right bool
}

// PlayerParams holds player movement tuning.
type PlayerParams struct {
	Accel   float64
	Damping float64
}

// PlayerSystem moves keyboard-controlled swimmers. Both axes are clamped to
// the screen. Dead players ignore input and stay frozen.
type PlayerSystem struct {
	filter *ecs.Filter5[components.Position, components.Velocity, components.Body, components.Heading, components.Player]
	bounds Bounds
	params PlayerParams
}

// NewPlayerSystem creates a new player movement system.
func NewPlayerSystem(w *ecs.World, bounds Bounds, params PlayerParams) *PlayerSystem {
	return &PlayerSystem{
		filter: ecs.NewFilter5[components.Position, components.Velocity, components.Body, components.Heading, components.Player](w),
		bounds: bounds,
		params: params,
	}
}

// Update applies one tick of input. inputs is indexed by player slot;
// players whose slot has no entry receive no input.
func (s *PlayerSystem) Update(inputs []Directions) {
	query := s.filter.Query()
	for query.Next() {
		pos, vel, body, heading, player := query.Get()
		if player.Dead {
			continue
		}

		var in Directions
		if int(player.Slot) < len(inputs) {
			in = inputs[player.Slot]
		}

		v := r2.Scale(s.params.Damping, vel.Vec())
		if in.Up {
			v.Y -= s.params.Accel
		}
		if in.Down {
			v.Y += s.params.Accel
		}
		if in.Left {
			v.X -= s.params.Accel
		}
		if in.Right {
			v.X += s.params.Accel
		}
		v = clampSpeed(v, body.MaxSpeed)
		vel.Set(v)

		pos.Set(r2.Add(pos.Vec(), v))
		pos.X = clampFloat(pos.X, body.Size, s.bounds.Width-body.Size)
		pos.Y = clampFloat(pos.Y, body.Size/2, s.bounds.Height-body.Size/2)

		if angle, ok := facingAngle(v); ok {
			heading.Angle = angle
		}
	}
}
