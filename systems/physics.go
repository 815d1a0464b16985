package systems

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/bigfish/components"
)

// Bounds represents the playfield size.
type Bounds struct {
	Width, Height float64
}

// PhysicsSystem applies the shared base step to every fish after the
// behavior impulse: drag, speed cap, integration and the vertical clamp.
// Fish are free to leave the screen horizontally; that is how they despawn.
type PhysicsSystem struct {
	filter  *ecs.Filter5[components.Position, components.Velocity, components.Body, components.Heading, components.Fish]
	bounds  Bounds
	damping float64
}

// NewPhysicsSystem creates a new physics system.
func NewPhysicsSystem(w *ecs.World, bounds Bounds, damping float64) *PhysicsSystem {
	return &PhysicsSystem{
		filter:  ecs.NewFilter5[components.Position, components.Velocity, components.Body, components.Heading, components.Fish](w),
		bounds:  bounds,
		damping: damping,
	}
}

// Update runs the physics system.
func (s *PhysicsSystem) Update() {
	query := s.filter.Query()
	for query.Next() {
		pos, vel, body, heading, _ := query.Get()

		v := r2.Scale(s.damping, vel.Vec())
		v = clampSpeed(v, body.MaxSpeed)
		vel.Set(v)

		pos.Set(r2.Add(pos.Vec(), v))
		pos.Y = clampFloat(pos.Y, body.Size/2, s.bounds.Height-body.Size/2)

		if angle, ok := facingAngle(v); ok {
			heading.Angle = angle
		}
	}
}
