// Package components defines ECS components for the simulation.
//
// Every swimmer carries Position, Velocity, Body and Heading. The Player and
// Fish components select the variant: archetypes never hold both.
package components

import "gonum.org/v1/gonum/spatial/r2"

// Position represents an entity's screen position.
type Position struct {
	X, Y float64 `inspect:"label,fmt:%.0f"`
}

// Vec returns the position as a vector.
func (p Position) Vec() r2.Vec {
	return r2.Vec{X: p.X, Y: p.Y}
}

// Set assigns the position from a vector.
func (p *Position) Set(v r2.Vec) {
	p.X, p.Y = v.X, v.Y
}

// Velocity represents an entity's per-tick displacement.
type Velocity struct {
	X, Y float64 `inspect:"label,fmt:%.2f"`
}

// Vec returns the velocity as a vector.
func (v Velocity) Vec() r2.Vec {
	return r2.Vec{X: v.X, Y: v.Y}
}

// Set assigns the velocity from a vector.
func (v *Velocity) Set(u r2.Vec) {
	v.X, v.Y = u.X, u.Y
}

// Heading is the facing angle used for drawing, in degrees.
// Screen space with inverted Y: 0 faces right, 90 faces up.
type Heading struct {
	Angle float64 `inspect:"angle"`
}
