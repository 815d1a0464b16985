package components

import "github.com/mlange-42/ark/ecs"

// Player holds the state of a keyboard-controlled swimmer.
type Player struct {
	Slot  uint8  `inspect:"label"` // index of the control binding and score line
	Name  string `inspect:"label"`
	Score int    `inspect:"label"`
	Dead  bool   `inspect:"bool"` // one-way until the world is reset
}

// Mode is the behavior classification of a fish for the current tick.
type Mode uint8

const (
	ModePatrolling Mode = iota
	ModePursuing
	ModeFleeing
)

// String returns the display name for a Mode.
func (m Mode) String() string {
	switch m {
	case ModePatrolling:
		return "patrolling"
	case ModePursuing:
		return "pursuing"
	case ModeFleeing:
		return "fleeing"
	default:
		return "unknown"
	}
}

// Fish holds the state of an autonomous swimmer.
//
// Target and ChaseTime persist across ticks. BeingChased and Mode are
// recomputed from scratch every tick and never read before being written.
type Fish struct {
	BaseSpeed    float64    `inspect:"label,fmt:%.2f"`
	Speed        float64    `inspect:"label,fmt:%.2f"` // BaseSpeed, boosted while chasing
	Direction    float64    `inspect:"label"`          // patrol direction, +1 or -1
	Target       ecs.Entity `inspect:"skip"`
	ChaseTime    int32      `inspect:"label"`
	MaxChaseTime int32      `inspect:"label"`
	Variant      uint8      `inspect:"skip"` // cosmetic

	BeingChased bool `inspect:"bool"`
	Mode        Mode `inspect:"label"`
}

// HasTarget reports whether a target handle is set. The handle may still be
// stale; callers must check it against the world.
func (f *Fish) HasTarget() bool {
	return !f.Target.IsZero()
}

// StartChase adopts target and applies the chase speed boost.
func (f *Fish) StartChase(target ecs.Entity, boost float64) {
	f.Target = target
	f.ChaseTime = 0
	f.Speed = f.BaseSpeed * boost
}

// ResetChase clears the target and timer and restores the cruise speed.
func (f *Fish) ResetChase() {
	f.Target = ecs.Entity{}
	f.ChaseTime = 0
	f.Speed = f.BaseSpeed
}

// FaceDirection sets the patrol direction from the sign of dx.
// Zero counts as negative.
func (f *Fish) FaceDirection(dx float64) {
	if dx > 0 {
		f.Direction = 1
	} else {
		f.Direction = -1
	}
}
