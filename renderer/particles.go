package renderer

import (
	"math"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/bigfish/game"
	"github.com/pthm-cable/bigfish/telemetry"
)

// ParticleType identifies the type of effect particle.
type ParticleType uint8

const (
	ParticleBite ParticleType = iota
	ParticleAbsorb
	ParticleDeath
)

// maxParticles caps the live particle count.
const maxParticles = 500

// EffectParticle represents a visual feedback particle.
type EffectParticle struct {
	X, Y       float32
	VelX, VelY float32
	Life       int32
	MaxLife    int32
	Type       ParticleType
	Size       float32
}

// ParticleSystem turns match events into short-lived particle bursts.
// It only affects drawing and keeps its own random source so the match RNG
// is never consumed by presentation.
type ParticleSystem struct {
	Particles []EffectParticle
	rng       *rand.Rand

	// Fish positions from the previous frame, keyed by entity ID. Eaten and
	// absorbed fish are already gone from the current view.
	lastFish map[uint32]rl.Vector2
}

// NewParticleSystem creates a new particle system.
func NewParticleSystem(seed int64) *ParticleSystem {
	return &ParticleSystem{
		Particles: make([]EffectParticle, 0, maxParticles),
		rng:       rand.New(rand.NewSource(seed)),
		lastFish:  make(map[uint32]rl.Vector2),
	}
}

// Observe emits bursts for the events of the last step and remembers fish
// positions for the next call.
func (s *ParticleSystem) Observe(events []telemetry.Event, v game.View) {
	for _, ev := range events {
		switch ev.Type {
		case telemetry.EventFishEaten:
			if pos, ok := s.lastFish[ev.EntityID]; ok {
				s.Burst(pos.X, pos.Y, ParticleBite, 8+s.rng.Intn(7))
			}
		case telemetry.EventFishAbsorbed:
			if pos, ok := s.lastFish[ev.EntityID]; ok {
				s.Burst(pos.X, pos.Y, ParticleAbsorb, 5+s.rng.Intn(4))
			}
		case telemetry.EventPlayerDied:
			if int(ev.Slot) >= 0 && int(ev.Slot) < len(v.Players) {
				p := v.Players[ev.Slot]
				s.Burst(float32(p.X), float32(p.Y), ParticleDeath, 20+s.rng.Intn(10))
			}
		}
	}

	clear(s.lastFish)
	for i := range v.Fish {
		f := &v.Fish[i]
		s.lastFish[f.ID] = rl.Vector2{X: float32(f.X), Y: float32(f.Y)}
	}
}

// Reset drops all particles and remembered positions.
func (s *ParticleSystem) Reset() {
	s.Particles = s.Particles[:0]
	clear(s.lastFish)
}

// Update processes all particles.
func (s *ParticleSystem) Update() {
	alive := 0
	for i := range s.Particles {
		p := &s.Particles[i]

		p.Life--
		if p.Life <= 0 {
			continue
		}

		switch p.Type {
		case ParticleBite:
			// Bubbles rise
			p.VelY -= 0.01
		case ParticleDeath:
			// Sink downward
			p.VelY += 0.02
		case ParticleAbsorb:
			p.VelY += 0.005
		}

		// Drag
		p.VelX *= 0.95
		p.VelY *= 0.95

		p.X += p.VelX
		p.Y += p.VelY

		s.Particles[alive] = s.Particles[i]
		alive++
	}
	s.Particles = s.Particles[:alive]
}

// Burst emits count particles in a radial pattern around (x, y).
func (s *ParticleSystem) Burst(x, y float32, ptype ParticleType, count int) {
	for i := 0; i < count; i++ {
		if len(s.Particles) >= maxParticles {
			return
		}

		angle := s.rng.Float64() * 2 * math.Pi
		speed := 0.5 + s.rng.Float32()*0.8
		life := int32(30 + s.rng.Intn(30))
		if ptype == ParticleDeath {
			speed *= 1.5
			life += 40
		}

		s.Particles = append(s.Particles, EffectParticle{
			X:       x + (s.rng.Float32()-0.5)*6,
			Y:       y + (s.rng.Float32()-0.5)*6,
			VelX:    float32(math.Cos(angle)) * speed,
			VelY:    float32(math.Sin(angle)) * speed,
			Life:    life,
			MaxLife: life,
			Type:    ptype,
			Size:    2 + s.rng.Float32()*1.5,
		})
	}
}

// Count returns the current number of active particles.
func (s *ParticleSystem) Count() int {
	return len(s.Particles)
}

// Draw renders all particles.
func (s *ParticleSystem) Draw() {
	for i := range s.Particles {
		p := &s.Particles[i]

		lifeRatio := float32(p.Life) / float32(p.MaxLife)

		var color rl.Color
		switch p.Type {
		case ParticleBite:
			// Pale bubbles
			color = rl.Color{R: 210, G: 240, B: 255, A: uint8(lifeRatio * 200)}
		case ParticleAbsorb:
			// Teal
			color = rl.Color{R: 70, G: 200, B: 180, A: uint8(lifeRatio * 160)}
		case ParticleDeath:
			// Red
			color = rl.Color{R: 220, G: 50, B: 40, A: uint8(lifeRatio * 220)}
		}

		size := p.Size * lifeRatio
		if size < 0.5 {
			size = 0.5
		}
		rl.DrawCircle(int32(p.X), int32(p.Y), size, color)
	}
}
