package pong

import (
	"math/rand"

	"github.com/vovakirdan/games-hub/internal/core"
)

// Particle tuning.
const (
	WallParticles   = 12
	PaddleParticles = 16
	particleSpread  = 6    // velocity range, px per reference frame
	particleDecay   = 0.9  // life lost per second
	particleDamping = 0.98 // velocity kept per update
)

// Particle is a short-lived spark drawn by renderers.
type Particle struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	VX    float64 `json:"vx"`
	VY    float64 `json:"vy"`
	Life  float64 `json:"life"` // 1 at spawn, removed at 0
	Color string  `json:"color"`
}

// Particles spawns sparks from collision events. Sparks are presentation
// only; the match never reads them.
type Particles struct {
	rng  *rand.Rand
	list []Particle
}

// NewParticles creates an empty emitter.
func NewParticles(seed int64) *Particles {
	return &Particles{rng: rand.New(rand.NewSource(seed))}
}

// Handle is a Bus subscriber.
func (p *Particles) Handle(ev Event) {
	switch ev.Kind {
	case EventWallBounce:
		color := "pink"
		if ev.Top {
			color = "cyan"
		}
		p.Spawn(ev.X, ev.Y, color, WallParticles)
	case EventPaddleHit:
		color := "pink"
		if ev.Side == core.SideLeft {
			color = "lime"
		}
		p.Spawn(ev.X, ev.Y, color, PaddleParticles)
	}
}

// Spawn adds n particles at (x, y) with random velocities.
func (p *Particles) Spawn(x, y float64, color string, n int) {
	for range n {
		p.list = append(p.list, Particle{
			X:     x,
			Y:     y,
			VX:    (p.rng.Float64() - 0.5) * particleSpread,
			VY:    (p.rng.Float64() - 0.5) * particleSpread,
			Life:  1,
			Color: color,
		})
	}
}

// Update moves and fades particles by dt seconds, dropping dead ones.
func (p *Particles) Update(dt float64) {
	frames := dt * 60
	alive := p.list[:0]
	for _, pt := range p.list {
		pt.X += pt.VX * frames
		pt.Y += pt.VY * frames
		pt.VX *= particleDamping
		pt.VY *= particleDamping
		pt.Life -= particleDecay * dt
		if pt.Life > 0 {
			alive = append(alive, pt)
		}
	}
	p.list = alive
}

// Clear removes every particle.
func (p *Particles) Clear() {
	p.list = p.list[:0]
}

// Len returns the number of live particles.
func (p *Particles) Len() int {
	return len(p.list)
}

// List returns a copy of the live particles.
func (p *Particles) List() []Particle {
	out := make([]Particle, len(p.list))
	copy(out, p.list)
	return out
}
