package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/drift/components"
)

// DefaultParticleCount is the fixed size of a field.
const DefaultParticleCount = 250

// SpawnConfig holds the randomized ranges used when a particle is created.
type SpawnConfig struct {
	VXJitter   float64 // vx = (u-0.5) * VXJitter
	VYBase     float64 // vy = VYBase - u*VYJitter
	VYJitter   float64
	SizeMin    float64
	SizeRange  float64
	AlphaMin   float64
	AlphaRange float64
}

// DefaultSpawnConfig returns the default spawn ranges.
func DefaultSpawnConfig() SpawnConfig {
	return SpawnConfig{
		VXJitter:   0.1,
		VYBase:     -0.05,
		VYJitter:   0.1,
		SizeMin:    1.0,
		SizeRange:  1.5,
		AlphaMin:   0.2,
		AlphaRange: 0.4,
	}
}

// Particle is a value snapshot of one particle entity.
type Particle struct {
	Pos  components.Position
	Vel  components.Velocity
	Glow components.Glow
}

// SpawnParticles creates count particles spread uniformly over the bounds.
// Values are drawn from rng in a fixed order (x, y, vx, vy, size, alpha) so a
// seeded source reproduces the same layout.
func SpawnParticles(rng Source, b Bounds, count int, sc SpawnConfig) []Particle {
	if count < 0 {
		count = 0
	}
	particles := make([]Particle, count)
	for i := range particles {
		p := &particles[i]
		p.Pos.X = rng.Float64() * b.Width
		p.Pos.Y = rng.Float64() * b.Height
		p.Vel.X = (rng.Float64() - 0.5) * sc.VXJitter
		p.Vel.Y = sc.VYBase - rng.Float64()*sc.VYJitter
		p.Glow.Size = sc.SizeMin + rng.Float64()*sc.SizeRange
		p.Glow.Alpha = sc.AlphaMin + rng.Float64()*sc.AlphaRange
	}
	return particles
}

// ParticleSystem owns the particle entities of one field.
type ParticleSystem struct {
	world  *ecs.World
	mapper *ecs.Map3[components.Position, components.Velocity, components.Glow]
	filter *ecs.Filter3[components.Position, components.Velocity, components.Glow]

	rng   Source
	spawn SpawnConfig
	count int

	live   int
	bounds Bounds
}

// NewParticleSystem creates an empty particle system. Call Reset to populate it.
func NewParticleSystem(w *ecs.World, rng Source, count int, spawn SpawnConfig) *ParticleSystem {
	return &ParticleSystem{
		world:  w,
		mapper: ecs.NewMap3[components.Position, components.Velocity, components.Glow](w),
		filter: ecs.NewFilter3[components.Position, components.Velocity, components.Glow](w),
		rng:    rng,
		spawn:  spawn,
		count:  count,
	}
}

// Reset discards every particle and spawns a fresh set inside b.
func (s *ParticleSystem) Reset(b Bounds) {
	s.Clear()
	s.bounds = b

	for _, p := range SpawnParticles(s.rng, b, s.count, s.spawn) {
		pos, vel, glow := p.Pos, p.Vel, p.Glow
		s.mapper.NewEntity(&pos, &vel, &glow)
		s.live++
	}
}

// Clear removes every particle entity.
func (s *ParticleSystem) Clear() {
	// Collect first; the world is locked while a query is open
	var toRemove []ecs.Entity
	query := s.filter.Query()
	for query.Next() {
		toRemove = append(toRemove, query.Entity())
	}
	for _, e := range toRemove {
		s.world.RemoveEntity(e)
	}
	s.live = 0
}

// Count returns the number of live particles.
func (s *ParticleSystem) Count() int {
	return s.live
}

// Bounds returns the bounds of the last Reset.
func (s *ParticleSystem) Bounds() Bounds {
	return s.bounds
}

// Snapshot copies the current particle state.
func (s *ParticleSystem) Snapshot() []Particle {
	out := make([]Particle, 0, s.live)
	query := s.filter.Query()
	for query.Next() {
		pos, vel, glow := query.Get()
		out = append(out, Particle{Pos: *pos, Vel: *vel, Glow: *glow})
	}
	return out
}
