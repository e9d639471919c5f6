// Package systems contains the particle simulation: spawning, pointer force and integration.
package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/drift/components"
)

// Default integration parameters.
const (
	DefaultDamping = 0.98
	DefaultDrift   = -0.002
)

// Bounds represents the surface dimensions used for spawning and wrap-around.
type Bounds struct {
	Width, Height float64
}

// Integrator advances one particle by one tick.
type Integrator struct {
	Force   ForceField
	Damping float64 // velocity multiplier per tick
	Drift   float64 // added to vy after damping, keeps the upward bias alive
}

// DefaultIntegrator returns the integrator with default force, damping and drift.
func DefaultIntegrator() Integrator {
	return Integrator{
		Force:   DefaultForceField(),
		Damping: DefaultDamping,
		Drift:   DefaultDrift,
	}
}

// Step applies force, integrates, damps, drifts and wraps, in that order.
func (in Integrator) Step(pos *components.Position, vel *components.Velocity, pointer Pointer, b Bounds) {
	dvx, dvy := in.Force.ForceOn(*pos, pointer)
	vel.X += dvx
	vel.Y += dvy

	pos.X += vel.X
	pos.Y += vel.Y

	vel.X *= in.Damping
	vel.Y *= in.Damping

	vel.Y += in.Drift

	// Vertical wrap is one-sided: only particles rising past the top are recycled
	if pos.Y < 0 {
		pos.Y = b.Height
	}

	// Horizontal wrap-around
	if pos.X < 0 {
		pos.X = b.Width
	} else if pos.X > b.Width {
		pos.X = 0
	}
}

// PhysicsSystem steps every particle entity once per tick.
type PhysicsSystem struct {
	Integrator
	filter *ecs.Filter2[components.Position, components.Velocity]
}

// NewPhysicsSystem creates a new physics system.
func NewPhysicsSystem(w *ecs.World, in Integrator) *PhysicsSystem {
	return &PhysicsSystem{
		Integrator: in,
		filter:     ecs.NewFilter2[components.Position, components.Velocity](w),
	}
}

// Update runs the physics system.
func (s *PhysicsSystem) Update(pointer Pointer, b Bounds) {
	query := s.filter.Query()
	for query.Next() {
		pos, vel := query.Get()
		s.Step(pos, vel, pointer, b)
	}
}
