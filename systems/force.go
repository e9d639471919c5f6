package systems

import (
	"math"

	"github.com/pthm-cable/drift/components"
)

// Default pointer repulsion parameters.
const (
	DefaultForceRadius   = 140.0
	DefaultForceStrength = 0.15
)

// Pointer is the optional pointer position in surface-local coordinates.
// An inactive pointer exerts no force.
type Pointer struct {
	X, Y   float64
	Active bool
}

// ForceField computes the pointer repulsion applied to a single particle.
type ForceField struct {
	Radius   float64 // hard cutoff; no force at or beyond this distance
	Strength float64 // velocity delta scale at the pointer itself
}

// DefaultForceField returns the field with default radius and strength.
func DefaultForceField() ForceField {
	return ForceField{Radius: DefaultForceRadius, Strength: DefaultForceStrength}
}

// ForceOn returns the velocity delta the pointer adds to a particle at pos.
// The delta points away from the pointer and falls off linearly with squared
// distance, reaching zero at the radius.
func (f ForceField) ForceOn(pos components.Position, p Pointer) (dvx, dvy float64) {
	if !p.Active {
		return 0, 0
	}

	dx := pos.X - p.X
	dy := pos.Y - p.Y
	dist2 := dx*dx + dy*dy
	radius2 := f.Radius * f.Radius
	if dist2 >= radius2 {
		return 0, 0
	}

	strength := (radius2 - dist2) / radius2 * f.Strength
	// +1 keeps the direction term finite when the particle sits on the pointer
	d := math.Sqrt(dist2 + 1)
	return dx / d * strength, dy / d * strength
}
