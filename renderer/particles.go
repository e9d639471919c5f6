package renderer

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/drift/components"
)

// ParticleRenderer renders the particle field.
type ParticleRenderer struct {
	filter *ecs.Filter2[components.Position, components.Glow]
	paint  Paint
}

// NewParticleRenderer creates a new particle renderer.
func NewParticleRenderer(w *ecs.World, paint Paint) *ParticleRenderer {
	return &ParticleRenderer{
		filter: ecs.NewFilter2[components.Position, components.Glow](w),
		paint:  paint,
	}
}

// Configure applies the fixed paint settings. Called once per surface,
// outside the per-tick path.
func (r *ParticleRenderer) Configure(s Surface) {
	s.ConfigurePaint(r.paint)
}

// Draw clears the surface and draws every particle as a disc of radius Size
// and opacity Alpha. Returns the number of discs drawn.
func (r *ParticleRenderer) Draw(s Surface) int {
	s.Clear()

	drawn := 0
	query := r.filter.Query()
	for query.Next() {
		pos, glow := query.Get()
		s.DrawFilledCircle(pos.X, pos.Y, glow.Size, glow.Alpha)
		drawn++
	}
	return drawn
}
