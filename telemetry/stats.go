// Package telemetry collects field statistics and tick timing for logs and CSV output.
package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/drift/systems"
)

// WindowStats holds aggregated field statistics for one window of ticks.
type WindowStats struct {
	WindowEndTick uint64  `csv:"window_end"`
	Ticks         int     `csv:"ticks"`
	Particles     int     `csv:"particles"`
	Width         float64 `csv:"width"`
	Height        float64 `csv:"height"`

	// Velocity distribution sampled at window end
	MeanVX   float64 `csv:"mean_vx"`
	StdVX    float64 `csv:"std_vx"`
	MeanVY   float64 `csv:"mean_vy"`
	StdVY    float64 `csv:"std_vy"`
	SpeedP50 float64 `csv:"speed_p50"`
	SpeedP90 float64 `csv:"speed_p90"`

	// Pointer interaction
	NearPointer       int     `csv:"near_pointer"`        // particles inside the force radius at window end
	PointerActiveFrac float64 `csv:"pointer_active_frac"` // share of ticks with a pointer present

	Resizes int `csv:"resizes"`
}

// VelocityStats summarizes particle velocities.
type VelocityStats struct {
	MeanVX, StdVX float64
	MeanVY, StdVY float64
	SpeedP50      float64
	SpeedP90      float64
}

// ComputeVelocityStats returns the velocity summary of particles.
// Empty input yields zero values.
func ComputeVelocityStats(particles []systems.Particle) VelocityStats {
	if len(particles) == 0 {
		return VelocityStats{}
	}

	vx := make([]float64, len(particles))
	vy := make([]float64, len(particles))
	speed := make([]float64, len(particles))
	for i, p := range particles {
		vx[i] = p.Vel.X
		vy[i] = p.Vel.Y
		speed[i] = math.Hypot(p.Vel.X, p.Vel.Y)
	}
	sort.Float64s(speed)

	var out VelocityStats
	out.MeanVX, out.StdVX = meanStd(vx)
	out.MeanVY, out.StdVY = meanStd(vy)
	out.SpeedP50 = stat.Quantile(0.5, stat.LinInterp, speed, nil)
	out.SpeedP90 = stat.Quantile(0.9, stat.LinInterp, speed, nil)
	return out
}

func meanStd(x []float64) (mean, std float64) {
	if len(x) < 2 {
		return stat.Mean(x, nil), 0
	}
	return stat.MeanStdDev(x, nil)
}

// CountNear returns how many particles sit strictly inside radius of the pointer.
func CountNear(particles []systems.Particle, pointer systems.Pointer, radius float64) int {
	if !pointer.Active {
		return 0
	}
	r2 := radius * radius
	n := 0
	for _, p := range particles {
		dx := p.Pos.X - pointer.X
		dy := p.Pos.Y - pointer.Y
		if dx*dx+dy*dy < r2 {
			n++
		}
	}
	return n
}

// Collector accumulates per-tick counters and emits one WindowStats per window.
type Collector struct {
	windowTicks int
	radius      float64

	ticks       int
	activeTicks int
	resizes     int
}

// NewCollector creates a collector flushing every windowTicks ticks.
// radius is the pointer force radius used for NearPointer.
func NewCollector(windowTicks int, radius float64) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{windowTicks: windowTicks, radius: radius}
}

// RecordTick counts one tick.
func (c *Collector) RecordTick(pointer systems.Pointer) {
	c.ticks++
	if pointer.Active {
		c.activeTicks++
	}
}

// RecordResize counts one field reinitialization.
func (c *Collector) RecordResize() {
	c.resizes++
}

// ShouldFlush reports whether the current window is complete.
func (c *Collector) ShouldFlush() bool {
	return c.ticks >= c.windowTicks
}

// Flush summarizes the window ending at tick and starts a new one.
func (c *Collector) Flush(tick uint64, particles []systems.Particle, pointer systems.Pointer, b systems.Bounds) WindowStats {
	vs := ComputeVelocityStats(particles)
	out := WindowStats{
		WindowEndTick: tick,
		Ticks:         c.ticks,
		Particles:     len(particles),
		Width:         b.Width,
		Height:        b.Height,
		MeanVX:        vs.MeanVX,
		StdVX:         vs.StdVX,
		MeanVY:        vs.MeanVY,
		StdVY:         vs.StdVY,
		SpeedP50:      vs.SpeedP50,
		SpeedP90:      vs.SpeedP90,
		NearPointer:   CountNear(particles, pointer, c.radius),
		Resizes:       c.resizes,
	}
	if c.ticks > 0 {
		out.PointerActiveFrac = float64(c.activeTicks) / float64(c.ticks)
	}

	c.ticks, c.activeTicks, c.resizes = 0, 0, 0
	return out
}

// LogStats logs the window with slog.
func (s WindowStats) LogStats() {
	slog.Info("field",
		"tick", s.WindowEndTick,
		"particles", s.Particles,
		"size", [2]float64{s.Width, s.Height},
		"mean_vx", s.MeanVX,
		"mean_vy", s.MeanVY,
		"speed_p50", s.SpeedP50,
		"speed_p90", s.SpeedP90,
		"near_pointer", s.NearPointer,
		"pointer_active", s.PointerActiveFrac,
		"resizes", s.Resizes,
	)
}
