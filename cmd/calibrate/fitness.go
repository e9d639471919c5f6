package main

import (
	"math"

	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/events"
	"github.com/pthm-cable/drift/frame"
	"github.com/pthm-cable/drift/game"
	"github.com/pthm-cable/drift/renderer"
	"github.com/pthm-cable/drift/systems"
	"github.com/pthm-cable/drift/telemetry"
)

// Target describes the motion the calibrated field should show with no pointer.
type Target struct {
	VY       float64 // mean vertical velocity at equilibrium
	HalfLife float64 // ticks for the horizontal velocity spread to halve
}

// Measurement is what one headless run produced.
type Measurement struct {
	VY       float64
	HalfLife float64
}

// FitnessEvaluator runs headless fields and scores them against a target.
type FitnessEvaluator struct {
	params *ParamVector
	base   *config.Config
	target Target
	ticks  int
	seed   int64
	last   Measurement
}

// NewFitnessEvaluator creates an evaluator running ticks per measurement.
func NewFitnessEvaluator(params *ParamVector, base *config.Config, target Target, ticks int, seed int64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params: params,
		base:   base,
		target: target,
		ticks:  ticks,
		seed:   seed,
	}
}

// Last returns the measurement from the most recent Evaluate call.
func (fe *FitnessEvaluator) Last() Measurement {
	return fe.last
}

// Evaluate scores raw parameter values (lower = better) as the sum of squared
// relative errors of equilibrium vy and horizontal half-life.
func (fe *FitnessEvaluator) Evaluate(raw []float64) float64 {
	cfg := *fe.base
	fe.params.ApplyToConfig(&cfg, raw)

	m := fe.Measure(&cfg)
	fe.last = m

	return relErr2(m.VY, fe.target.VY) + relErr2(m.HalfLife, fe.target.HalfLife)
}

// Measure runs a pointer-free field for the configured ticks.
func (fe *FitnessEvaluator) Measure(cfg *config.Config) Measurement {
	queue := frame.NewQueue()
	surface := renderer.NewMemorySurface(float64(cfg.Screen.Width), float64(cfg.Screen.Height))
	c := game.NewController(game.SettingsFromConfig(cfg), game.Host{
		Surface: func() (renderer.Surface, bool) { return surface, true },
		Frames:  queue,
		Events:  events.NewBus(),
	}, systems.NewSource(fe.seed))
	c.Start()
	defer c.Stop()

	start := telemetry.ComputeVelocityStats(c.Particles())
	for c.Ticks() < uint64(fe.ticks) {
		if queue.RunFrame() == 0 {
			break
		}
	}
	end := telemetry.ComputeVelocityStats(c.Particles())

	return Measurement{
		VY:       end.MeanVY,
		HalfLife: halfLife(start.StdVX, end.StdVX, float64(c.Ticks())),
	}
}

// halfLife assumes exponential decay from s0 to s1 over n ticks.
func halfLife(s0, s1, n float64) float64 {
	if s0 <= 0 || s1 <= 0 || s1 >= s0 || n <= 0 {
		return math.Inf(1)
	}
	return n * math.Ln2 / math.Log(s0/s1)
}

func relErr2(got, want float64) float64 {
	if math.IsInf(got, 0) || math.IsNaN(got) {
		return 1e6
	}
	if want == 0 {
		return got * got
	}
	e := (got - want) / want
	return e * e
}
