package game

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/drift/events"
	"github.com/pthm-cable/drift/frame"
	"github.com/pthm-cable/drift/renderer"
	"github.com/pthm-cable/drift/systems"
	"github.com/pthm-cable/drift/telemetry"
)

// State is the controller lifecycle state.
type State uint8

const (
	StateUninitialized State = iota
	StateRunning
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	}
	return "unknown"
}

// SurfaceProvider acquires the drawing surface. It returns false when no
// surface or drawing context is available.
type SurfaceProvider func() (renderer.Surface, bool)

// Host bundles the collaborators a backend supplies to the controller.
type Host struct {
	Surface SurfaceProvider
	Frames  frame.Source
	Events  *events.Bus
	// Viewport returns the size the surface should take. Nil keeps the
	// surface's own size.
	Viewport func() (w, h float64)
}

// Controller owns one particle field: its surface, particles, pointer state,
// frame loop and listeners.
type Controller struct {
	settings Settings
	host     Host
	rng      systems.Source
	logger   *slog.Logger
	recorder *Recorder

	state State

	surface   renderer.Surface
	world     *ecs.World
	particles *systems.ParticleSystem
	physics   *systems.PhysicsSystem
	renderer  *renderer.ParticleRenderer
	scheduler *frame.Scheduler
	listeners []*events.Listener

	pointer systems.Pointer
	bounds  systems.Bounds
	ticks   uint64
}

// NewController creates an uninitialized controller. Call Start to run it.
func NewController(settings Settings, host Host, rng systems.Source) *Controller {
	return &Controller{
		settings: settings,
		host:     host,
		rng:      rng,
		logger:   slog.Default(),
	}
}

// SetLogger replaces the default logger.
func (c *Controller) SetLogger(l *slog.Logger) {
	c.logger = l
}

// SetRecorder attaches telemetry. Nil disables it.
func (c *Controller) SetRecorder(r *Recorder) {
	c.recorder = r
}

// Start acquires the surface, spawns the field, starts the frame loop and
// registers listeners. Without a surface the controller stays inert.
func (c *Controller) Start() {
	if c.state != StateUninitialized {
		return
	}

	surface, ok := c.host.Surface()
	if !ok || surface == nil {
		c.logger.Debug("surface unavailable, effect inert")
		return
	}
	c.surface = surface
	c.fitSurface()

	c.world = ecs.NewWorld()
	c.particles = systems.NewParticleSystem(c.world, c.rng, c.settings.Count, c.settings.Spawn)
	c.physics = systems.NewPhysicsSystem(c.world, c.settings.Integrator)
	c.renderer = renderer.NewParticleRenderer(c.world, c.settings.Paint)

	c.particles.Reset(c.bounds)
	c.renderer.Configure(c.surface)

	c.scheduler = frame.NewScheduler(c.host.Frames)
	c.scheduler.Start(c.tick)

	c.listeners = append(c.listeners,
		c.host.Events.OnResize(c.OnResize),
		c.host.Events.OnPointerMove(c.OnPointerMove),
		c.host.Events.OnPointerLeave(c.OnPointerLeave),
	)

	c.state = StateRunning
	c.logger.Info("effect started",
		"width", c.bounds.Width,
		"height", c.bounds.Height,
		"particles", c.particles.Count(),
	)
}

// fitSurface sizes the surface to the host viewport and records the bounds.
func (c *Controller) fitSurface() {
	if c.host.Viewport != nil {
		w, h := c.host.Viewport()
		c.surface.SetSize(w, h)
	}
	c.bounds = systems.Bounds{Width: c.surface.Width(), Height: c.surface.Height()}
}

// OnResize resizes the surface and replaces every particle. The frame loop keeps running.
func (c *Controller) OnResize() {
	if c.state != StateRunning {
		return
	}
	c.fitSurface()
	c.particles.Reset(c.bounds)
	c.recorder.recordResize()
	c.logger.Debug("effect resized", "width", c.bounds.Width, "height", c.bounds.Height)
}

// OnPointerMove converts absolute device coordinates to surface-local ones.
func (c *Controller) OnPointerMove(x, y float64) {
	if c.state != StateRunning {
		return
	}
	ox, oy := c.surface.Offset()
	c.pointer = systems.Pointer{X: x - ox, Y: y - oy, Active: true}
}

// OnPointerLeave removes the pointer force.
func (c *Controller) OnPointerLeave() {
	if c.state != StateRunning {
		return
	}
	c.pointer = systems.Pointer{}
}

// Stop cancels the frame loop, removes every listener and drops the field.
// Stopped is terminal; calling Stop again does nothing.
func (c *Controller) Stop() {
	if c.state == StateStopped {
		return
	}
	wasRunning := c.state == StateRunning
	c.state = StateStopped

	if c.scheduler != nil {
		c.scheduler.Cancel()
	}
	for _, l := range c.listeners {
		l.Remove()
	}
	c.listeners = nil

	c.particles = nil
	c.physics = nil
	c.renderer = nil
	c.world = nil
	c.surface = nil
	c.pointer = systems.Pointer{}

	if wasRunning {
		c.logger.Info("effect stopped", "ticks", c.ticks)
	}
}

// tick advances every particle once and draws the field.
func (c *Controller) tick() {
	c.ticks++
	c.recorder.startTick()

	c.recorder.phase(telemetry.PhasePhysics)
	c.physics.Update(c.pointer, c.bounds)

	c.recorder.phase(telemetry.PhaseRender)
	c.renderer.Draw(c.surface)

	c.recorder.endTick(c)
}

// Tune swaps the integrator parameters; takes effect on the next tick.
func (c *Controller) Tune(in systems.Integrator) {
	c.settings.Integrator = in
	if c.physics != nil {
		c.physics.Integrator = in
	}
}

// State returns the lifecycle state.
func (c *Controller) State() State {
	return c.state
}

// Pointer returns the current surface-local pointer state.
func (c *Controller) Pointer() systems.Pointer {
	return c.pointer
}

// Bounds returns the current surface dimensions.
func (c *Controller) Bounds() systems.Bounds {
	return c.bounds
}

// Ticks returns the number of ticks run.
func (c *Controller) Ticks() uint64 {
	return c.ticks
}

// Settings returns the active settings.
func (c *Controller) Settings() Settings {
	return c.settings
}

// Particles returns a snapshot of the field, or nil when not running.
func (c *Controller) Particles() []systems.Particle {
	if c.particles == nil {
		return nil
	}
	return c.particles.Snapshot()
}
