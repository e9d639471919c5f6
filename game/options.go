package game

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/systems"
	"github.com/pthm-cable/drift/telemetry"
)

// Options configures a backend run.
type Options struct {
	Seed           int64   // RNG seed
	MaxTicks       int     // stop after N ticks, 0 = unlimited
	LogStats       bool    // log window stats via slog
	StatsWindowSec float64 // stats window in seconds, 0 = use config
	OutputDir      string  // CSV and config snapshot directory, empty = disabled
}

// statsTicks converts the stats window to ticks at the configured frame rate.
func (o Options) statsTicks(cfg *config.Config) int {
	if o.StatsWindowSec <= 0 {
		return cfg.Derived.StatsTicks
	}
	return int(math.Max(1, math.Round(o.StatsWindowSec*float64(cfg.Screen.TargetFPS))))
}

// done reports whether the tick limit has been reached.
func (o Options) done(ticks uint64) bool {
	return o.MaxTicks > 0 && ticks >= uint64(o.MaxTicks)
}

// session is the backend-independent part of a run: the controller and its telemetry.
type session struct {
	cfg        *config.Config
	opts       Options
	controller *Controller
	output     *telemetry.OutputManager
}

// newSession builds a controller with telemetry for the given host.
func newSession(cfg *config.Config, opts Options, host Host) (*session, error) {
	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("setting up output: %w", err)
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	settings := SettingsFromConfig(cfg)
	recorder := NewRecorder(
		telemetry.NewCollector(opts.statsTicks(cfg), settings.Integrator.Force.Radius),
		telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		output,
		opts.LogStats,
	)

	c := NewController(settings, host, systems.NewSource(opts.Seed))
	c.SetRecorder(recorder)

	return &session{cfg: cfg, opts: opts, controller: c, output: output}, nil
}

// frameShown records a presented frame for the FPS figures.
func (s *session) frameShown() {
	s.controller.recorder.recordFrame()
}

// close stops the controller and flushes output files.
func (s *session) close() {
	s.controller.Stop()
	if err := s.output.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
