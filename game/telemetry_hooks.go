package game

import (
	"log/slog"

	"github.com/pthm-cable/drift/telemetry"
)

// Recorder gathers field statistics and tick timings for a controller.
// A nil *Recorder records nothing.
type Recorder struct {
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)
}

// NewRecorder creates a recorder. perf and output may be nil.
func NewRecorder(collector *telemetry.Collector, perf *telemetry.PerfCollector, output *telemetry.OutputManager, logStats bool) *Recorder {
	return &Recorder{
		collector:     collector,
		perfCollector: perf,
		outputManager: output,
		logStats:      logStats,
	}
}

// OnStats registers a callback invoked with every flushed window.
func (r *Recorder) OnStats(fn func(telemetry.WindowStats)) {
	r.statsCallback = fn
}

func (r *Recorder) startTick() {
	if r == nil || r.perfCollector == nil {
		return
	}
	r.perfCollector.StartTick()
}

func (r *Recorder) phase(name string) {
	if r == nil || r.perfCollector == nil {
		return
	}
	r.perfCollector.StartPhase(name)
}

// recordFrame marks a frame shown to the user; windowed backends call it
// once per presented frame.
func (r *Recorder) recordFrame() {
	if r == nil || r.perfCollector == nil {
		return
	}
	r.perfCollector.RecordFrame()
}

func (r *Recorder) recordResize() {
	if r == nil || r.collector == nil {
		return
	}
	r.collector.RecordResize()
}

// endTick counts the tick and flushes the window when it is full.
func (r *Recorder) endTick(c *Controller) {
	if r == nil {
		return
	}
	r.phase(telemetry.PhaseTelemetry)
	if r.collector != nil {
		r.collector.RecordTick(c.pointer)
		if r.collector.ShouldFlush() {
			r.flushTelemetry(c)
		}
	}
	if r.perfCollector != nil {
		r.perfCollector.EndTick()
	}
}

// flushTelemetry emits one stats window to the log, the callback and CSV output.
func (r *Recorder) flushTelemetry(c *Controller) {
	stats := r.collector.Flush(c.ticks, c.particles.Snapshot(), c.pointer, c.bounds)

	if r.statsCallback != nil {
		r.statsCallback(stats)
	}

	var perfStats telemetry.PerfStats
	if r.perfCollector != nil {
		perfStats = r.perfCollector.Stats()
	}

	if r.logStats {
		stats.LogStats()
		if r.perfCollector != nil {
			slog.Info("perf", "stats", perfStats)
		}
	}

	if err := r.outputManager.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if r.perfCollector != nil {
		if err := r.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}
