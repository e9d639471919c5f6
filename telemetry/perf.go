package telemetry

import (
	"log/slog"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Phase names for one tick.
const (
	PhasePhysics   = "physics"
	PhaseRender    = "render"
	PhaseTelemetry = "telemetry"
)

var phaseOrder = []string{PhasePhysics, PhaseRender, PhaseTelemetry}

// tickSample holds timing for one tick. Phase durations are indexed like phaseOrder.
type tickSample struct {
	total  time.Duration
	phases [3]time.Duration
}

// PerfCollector tracks tick timing over a rolling window.
type PerfCollector struct {
	window []tickSample
	next   int
	filled int

	current    tickSample
	tickStart  time.Time
	phaseStart time.Time
	phase      int // index into phaseOrder, -1 when no phase is open

	lastFrame time.Time
	frameDur  time.Duration
}

// NewPerfCollector creates a collector averaging over windowSize ticks
// (60 is one second at 60fps).
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		window: make([]tickSample, windowSize),
		phase:  -1,
	}
}

// StartTick begins timing a new tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.current = tickSample{}
	p.phase = -1
}

// StartPhase closes the open phase, if any, and opens the named one.
// Unknown names are timed as part of the tick only.
func (p *PerfCollector) StartPhase(name string) {
	now := time.Now()
	p.closePhase(now)
	p.phaseStart = now
	p.phase = -1
	for i, n := range phaseOrder {
		if n == name {
			p.phase = i
			break
		}
	}
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase >= 0 {
		p.current.phases[p.phase] += now.Sub(p.phaseStart)
	}
}

// EndTick closes the tick and stores its sample in the window.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	p.closePhase(now)
	p.phase = -1
	p.current.total = now.Sub(p.tickStart)

	p.window[p.next] = p.current
	p.next = (p.next + 1) % len(p.window)
	if p.filled < len(p.window) {
		p.filled++
	}
}

// RecordFrame marks a displayed frame; the gap to the previous call is the frame time.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frameDur = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration

	// Average duration and share of tick time per phase
	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64

	TicksPerSecond float64

	// Frame timing (windowed backends only)
	FrameDuration time.Duration
	FPS           float64
}

// Stats aggregates the samples currently in the window.
func (p *PerfCollector) Stats() PerfStats {
	out := PerfStats{
		PhaseAvg:      make(map[string]time.Duration),
		PhasePct:      make(map[string]float64),
		FrameDuration: p.frameDur,
	}
	if p.frameDur > 0 {
		out.FPS = float64(time.Second) / float64(p.frameDur)
	}
	if p.filled == 0 {
		return out
	}

	totals := make([]float64, p.filled)
	phases := make([][]float64, len(phaseOrder))
	for i := range phases {
		phases[i] = make([]float64, p.filled)
	}
	for i, s := range p.window[:p.filled] {
		totals[i] = float64(s.total)
		for j, d := range s.phases {
			phases[j][i] = float64(d)
		}
	}

	avg := stat.Mean(totals, nil)
	out.AvgTickDuration = time.Duration(avg)
	out.MinTickDuration = time.Duration(floats.Min(totals))
	out.MaxTickDuration = time.Duration(floats.Max(totals))
	if avg > 0 {
		out.TicksPerSecond = float64(time.Second) / avg
	}

	for j, name := range phaseOrder {
		phaseAvg := stat.Mean(phases[j], nil)
		if phaseAvg == 0 {
			continue
		}
		out.PhaseAvg[name] = time.Duration(phaseAvg)
		if avg > 0 {
			out.PhasePct[name] = phaseAvg / avg * 100
		}
	}

	return out
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_tick_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, name := range phaseOrder {
		if pct, ok := s.PhasePct[name]; ok {
			attrs = append(attrs, slog.Float64(name+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd    uint64  `csv:"window_end"`
	AvgTickUS    int64   `csv:"avg_tick_us"`
	MinTickUS    int64   `csv:"min_tick_us"`
	MaxTickUS    int64   `csv:"max_tick_us"`
	TicksPerSec  float64 `csv:"ticks_per_sec"`
	FPS          float64 `csv:"fps"`
	PhysicsPct   float64 `csv:"physics_pct"`
	RenderPct    float64 `csv:"render_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd uint64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		AvgTickUS:    s.AvgTickDuration.Microseconds(),
		MinTickUS:    s.MinTickDuration.Microseconds(),
		MaxTickUS:    s.MaxTickDuration.Microseconds(),
		TicksPerSec:  s.TicksPerSecond,
		FPS:          s.FPS,
		PhysicsPct:   s.PhasePct[PhasePhysics],
		RenderPct:    s.PhasePct[PhaseRender],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
