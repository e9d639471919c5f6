package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhasePhysics)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseRender)
		time.Sleep(200 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()

	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration")
	}
	if stats.MinTickDuration > stats.AvgTickDuration || stats.MaxTickDuration < stats.AvgTickDuration {
		t.Errorf("min/avg/max out of order: %v / %v / %v",
			stats.MinTickDuration, stats.AvgTickDuration, stats.MaxTickDuration)
	}
	if _, ok := stats.PhaseAvg[PhasePhysics]; !ok {
		t.Error("expected physics phase to be tracked")
	}
	if _, ok := stats.PhaseAvg[PhaseRender]; !ok {
		t.Error("expected render phase to be tracked")
	}
	if _, ok := stats.PhaseAvg[PhaseTelemetry]; ok {
		t.Error("telemetry phase never ran but was reported")
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	for i := 0; i < 10; i++ {
		pc.StartTick()
		pc.StartPhase(PhasePhysics)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.TicksPerSecond <= 0 {
		t.Error("expected positive ticks per second")
	}
	if pc.filled != 5 {
		t.Errorf("filled = %d, want window size 5", pc.filled)
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhasePhysics)
		time.Sleep(10 * time.Microsecond)
		pc.StartPhase(PhaseRender)
		time.Sleep(2 * time.Millisecond)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.PhasePct[PhaseRender] <= stats.PhasePct[PhasePhysics] {
		t.Errorf("expected render (%v%%) > physics (%v%%)",
			stats.PhasePct[PhaseRender], stats.PhasePct[PhasePhysics])
	}
	if total := stats.PhasePct[PhaseRender] + stats.PhasePct[PhasePhysics]; total > 100.0001 {
		t.Errorf("phase percentages sum to %v, want <= 100", total)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	stats := NewPerfCollector(10).Stats()

	if stats.AvgTickDuration != 0 {
		t.Error("expected zero avg tick duration for empty collector")
	}
	if stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Error("expected non-nil phase maps")
	}
}

func TestPerfCollector_FrameTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	pc.RecordFrame()
	time.Sleep(16 * time.Millisecond)
	pc.RecordFrame()

	stats := pc.Stats()
	if stats.FrameDuration < 15*time.Millisecond {
		t.Errorf("expected frame duration >= 15ms, got %v", stats.FrameDuration)
	}
	if stats.FPS <= 0 || stats.FPS > 70 {
		t.Errorf("expected FPS in (0, 70] with 16ms frames, got %v", stats.FPS)
	}
}

func TestPerfStats_ToCSV(t *testing.T) {
	stats := PerfStats{
		AvgTickDuration: 1500 * time.Microsecond,
		PhasePct:        map[string]float64{PhasePhysics: 40, PhaseRender: 55},
	}
	rec := stats.ToCSV(600)

	if rec.WindowEnd != 600 || rec.AvgTickUS != 1500 {
		t.Errorf("record = %+v", rec)
	}
	if rec.PhysicsPct != 40 || rec.RenderPct != 55 || rec.TelemetryPct != 0 {
		t.Errorf("phase pct = %v/%v/%v, want 40/55/0", rec.PhysicsPct, rec.RenderPct, rec.TelemetryPct)
	}
}
