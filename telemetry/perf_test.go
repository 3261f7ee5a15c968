package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseStep)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseOutput)
		time.Sleep(200 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.AvgTick <= 0 {
		t.Error("expected positive average tick duration")
	}
	if stats.MinTick > stats.AvgTick || stats.AvgTick > stats.MaxTick {
		t.Errorf("expected min <= avg <= max, got %v %v %v", stats.MinTick, stats.AvgTick, stats.MaxTick)
	}
	if stats.PhasePct[PhaseStep] <= 0 || stats.PhasePct[PhaseOutput] <= 0 {
		t.Errorf("expected step and output phases tracked, got %v", stats.PhasePct)
	}
	if stats.PhasePct[PhaseRender] != 0 {
		t.Errorf("render phase never ran, got %v%%", stats.PhasePct[PhaseRender])
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	for i := 0; i < 10; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseStep)
		time.Sleep(50 * time.Microsecond)
		pc.EndTick()
	}

	if pc.count != 5 {
		t.Errorf("expected 5 samples kept, got %d", pc.count)
	}
	if stats := pc.Stats(); stats.TicksPerSecond <= 0 {
		t.Error("expected positive ticks per second")
	}
}

func TestPerfCollector_PhasePercentagesBounded(t *testing.T) {
	pc := NewPerfCollector(10)

	pc.StartTick()
	pc.StartPhase(PhaseStep)
	time.Sleep(300 * time.Microsecond)
	pc.StartPhase(PhaseStats)
	time.Sleep(100 * time.Microsecond)
	pc.EndTick()

	stats := pc.Stats()
	var sum float64
	for _, pct := range stats.PhasePct {
		sum += pct
	}
	if sum <= 0 || sum > 100.01 {
		t.Errorf("expected phase percentages in (0, 100], got %.2f", sum)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	stats := NewPerfCollector(10).Stats()
	if stats.AvgTick != 0 || stats.TicksPerSecond != 0 {
		t.Errorf("expected zero stats, got %+v", stats)
	}
}

func TestPerfCollector_FrameTiming(t *testing.T) {
	pc := NewPerfCollector(10)
	pc.RecordFrame()
	time.Sleep(2 * time.Millisecond)
	pc.RecordFrame()

	if fps := pc.Stats().FPS; fps <= 0 || fps > 1000 {
		t.Errorf("expected fps in (0, 1000], got %v", fps)
	}
}

func TestPerfCollector_RenderSharesIteration(t *testing.T) {
	pc := NewPerfCollector(10)
	pc.RecordRender(time.Millisecond) // no iteration yet
	if stats := pc.Stats(); stats.AvgTick != 0 {
		t.Fatalf("render before any tick recorded %v", stats.AvgTick)
	}

	pc.StartTick()
	pc.StartPhase(PhaseStep)
	time.Sleep(200 * time.Microsecond)
	pc.EndTick()
	before := pc.Stats().AvgTick

	pc.RecordRender(2 * time.Millisecond)
	stats := pc.Stats()
	if got := stats.AvgTick - before; got != 2*time.Millisecond {
		t.Errorf("render added %v to the iteration, want 2ms", got)
	}
	if stats.PhasePct[PhaseRender] <= 0 || stats.PhasePct[PhaseStep] <= 0 {
		t.Errorf("expected step and render shares, got %v", stats.PhasePct)
	}
	var sum float64
	for _, pct := range stats.PhasePct {
		sum += pct
	}
	if sum > 100.01 {
		t.Errorf("phase shares sum to %.2f", sum)
	}
}
