package telemetry

import (
	"log/slog"
	"time"
)

// Phase is one timed part of a runner iteration.
type Phase int

// Phases of one iteration.
const (
	PhaseStep   Phase = iota // world tick
	PhaseStats               // collector and histograms
	PhaseOutput              // CSV writes
	PhaseRender              // viewer frame
	numPhases
)

var phaseNames = [numPhases]string{"step", "stats", "output", "render"}

func (p Phase) String() string {
	if p < 0 || p >= numPhases {
		return "unknown"
	}
	return phaseNames[p]
}

// PerfCollector tracks iteration timing over a rolling window.
type PerfCollector struct {
	window int
	ticks  []time.Duration
	phases [][numPhases]time.Duration
	next   int
	count  int

	current    [numPhases]time.Duration
	tickStart  time.Time
	phaseStart time.Time
	phase      Phase
	inPhase    bool

	lastFrame time.Time
	frame     time.Duration
}

// NewPerfCollector creates a collector averaging over window iterations.
func NewPerfCollector(window int) *PerfCollector {
	if window < 1 {
		window = 60
	}
	return &PerfCollector{
		window: window,
		ticks:  make([]time.Duration, window),
		phases: make([][numPhases]time.Duration, window),
	}
}

// StartTick begins timing an iteration.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.current = [numPhases]time.Duration{}
	p.inPhase = false
}

// StartPhase ends the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase Phase) {
	now := time.Now()
	if p.inPhase {
		p.current[p.phase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.phase = phase
	p.inPhase = true
}

// EndTick closes the running phase and records the iteration.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	if p.inPhase {
		p.current[p.phase] += now.Sub(p.phaseStart)
		p.inPhase = false
	}

	p.ticks[p.next] = now.Sub(p.tickStart)
	p.phases[p.next] = p.current
	p.next = (p.next + 1) % p.window
	if p.count < p.window {
		p.count++
	}
}

// RecordRender adds a frame's draw time to the most recent iteration, so
// render shares the iteration with the tick that preceded it.
func (p *PerfCollector) RecordRender(d time.Duration) {
	if p.count == 0 {
		return
	}
	last := (p.next + p.window - 1) % p.window
	p.ticks[last] += d
	p.phases[last][PhaseRender] += d
}

// RecordFrame records the time since the previous rendered frame.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frame = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats holds aggregated timing over the window.
type PerfStats struct {
	AvgTick        time.Duration
	MinTick        time.Duration
	MaxTick        time.Duration
	TicksPerSecond float64
	PhasePct       [numPhases]float64 // share of the average iteration
	FPS            float64
}

// Stats aggregates the recorded iterations.
func (p *PerfCollector) Stats() PerfStats {
	var s PerfStats
	if p.frame > 0 {
		s.FPS = float64(time.Second) / float64(p.frame)
	}
	if p.count == 0 {
		return s
	}

	var total time.Duration
	var phaseSum [numPhases]time.Duration
	for i := 0; i < p.count; i++ {
		d := p.ticks[i]
		total += d
		if i == 0 || d < s.MinTick {
			s.MinTick = d
		}
		if d > s.MaxTick {
			s.MaxTick = d
		}
		for ph, pd := range p.phases[i] {
			phaseSum[ph] += pd
		}
	}

	if total > 0 {
		for ph := range phaseSum {
			s.PhasePct[ph] = float64(phaseSum[ph]) / float64(total) * 100
		}
	}
	s.AvgTick = total / time.Duration(p.count)
	if s.AvgTick > 0 {
		s.TicksPerSecond = float64(time.Second) / float64(s.AvgTick)
	}
	return s
}

// LogStats logs the timing summary.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_tick_us", s.AvgTick.Microseconds(),
		"min_tick_us", s.MinTick.Microseconds(),
		"max_tick_us", s.MaxTick.Microseconds(),
		"ticks_per_sec", int(s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}
	for ph, pct := range s.PhasePct {
		if pct > 0.1 {
			attrs = append(attrs, Phase(ph).String()+"_pct", float64(int(pct*10))/10)
		}
	}
	slog.Info("perf", attrs...)
}
