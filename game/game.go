package game

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/pthm-cable/bugsoup/components"
	"github.com/pthm-cable/bugsoup/config"
	"github.com/pthm-cable/bugsoup/telemetry"
)

// Options holds runtime options that are not part of the world config.
type Options struct {
	LogStats       bool   // log per-kind stats every telemetry.log_every ticks
	OutputDir      string // experiment output directory (empty = none)
	StepsPerUpdate int    // ticks advanced per Update call
}

// Game drives a World and feeds its snapshots to telemetry.
type Game struct {
	cfg   *config.Config
	opts  Options
	world *World

	collector *telemetry.Collector
	genes     *telemetry.GeneHistogram
	output    *telemetry.OutputManager
	perf      *telemetry.PerfCollector

	stats     [len(components.Kinds)]telemetry.KindStats
	organisms []components.OrganismSnapshot // scratch
	bins      []telemetry.GeneBin           // scratch
}

// NewGameWithOptions builds the world and opens experiment output.
func NewGameWithOptions(cfg *config.Config, opts Options) (*Game, error) {
	if opts.StepsPerUpdate < 1 {
		opts.StepsPerUpdate = 1
	}

	w, err := NewWorld(cfg)
	if err != nil {
		return nil, err
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("opening output: %w", err)
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, fmt.Errorf("saving config: %w", err)
	}

	g := &Game{
		cfg:       cfg,
		opts:      opts,
		world:     w,
		collector: telemetry.NewCollector(cfg.Telemetry.Window),
		genes:     telemetry.NewGeneHistogram(cfg.Telemetry.GeneBins),
		output:    output,
		perf:      telemetry.NewPerfCollector(60),
	}

	// Tick 0 holds the initial drop
	if err := g.record(); err != nil {
		output.Close()
		return nil, err
	}
	return g, nil
}

// Update advances the world by up to StepsPerUpdate ticks and records
// telemetry after each. It stops early once both kinds are extinct.
func (g *Game) Update() error {
	for i := 0; i < g.opts.StepsPerUpdate && !g.Done(); i++ {
		g.perf.StartTick()
		g.perf.StartPhase(telemetry.PhaseStep)
		g.world.Step()
		err := g.record()
		g.perf.EndTick()
		if err != nil {
			return err
		}
	}
	return nil
}

// record collects stats for the current tick, writes any due output and
// logs on schedule.
func (g *Game) record() error {
	tick := g.world.Time()
	t := g.cfg.Telemetry

	g.perf.StartPhase(telemetry.PhaseStats)
	g.organisms = g.organisms[:0]
	g.bins = g.bins[:0]
	genesDue := due(tick, t.GenesEvery)
	for _, kind := range components.Kinds {
		start := len(g.organisms)
		g.organisms = g.world.AppendOrganisms(g.organisms, kind)
		alive := g.organisms[start:]

		g.stats[kind] = g.collector.Observe(tick, kind, alive, g.world.Casualties(kind))
		if genesDue {
			g.bins = g.genes.Observe(g.bins, tick, kind, alive, g.world.rules[kind].spawn.EnergyMax)
		}
	}

	g.perf.StartPhase(telemetry.PhaseOutput)
	for _, s := range g.stats {
		if err := g.output.WriteStats(s); err != nil {
			return err
		}
	}
	if err := g.output.WriteGenes(g.bins); err != nil {
		return err
	}
	if due(tick, t.WorldEvery) {
		if err := g.output.WriteWorld(tick, g.organisms); err != nil {
			return err
		}
	}

	if g.opts.LogStats && due(tick, t.LogEvery) {
		telemetry.LogStats(g.stats[components.KindFood], g.stats[components.KindBug])
		g.perf.Stats().LogStats()
	}
	return nil
}

func due(tick int32, every int) bool {
	return every > 0 && int(tick)%every == 0
}

// DrawFrame runs draw, charges its duration to the render phase and marks
// the frame for FPS tracking.
func (g *Game) DrawFrame(draw func()) {
	start := time.Now()
	draw()
	g.perf.RecordRender(time.Since(start))
	g.perf.RecordFrame()
}

// Tick returns the number of completed ticks.
func (g *Game) Tick() int32 {
	return g.world.Time()
}

// World returns the simulated world.
func (g *Game) World() *World {
	return g.world
}

// Stats returns the latest aggregates of a kind.
func (g *Game) Stats(kind components.Kind) telemetry.KindStats {
	return g.stats[kind]
}

// Perf returns the timing summary of recent updates.
func (g *Game) Perf() telemetry.PerfStats {
	return g.perf.Stats()
}

// Done reports whether both kinds are extinct.
func (g *Game) Done() bool {
	return g.world.Extinct()
}

// Unload flushes and closes experiment output.
func (g *Game) Unload() error {
	slog.Info("simulation finished",
		"tick", g.world.Time(),
		"food", g.world.Population(components.KindFood),
		"bugs", g.world.Population(components.KindBug),
	)
	return g.output.Close()
}
