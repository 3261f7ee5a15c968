package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/pthm-cable/bugsoup/config"
	"github.com/pthm-cable/bugsoup/game"
	"github.com/pthm-cable/bugsoup/renderer"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	tui := flag.Bool("tui", false, "Draw the world in the terminal instead of a window")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.String("seed", "", "World seed string (empty = use config)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per update call (higher = faster headless runs)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging). The terminal
	// viewer owns stdout, so its logs go to stderr.
	logOut := os.Stdout
	if *tui {
		logOut = os.Stderr
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(logOut, nil)))

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *seed != "" {
		cfg.World.Settings.Seed = *seed
	}

	opts := game.Options{
		LogStats:       *logStats,
		OutputDir:      *outputDir,
		StepsPerUpdate: *stepsPerUpdate,
	}

	g, err := game.NewGameWithOptions(cfg, opts)
	if err != nil {
		slog.Error("failed to create game", "error", err)
		os.Exit(1)
	}

	switch {
	case *headless:
		slog.Info("starting headless simulation",
			"seed", cfg.World.Settings.Seed,
			"max_ticks", *maxTicks,
			"steps_per_update", *stepsPerUpdate,
		)
		err = runHeadless(g, *maxTicks)
	case *tui:
		var term *renderer.Terminal
		term, err = renderer.NewTerminal(cfg)
		if err == nil {
			err = term.Run(g, *maxTicks, time.Second/time.Duration(max(cfg.Screen.TargetFPS, 1)))
			term.Close()
		}
	default:
		err = renderer.NewWindow(cfg).Run(g, *maxTicks)
	}

	if uerr := g.Unload(); err == nil {
		err = uerr
	}
	if err != nil {
		slog.Error("simulation failed", "error", err)
		os.Exit(1)
	}
}

func runHeadless(g *game.Game, maxTicks int) error {
	for !g.Done() {
		if err := g.Update(); err != nil {
			return err
		}
		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			return nil
		}
	}
	slog.Info("both kinds extinct", "tick", g.Tick())
	return nil
}
