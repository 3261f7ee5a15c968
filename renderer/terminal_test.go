package renderer

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/bugsoup/components"
	"github.com/pthm-cable/bugsoup/config"
	"github.com/pthm-cable/bugsoup/game"
	"github.com/pthm-cable/bugsoup/telemetry"
)

func TestCellGlyph(t *testing.T) {
	tests := []struct {
		cell cellView
		want rune
		ok   bool
	}{
		{cellView{}, 0, false},
		{cellView{food: true}, glyphFood, true},
		{cellView{bug: true}, glyphBug, true},
		{cellView{food: true, bug: true}, glyphBoth, true},
	}
	for _, tt := range tests {
		got, ok := tt.cell.glyph()
		if got != tt.want || ok != tt.ok {
			t.Errorf("%+v.glyph() = %q, %v; want %q, %v", tt.cell, got, ok, tt.want, tt.ok)
		}
	}
}

func TestTerminalDrawsEveryOrganism(t *testing.T) {
	cfg := config.Default()
	cfg.World.Settings.Seed = "terminal"
	cfg.World.Settings.Columns = 8
	cfg.World.Settings.Rows = 6
	cfg.World.Settings.InitFood = 10
	cfg.World.Settings.InitBugs = 3

	g, err := game.NewGameWithOptions(cfg, game.Options{})
	if err != nil {
		t.Fatalf("NewGameWithOptions: %v", err)
	}
	defer g.Unload()

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	screen.SetSize(20, 10)
	term := newTerminal(cfg, screen)
	defer term.Close()

	term.draw(g)

	drawn := 0
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			r, _, _, _ := screen.GetContent(x, y)
			switch r {
			case glyphFood, glyphBoth:
				drawn++
			}
		}
	}
	if drawn != 10 {
		t.Errorf("drew %d food cells, want 10", drawn)
	}

	// Bottom grid row on screen is world row 0
	for _, o := range g.World().Organisms(components.KindFood) {
		r, _, _, _ := screen.GetContent(o.X, 5-o.Y)
		if r != glyphFood && r != glyphBoth {
			t.Errorf("food at (%d,%d) drawn as %q", o.X, o.Y, r)
		}
	}
}

func TestPollEventsReturnsAfterRunExits(t *testing.T) {
	cfg := config.Default()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	term := newTerminal(cfg, screen)
	defer term.Close()

	// Nobody reads events once the viewer loop has returned.
	events := make(chan tcell.Event)
	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		term.pollEvents(events, done)
		close(finished)
	}()

	close(done)
	if err := screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)); err != nil {
		t.Fatalf("PostEvent: %v", err)
	}

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("event goroutine still blocked after done was closed")
	}
}

func TestRunStopsAtMaxTicks(t *testing.T) {
	cfg := config.Default()
	cfg.World.Settings.Seed = "terminal-run"
	cfg.World.Settings.Columns = 8
	cfg.World.Settings.Rows = 6
	cfg.World.Settings.InitFood = 10
	cfg.World.Settings.InitBugs = 3

	g, err := game.NewGameWithOptions(cfg, game.Options{StepsPerUpdate: 1})
	if err != nil {
		t.Fatalf("NewGameWithOptions: %v", err)
	}
	defer g.Unload()

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	screen.SetSize(20, 10)
	term := newTerminal(cfg, screen)
	defer term.Close()

	if err := term.Run(g, 3, time.Millisecond); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if g.Tick() < 3 && !g.Done() {
		t.Errorf("tick = %d, want 3", g.Tick())
	}
	if pct := g.Perf().PhasePct[telemetry.PhaseRender]; pct <= 0 {
		t.Errorf("render share = %v, want > 0", pct)
	}
}
