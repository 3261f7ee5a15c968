package renderer

import (
	"fmt"
	"image/color"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/bugsoup/components"
	"github.com/pthm-cable/bugsoup/config"
	"github.com/pthm-cable/bugsoup/game"
)

// Glyphs drawn per grid cell.
const (
	glyphFood = '■'
	glyphBug  = '●'
	glyphBoth = '◉'
)

// cellView is what one grid cell shows in the terminal.
type cellView struct {
	food, bug bool
	fg        color.RGBA
}

// Terminal is the tcell viewer: one character per grid cell, row 0 at the
// bottom, with a status line underneath.
type Terminal struct {
	cfg    *config.Config
	screen tcell.Screen
	paused bool

	cells     []cellView
	organisms []components.OrganismSnapshot
}

// NewTerminal initializes the terminal screen.
func NewTerminal(cfg *config.Config) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing screen: %w", err)
	}
	return newTerminal(cfg, screen), nil
}

func newTerminal(cfg *config.Config, screen tcell.Screen) *Terminal {
	screen.SetStyle(tcell.StyleDefault)
	screen.Clear()
	return &Terminal{cfg: cfg, screen: screen}
}

// Run drives g at one update per frame until q or Esc is pressed, maxTicks
// is reached (0 = unlimited) or an update fails. Space pauses.
func (t *Terminal) Run(g *game.Game, maxTicks int, frame time.Duration) error {
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go t.pollEvents(events, done)

	t.draw(g)
	for {
		select {
		case ev := <-events:
			if !t.handleEvent(ev) {
				return nil
			}
			t.draw(g)

		case <-ticker.C:
			if !t.paused {
				if err := g.Update(); err != nil {
					return err
				}
			}
			g.DrawFrame(func() { t.draw(g) })
			if maxTicks > 0 && int(g.Tick()) >= maxTicks {
				return nil
			}
		}
	}
}

// pollEvents forwards screen events until the screen is finalized or done
// is closed.
func (t *Terminal) pollEvents(events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := t.screen.PollEvent()
		if ev == nil { // screen finalized
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// handleEvent reports false when the viewer should quit.
func (t *Terminal) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == ' ':
			t.paused = !t.paused
		}
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return true
}

func (t *Terminal) draw(g *game.Game) {
	world := g.World()
	cols, rows := world.Size()

	if cap(t.cells) < cols*rows {
		t.cells = make([]cellView, cols*rows)
	}
	t.cells = t.cells[:cols*rows]
	clear(t.cells)

	// Bug colour wins on shared cells
	t.organisms = world.AppendOrganisms(t.organisms[:0], components.KindFood)
	for _, o := range t.organisms {
		c := &t.cells[o.Y*cols+o.X]
		c.food = true
		c.fg = FoodColor(o.Taste, o.Energy, t.cfg.Food.EvolveTaste)
	}
	t.organisms = world.AppendOrganisms(t.organisms[:0], components.KindBug)
	for _, o := range t.organisms {
		c := &t.cells[o.Y*cols+o.X]
		c.bug = true
		c.fg = BugColor(o.Taste, t.cfg.Bug.EvolveTaste)
	}

	t.screen.Clear()
	width, height := t.screen.Size()
	visibleRows := min(rows, height-1)
	for y := 0; y < visibleRows; y++ {
		sy := visibleRows - 1 - y
		for x := 0; x < min(cols, width); x++ {
			c := t.cells[y*cols+x]
			r, ok := c.glyph()
			if !ok {
				continue
			}
			style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.fg.R), int32(c.fg.G), int32(c.fg.B)))
			t.screen.SetContent(x, sy, r, nil, style)
		}
	}

	status := fmt.Sprintf("t=%d food=%d bugs=%d",
		g.Tick(),
		world.Population(components.KindFood),
		world.Population(components.KindBug),
	)
	switch {
	case g.Done():
		status += " extinct"
	case t.paused:
		status += " paused"
	}
	for i, r := range []rune(status) {
		if i >= width {
			break
		}
		t.screen.SetContent(i, visibleRows, r, nil, tcell.StyleDefault)
	}
	t.screen.Show()
}

func (c cellView) glyph() (rune, bool) {
	switch {
	case c.food && c.bug:
		return glyphBoth, true
	case c.bug:
		return glyphBug, true
	case c.food:
		return glyphFood, true
	}
	return 0, false
}

// Close restores the terminal.
func (t *Terminal) Close() {
	t.screen.Fini()
}
