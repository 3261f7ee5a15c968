package renderer

import (
	"fmt"
	"image/color"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/bugsoup/components"
	"github.com/pthm-cable/bugsoup/config"
	"github.com/pthm-cable/bugsoup/game"
)

const (
	panelHeight  = 40
	maxSpeed     = 50 // updates per frame
	outlineRatio = 1.5
)

// Window is the raylib viewer: food as squares, bugs as circles, with a
// control panel to pause, single-step and change speed.
type Window struct {
	cfg *config.Config

	paused   bool
	stepOnce bool
	speed    float32 // updates per frame

	organisms []components.OrganismSnapshot
}

// NewWindow creates a viewer for the given configuration. The window opens
// in Run.
func NewWindow(cfg *config.Config) *Window {
	return &Window{cfg: cfg, speed: 1}
}

// Run opens the window and drives g until the window closes, maxTicks is
// reached (0 = unlimited) or an update fails. The view stays open after
// extinction.
func (w *Window) Run(g *game.Game, maxTicks int) error {
	rl.InitWindow(int32(w.cfg.Screen.Width), int32(w.cfg.Screen.Height), "Bug Soup")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(w.cfg.Screen.TargetFPS))

	for !rl.WindowShouldClose() {
		w.handleInput()

		if !w.paused || w.stepOnce {
			n := int(w.speed)
			if w.paused {
				n = 1
			}
			for i := 0; i < n; i++ {
				if err := g.Update(); err != nil {
					return err
				}
			}
			w.stepOnce = false
		}

		g.DrawFrame(func() { w.draw(g) })

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			break
		}
	}
	return nil
}

func (w *Window) handleInput() {
	if rl.IsKeyPressed(rl.KeySpace) {
		w.paused = !w.paused
	}
	if rl.IsKeyPressed(rl.KeyRight) && w.paused {
		w.stepOnce = true
	}
}

func (w *Window) draw(g *game.Game) {
	rl.BeginDrawing()
	defer rl.EndDrawing()
	rl.ClearBackground(rl.RayWhite)

	world := g.World()
	cols, rows := world.Size()
	screenW := float32(rl.GetScreenWidth())
	screenH := float32(rl.GetScreenHeight()) - panelHeight
	cell := min(screenW/float32(cols), screenH/float32(rows))

	// Grid y grows upward
	toScreen := func(x, y int) (float32, float32) {
		return float32(x) * cell, panelHeight + float32(rows-1-y)*cell
	}

	rl.DrawRectangleLinesEx(rl.NewRectangle(0, panelHeight, float32(cols)*cell, float32(rows)*cell), 1, rl.LightGray)

	evolveFood := w.cfg.Food.EvolveTaste
	w.organisms = world.AppendOrganisms(w.organisms[:0], components.KindFood)
	for _, o := range w.organisms {
		x, y := toScreen(o.X, o.Y)
		rl.DrawRectangleRec(rl.NewRectangle(x, y, cell, cell), rlColor(FoodColor(o.Taste, o.Energy, evolveFood)))
	}

	evolveBug := w.cfg.Bug.EvolveTaste
	w.organisms = world.AppendOrganisms(w.organisms[:0], components.KindBug)
	for _, o := range w.organisms {
		x, y := toScreen(o.X, o.Y)
		center := rl.NewVector2(x+cell/2, y+cell/2)
		r := float32(BugSize(o.Energy)) * cell / 2
		if evolveBug {
			rl.DrawCircleV(center, r, rl.Black)
			r /= outlineRatio
		}
		rl.DrawCircleV(center, r, rlColor(BugColor(o.Taste, evolveBug)))
	}

	w.drawPanel(g)
}

func (w *Window) drawPanel(g *game.Game) {
	label := "Pause"
	if w.paused {
		label = "Run"
	}
	if gui.Button(rl.NewRectangle(8, 8, 64, 24), label) {
		w.paused = !w.paused
	}
	if gui.Button(rl.NewRectangle(80, 8, 64, 24), "Step") {
		w.paused = true
		w.stepOnce = true
	}
	w.speed = gui.SliderBar(rl.NewRectangle(200, 8, 160, 24), "Speed", fmt.Sprintf("%dx", int(w.speed)), w.speed, 1, maxSpeed)

	world := g.World()
	status := fmt.Sprintf("t=%d  food=%d  bugs=%d",
		g.Tick(),
		world.Population(components.KindFood),
		world.Population(components.KindBug),
	)
	if g.Done() {
		status += "  extinct"
	}
	rl.DrawText(status, 400, 12, 18, rl.DarkGray)
}

func rlColor(c color.RGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}
