// Package game owns the simulation state and runs the per-tick algorithm.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/bugsoup/components"
	"github.com/pthm-cable/bugsoup/config"
	"github.com/pthm-cable/bugsoup/systems"
)

// registry tracks membership for one kind. Alive keeps insertion order;
// dead keeps one bucket of casualties per tick.
type registry struct {
	alive  []ecs.Entity
	births []ecs.Entity // created this tick, joined to alive at commit
	dead   [][]components.OrganismSnapshot

	casualties []components.OrganismSnapshot // this tick
	counters   components.TickCounters

	extinct bool // extinction logged, cleared once a commit leaves survivors
}

// World is the sole owner of the grid, registries and random stream.
// Organisms are ark entities; registries hold their handles.
type World struct {
	cfg *config.Config
	rng *rand.Rand

	world     *ecs.World
	organisms *ecs.Map5[
		components.Position,
		components.Energy,
		components.Genes,
		components.Life,
		components.Organism,
	]

	grid         *systems.OccupancyGrid
	cellFood     []ecs.Entity // food handle per cell, row-major
	availability *systems.AvailabilityTracker

	rules      [2]kindRules
	registries [2]*registry
	dying      map[ecs.Entity]struct{}

	time   int32
	nextID uint32
	inTick bool

	// Scratch buffers reused across ticks
	order      []ecs.Entity
	directions []components.Direction
	tastes     []float64
}

// NewWorld validates cfg and builds a seeded world with the initial food and
// bug populations dropped onto fertile land.
func NewWorld(cfg *config.Config) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("creating world: %w", err)
	}

	s := cfg.World.Settings
	seed := cfg.RNGSeed()
	world := ecs.NewWorld()

	w := &World{
		cfg:   cfg,
		rng:   rand.New(rand.NewSource(seed)),
		world: world,
		organisms: ecs.NewMap5[
			components.Position,
			components.Energy,
			components.Genes,
			components.Life,
			components.Organism,
		](world),
		grid:         systems.NewOccupancyGrid(s.Columns, s.Rows),
		cellFood:     make([]ecs.Entity, s.Columns*s.Rows),
		availability: systems.NewAvailabilityTracker(systems.FertileSquares(s, seed)),
		rules:        newKindRules(cfg),
		registries:   [2]*registry{{}, {}},
		dying:        make(map[ecs.Entity]struct{}),
		directions:   make([]components.Direction, 0, len(components.Directions)),
	}

	placedFood := w.DropFood(s.InitFood)
	placedBugs := w.DropBug(s.InitBugs)
	w.availability.Recompute(w.grid, w.foodTastes())

	slog.Info("world created",
		"seed", s.Seed,
		"rows", s.Rows,
		"columns", s.Columns,
		"fertile", len(w.availability.Fertile()),
		"food", placedFood,
		"bugs", placedBugs,
	)

	return w, nil
}

// Time returns the number of completed ticks.
func (w *World) Time() int32 {
	return w.time
}

// Size returns the grid dimensions.
func (w *World) Size() (cols, rows int) {
	return w.grid.Size()
}

// Config returns the configuration the world was built with.
func (w *World) Config() *config.Config {
	return w.cfg
}

// Population returns the number of alive organisms of a kind.
func (w *World) Population(kind components.Kind) int {
	return len(w.registries[kind].alive)
}

// Extinct reports whether both kinds have died out.
func (w *World) Extinct() bool {
	return w.Population(components.KindFood) == 0 && w.Population(components.KindBug) == 0
}

// FoodTasteAverage returns the circular mean taste of alive food as of the
// last availability update.
func (w *World) FoodTasteAverage() float64 {
	return w.availability.FoodTasteAverage()
}

// SpawnableCount returns how many cells remain available for spawning.
func (w *World) SpawnableCount() int {
	return len(w.availability.Spawnable())
}

func (w *World) cellIndex(p components.Position) int {
	cols, _ := w.grid.Size()
	return p.Y*cols + p.X
}

func (w *World) foodTastes() []float64 {
	w.tastes = w.tastes[:0]
	for _, e := range w.registries[components.KindFood].alive {
		_, _, genes, _, _ := w.organisms.Get(e)
		w.tastes = append(w.tastes, genes.Taste)
	}
	return w.tastes
}
