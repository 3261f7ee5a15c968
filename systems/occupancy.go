package systems

import (
	"errors"
	"fmt"

	"github.com/pthm-cable/bugsoup/components"
)

var (
	// ErrOutOfBounds is returned when a position lies outside the grid.
	ErrOutOfBounds = errors.New("position out of bounds")
	// ErrCellOccupied is returned when a placement would break same-kind exclusion.
	ErrCellOccupied = errors.New("cell occupied")
	// ErrNotPresent is returned when removing a kind the cell does not hold.
	ErrNotPresent = errors.New("kind not present in cell")
)

// OccupancyGrid stores, per cell, the sum of the occupancy codes of the
// organisms located there. A cell holds at most one organism of each kind.
type OccupancyGrid struct {
	cols  int
	rows  int
	cells []uint8 // row-major, index y*cols+x
}

// NewOccupancyGrid creates an empty grid with the given dimensions.
func NewOccupancyGrid(cols, rows int) *OccupancyGrid {
	return &OccupancyGrid{
		cols:  cols,
		rows:  rows,
		cells: make([]uint8, cols*rows),
	}
}

// Size returns the grid dimensions.
func (g *OccupancyGrid) Size() (cols, rows int) {
	return g.cols, g.rows
}

// InBounds reports whether p lies on the grid.
func (g *OccupancyGrid) InBounds(p components.Position) bool {
	return p.X >= 0 && p.X < g.cols && p.Y >= 0 && p.Y < g.rows
}

// At returns the occupancy code at p, or CodeEmpty when out of bounds.
func (g *OccupancyGrid) At(p components.Position) uint8 {
	if !g.InBounds(p) {
		return components.CodeEmpty
	}
	return g.cells[p.Y*g.cols+p.X]
}

// Has reports whether the cell at p holds an organism of the given kind.
func (g *OccupancyGrid) Has(p components.Position, kind components.Kind) bool {
	return g.At(p)&kind.Code() != 0
}

// Occupied reports whether an organism of the given kind may not be placed
// at p: the cell is out of bounds, already holds that kind, or holds both kinds.
func (g *OccupancyGrid) Occupied(p components.Position, kind components.Kind) bool {
	if !g.InBounds(p) {
		return true
	}
	c := g.cells[p.Y*g.cols+p.X]
	return c == kind.Code() || c == components.CodeBoth
}

// Add marks an organism of the given kind at p.
func (g *OccupancyGrid) Add(p components.Position, kind components.Kind) error {
	if !g.InBounds(p) {
		return fmt.Errorf("add %s at %v: %w", kind, p, ErrOutOfBounds)
	}
	if g.Occupied(p, kind) {
		return fmt.Errorf("add %s at %v: %w", kind, p, ErrCellOccupied)
	}
	g.cells[p.Y*g.cols+p.X] += kind.Code()
	return nil
}

// Remove clears an organism of the given kind from p.
func (g *OccupancyGrid) Remove(p components.Position, kind components.Kind) error {
	if !g.InBounds(p) {
		return fmt.Errorf("remove %s at %v: %w", kind, p, ErrOutOfBounds)
	}
	if !g.Has(p, kind) {
		return fmt.Errorf("remove %s at %v: %w", kind, p, ErrNotPresent)
	}
	g.cells[p.Y*g.cols+p.X] -= kind.Code()
	return nil
}

// Move relocates an organism of the given kind from one cell to another.
// Both cells are validated before either is changed.
func (g *OccupancyGrid) Move(from, to components.Position, kind components.Kind) error {
	if !g.Has(from, kind) {
		return fmt.Errorf("move %s from %v: %w", kind, from, ErrNotPresent)
	}
	if !g.InBounds(to) {
		return fmt.Errorf("move %s to %v: %w", kind, to, ErrOutOfBounds)
	}
	if g.Occupied(to, kind) {
		return fmt.Errorf("move %s to %v: %w", kind, to, ErrCellOccupied)
	}
	g.cells[from.Y*g.cols+from.X] -= kind.Code()
	g.cells[to.Y*g.cols+to.X] += kind.Code()
	return nil
}

// Count returns how many cells hold the given kind.
func (g *OccupancyGrid) Count(kind components.Kind) int {
	n := 0
	for _, c := range g.cells {
		if c&kind.Code() != 0 {
			n++
		}
	}
	return n
}
