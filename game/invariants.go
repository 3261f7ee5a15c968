package game

import (
	"fmt"

	"github.com/pthm-cable/bugsoup/components"
)

// Verify checks the structural invariants between the grid, the registries
// and the organism components. It returns the first violation found.
func (w *World) Verify() error {
	cols, rows := w.grid.Size()
	expected := make([]uint8, cols*rows)

	for _, kind := range components.Kinds {
		for _, e := range w.registries[kind].alive {
			if !w.world.Alive(e) {
				return fmt.Errorf("%s registry holds removed entity %v", kind, e)
			}
			pos, energy, _, _, org := w.organisms.Get(e)
			if org.Kind != kind {
				return fmt.Errorf("organism %d of kind %s in %s registry", org.ID, org.Kind, kind)
			}
			if !w.grid.InBounds(*pos) {
				return fmt.Errorf("%s %d out of bounds at %v", kind, org.ID, *pos)
			}
			if energy.Value < 0 || energy.Value > energy.Max {
				return fmt.Errorf("%s %d energy %g outside [0, %g]", kind, org.ID, energy.Value, energy.Max)
			}
			idx := w.cellIndex(*pos)
			if expected[idx]&kind.Code() != 0 {
				return fmt.Errorf("two %s organisms share %v", kind, *pos)
			}
			expected[idx] += kind.Code()
			if kind == components.KindFood && w.cellFood[idx] != e {
				return fmt.Errorf("food index out of sync at %v", *pos)
			}
		}
	}

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			p := components.Position{X: x, Y: y}
			if got, want := w.grid.At(p), expected[w.cellIndex(p)]; got != want {
				return fmt.Errorf("grid code %d at %v, organisms imply %d", got, p, want)
			}
		}
	}
	return nil
}
