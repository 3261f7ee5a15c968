package systems

import (
	"slices"
	"testing"

	"github.com/pthm-cable/bugsoup/components"
	"github.com/pthm-cable/bugsoup/config"
)

func TestFertileSquares_WholeGrid(t *testing.T) {
	s := config.SettingsConfig{Columns: 4, Rows: 3}
	got := FertileSquares(s, 1)

	if len(got) != 12 {
		t.Fatalf("expected 12 squares, got %d", len(got))
	}
	// x outer, y inner
	want := []components.Position{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2}, {X: 1, Y: 0}}
	if !slices.Equal(got[:4], want) {
		t.Errorf("order = %v, want prefix %v", got[:4], want)
	}
}

func TestFertileSquares_RectanglesDeduplicated(t *testing.T) {
	s := config.SettingsConfig{
		Columns: 10,
		Rows:    10,
		FertileLands: []config.Rect{
			{{0, 0}, {2, 2}}, // 9 cells
			{{2, 2}, {3, 3}}, // 4 cells, (2,2) shared
		},
	}
	got := FertileSquares(s, 1)

	if len(got) != 12 {
		t.Fatalf("expected 12 squares, got %d: %v", len(got), got)
	}
	seen := make(map[components.Position]bool)
	for _, p := range got {
		if seen[p] {
			t.Errorf("%v listed twice", p)
		}
		seen[p] = true
		if p.X > 3 || p.Y > 3 {
			t.Errorf("%v outside rectangles", p)
		}
	}
}

func TestFertileSquares_NoiseDeterministic(t *testing.T) {
	s := config.SettingsConfig{
		Columns:      32,
		Rows:         32,
		FertileNoise: &config.NoiseConfig{Scale: 0.1, Threshold: 0.5},
	}

	a := FertileSquares(s, 7)
	b := FertileSquares(s, 7)
	if !slices.Equal(a, b) {
		t.Error("same seed produced different masks")
	}
	if len(a) == 0 || len(a) == 32*32 {
		t.Errorf("expected a partial mask, got %d cells", len(a))
	}

	s.FertileNoise.Threshold = 0
	if got := FertileSquares(s, 7); len(got) != 32*32 {
		t.Errorf("threshold 0 should keep every cell, got %d", len(got))
	}
}
