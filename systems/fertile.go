package systems

import (
	"github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/bugsoup/components"
	"github.com/pthm-cable/bugsoup/config"
)

// FertileSquares lists the cells eligible for spawning, in column-major
// order (x outer, y inner) within each source. Overlapping rectangles
// contribute a cell once.
//
// With no rectangles and no noise mask the whole grid is fertile. A noise
// mask keeps the cells whose normalized simplex noise reaches the threshold.
func FertileSquares(s config.SettingsConfig, seed int64) []components.Position {
	switch {
	case s.FertileNoise != nil:
		return noiseSquares(s.Columns, s.Rows, *s.FertileNoise, seed)
	case len(s.FertileLands) > 0:
		return rectSquares(s.Columns, s.Rows, s.FertileLands)
	}

	squares := make([]components.Position, 0, s.Columns*s.Rows)
	for x := 0; x < s.Columns; x++ {
		for y := 0; y < s.Rows; y++ {
			squares = append(squares, components.Position{X: x, Y: y})
		}
	}
	return squares
}

func rectSquares(cols, rows int, rects []config.Rect) []components.Position {
	seen := make([]bool, cols*rows)
	var squares []components.Position
	for _, r := range rects {
		minX, minY, maxX, maxY := r.Bounds()
		for x := minX; x <= maxX; x++ {
			for y := minY; y <= maxY; y++ {
				if seen[y*cols+x] {
					continue
				}
				seen[y*cols+x] = true
				squares = append(squares, components.Position{X: x, Y: y})
			}
		}
	}
	return squares
}

func noiseSquares(cols, rows int, n config.NoiseConfig, seed int64) []components.Position {
	noise := opensimplex.NewNormalized(seed)
	var squares []components.Position
	for x := 0; x < cols; x++ {
		for y := 0; y < rows; y++ {
			if noise.Eval2(float64(x)*n.Scale, float64(y)*n.Scale) >= n.Threshold {
				squares = append(squares, components.Position{X: x, Y: y})
			}
		}
	}
	return squares
}
