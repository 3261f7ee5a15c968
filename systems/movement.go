package systems

import (
	"math/rand"

	"github.com/pthm-cable/bugsoup/components"
)

// AllowedDirections appends to dst every cardinal direction an organism of
// the given kind at pos may step into. Walls and same-kind cells are excluded.
func AllowedDirections(dst []components.Direction, grid *OccupancyGrid, pos components.Position, kind components.Kind) []components.Direction {
	for _, d := range components.Directions {
		if !grid.Occupied(pos.Add(d), kind) {
			dst = append(dst, d)
		}
	}
	return dst
}

// MovePolicy picks one of the allowed directions. It is only called with a
// non-empty slice.
type MovePolicy func(rng *rand.Rand, allowed []components.Direction) components.Direction

// RandomWalk chooses uniformly among the allowed directions.
func RandomWalk(rng *rand.Rand, allowed []components.Direction) components.Direction {
	return allowed[rng.Intn(len(allowed))]
}

// Step moves an organism one cell using policy. It reports the new position
// and whether a move happened; a boxed-in organism stays put.
func Step(rng *rand.Rand, grid *OccupancyGrid, pos components.Position, kind components.Kind, policy MovePolicy, scratch []components.Direction) (components.Position, bool) {
	allowed := AllowedDirections(scratch[:0], grid, pos, kind)
	if len(allowed) == 0 {
		return pos, false
	}
	next := pos.Add(policy(rng, allowed))
	if err := grid.Move(pos, next, kind); err != nil {
		return pos, false
	}
	return next, true
}
