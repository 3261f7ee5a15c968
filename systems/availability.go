package systems

import (
	"math"
	"math/rand"
	"slices"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/bugsoup/components"
)

// DefaultFoodTaste is the taste average reported before any food exists.
const DefaultFoodTaste = 180.0

// AvailabilityTracker holds the fertile cells and, once per tick, derives
// the subset not holding food. Spawns draw from that subset without
// replacement.
type AvailabilityTracker struct {
	fertile   []components.Position
	spawnable []components.Position
	tastes    []float64 // scratch, radians

	foodTasteAverage float64
}

// NewAvailabilityTracker creates a tracker over the given fertile cells.
// Every fertile cell starts spawnable.
func NewAvailabilityTracker(fertile []components.Position) *AvailabilityTracker {
	return &AvailabilityTracker{
		fertile:          fertile,
		spawnable:        slices.Clone(fertile),
		foodTasteAverage: DefaultFoodTaste,
	}
}

// Recompute rebuilds the spawnable set from the grid and updates the food
// taste average from the given tastes (one per alive food, in degrees).
// With no food the previous average is kept.
func (a *AvailabilityTracker) Recompute(grid *OccupancyGrid, foodTastes []float64) {
	a.spawnable = a.spawnable[:0]
	for _, p := range a.fertile {
		if !grid.Has(p, components.KindFood) {
			a.spawnable = append(a.spawnable, p)
		}
	}

	if len(foodTastes) == 0 {
		return
	}
	a.tastes = a.tastes[:0]
	for _, t := range foodTastes {
		a.tastes = append(a.tastes, t*math.Pi/180)
	}
	// Taste is a hue: average on the circle so 350 and 10 meet at 0, not 180.
	mean := stat.CircularMean(a.tastes, nil) * 180 / math.Pi
	a.foodTasteAverage = WrapTaste(mean)
}

// Pop removes and returns a uniformly chosen spawnable cell. It reports
// false when the set is exhausted.
func (a *AvailabilityTracker) Pop(rng *rand.Rand) (components.Position, bool) {
	if len(a.spawnable) == 0 {
		return components.Position{}, false
	}
	i := rng.Intn(len(a.spawnable))
	p := a.spawnable[i]
	a.spawnable = slices.Delete(a.spawnable, i, i+1)
	return p, true
}

// Spawnable returns the cells currently available for spawning.
// The slice is owned by the tracker.
func (a *AvailabilityTracker) Spawnable() []components.Position {
	return a.spawnable
}

// Fertile returns every fertile cell.
func (a *AvailabilityTracker) Fertile() []components.Position {
	return a.fertile
}

// FoodTasteAverage returns the circular mean taste of alive food.
func (a *AvailabilityTracker) FoodTasteAverage() float64 {
	return a.foodTasteAverage
}
