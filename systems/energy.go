package systems

import "github.com/pthm-cable/bugsoup/components"

// Respire applies a bug's metabolic cost. Energy clamps at zero.
func Respire(energy *components.Energy, rate float64) float64 {
	return -energy.Add(-rate)
}

// Grow adds a food's growth for the tick. Energy clamps at its ceiling.
func Grow(energy *components.Energy, rate float64) float64 {
	return energy.Add(rate)
}

// Starved reports whether energy has fallen to or below the kind's minimum.
func Starved(energy components.Energy, minEnergy float64) bool {
	return energy.Value <= minEnergy
}

// PayReproduction charges the reproduction cost and then restores the
// parent to its birth energy. It returns the energy the parent gave up.
func PayReproduction(energy *components.Energy, cost float64) float64 {
	before := energy.Value
	energy.Add(-cost)
	energy.Set(energy.Initial)
	return before - energy.Value
}
