package systems

import (
	"math"

	"github.com/pthm-cable/bugsoup/components"
)

// TasteDistance returns the angular distance between two tastes on the
// 360-degree hue circle, in [0, 180].
func TasteDistance(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 360)
	if d > 180 {
		d = 360 - d
	}
	return d
}

// Compatibility scales feeding by how close the bug's taste is to the food's.
// 1 = identical taste, 0 = distance of maxCompatible or more.
func Compatibility(bugTaste, foodTaste, maxCompatible float64) float64 {
	if maxCompatible <= 0 {
		return 0
	}
	c := 1 - TasteDistance(bugTaste, foodTaste)/maxCompatible
	if c < 0 {
		return 0
	}
	return c
}

// FeedResult describes one bite.
type FeedResult struct {
	Bitten float64 // energy removed from the food
	Gained float64 // energy actually added to the bug
	Killed bool    // food fell to or below its minimum energy
}

// FeedParams holds the constants of a bite.
type FeedParams struct {
	MouthSize     float64
	EatTax        float64
	MaxCompatible float64
	FoodMinEnergy float64
}

// Feed transfers energy from food to bug. The bite is bounded by the mouth
// size and the food's remaining energy; the bug's gain is scaled by taste
// compatibility, reduced by the eat tax and clamped to its ceiling.
func Feed(bug, food *components.Energy, bugGenes, foodGenes components.Genes, p FeedParams) FeedResult {
	bite := math.Min(p.MouthSize, food.Value)
	if bite <= 0 {
		return FeedResult{Killed: Starved(*food, p.FoodMinEnergy)}
	}
	food.Add(-bite)

	gain := bite*Compatibility(bugGenes.Taste, foodGenes.Taste, p.MaxCompatible) - p.EatTax
	if gain < 0 {
		gain = 0
	}
	return FeedResult{
		Bitten: bite,
		Gained: bug.Add(gain),
		Killed: Starved(*food, p.FoodMinEnergy),
	}
}
