package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/bugsoup/components"
	"github.com/pthm-cable/bugsoup/config"
)

// Perturb adds a uniform delta in [-limit, +limit].
func Perturb(rng *rand.Rand, v, limit float64) float64 {
	if limit <= 0 {
		return v
	}
	return v + (rng.Float64()*2-1)*limit
}

// WrapTaste maps a taste onto [0, 360).
func WrapTaste(t float64) float64 {
	t = math.Mod(t, 360)
	if t < 0 {
		t += 360
	}
	if t >= 360 { // -1e-15 + 360 rounds to 360
		return 0
	}
	return t
}

// Inherit returns the offspring genes for a parent. Each trait is copied
// unchanged unless its evolution switch is on, in which case it is perturbed
// and brought back into its domain: thresholds clamp to [0, energyMax],
// taste wraps around the hue circle.
// Random draws happen in a fixed order (threshold, then taste) and only for
// enabled traits.
func Inherit(rng *rand.Rand, parent components.Genes, evo config.EvolutionConfig, energyMax float64) components.Genes {
	child := parent
	if evo.EvolveReproductionThreshold {
		child.ReproductionThreshold = clamp(Perturb(rng, parent.ReproductionThreshold, evo.ReproductionThresholdMutationLimit), 0, energyMax)
	}
	if evo.EvolveTaste {
		child.Taste = WrapTaste(Perturb(rng, parent.Taste, evo.TasteMutationLimit))
	}
	return child
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
