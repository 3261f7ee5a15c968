package game

import (
	"github.com/pthm-cable/bugsoup/components"
	"github.com/pthm-cable/bugsoup/config"
	"github.com/pthm-cable/bugsoup/systems"
)

// kindRules is the behaviour table for one organism kind.
type kindRules struct {
	spawn               config.SpawnConfig
	evolution           config.EvolutionConfig
	minEnergy           float64
	maturityAge         int32
	reproductionCost    float64
	endangeredThreshold int

	// move is nil for stationary kinds.
	move systems.MovePolicy
	// metabolize applies the kind's per-tick energy change.
	metabolize func(e *components.Energy)
}

func newKindRules(cfg *config.Config) [2]kindRules {
	w := cfg.World
	var rules [2]kindRules

	growth := cfg.Food.GrowthRate
	rules[components.KindFood] = kindRules{
		spawn:               w.FoodSpawnVals,
		evolution:           cfg.Food.EvolutionConfig,
		minEnergy:           w.FoodMinEnergy,
		maturityAge:         int32(w.FoodMaturityAge),
		reproductionCost:    w.FoodReproductionCost,
		endangeredThreshold: w.FoodEndangeredThreshold,
		metabolize: func(e *components.Energy) {
			systems.Grow(e, growth)
		},
	}

	respiration := cfg.Bug.RespirationRate
	rules[components.KindBug] = kindRules{
		spawn:               w.BugSpawnVals,
		evolution:           cfg.Bug.EvolutionConfig,
		minEnergy:           w.BugMinEnergy,
		maturityAge:         int32(w.BugMaturityAge),
		reproductionCost:    w.BugReproductionCost,
		endangeredThreshold: w.BugEndangeredThreshold,
		move:                systems.RandomWalk,
		metabolize: func(e *components.Energy) {
			systems.Respire(e, respiration)
		},
	}

	return rules
}

func (w *World) feedParams() systems.FeedParams {
	return systems.FeedParams{
		MouthSize:     w.cfg.World.BugMouthSize,
		EatTax:        w.cfg.Bug.EatTax,
		MaxCompatible: w.cfg.World.MaxCompatibleTaste,
		FoodMinEnergy: w.cfg.World.FoodMinEnergy,
	}
}
