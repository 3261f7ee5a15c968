package game

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/bugsoup/components"
	"github.com/pthm-cable/bugsoup/config"
	"github.com/pthm-cable/bugsoup/systems"
)

// Step advances the world by one tick.
//
// Organisms are processed in registry order from a copy of the start-of-tick
// alive lists, bugs first. Grid changes apply immediately so later organisms
// see earlier moves; registry changes (deaths, births) wait for the commit
// phase so removals never disturb the iteration.
func (w *World) Step() {
	w.time++
	w.beginTick()

	w.inTick = true
	for _, kind := range [...]components.Kind{components.KindBug, components.KindFood} {
		w.order = append(w.order[:0], w.registries[kind].alive...)
		for _, e := range w.order {
			if _, dead := w.dying[e]; dead {
				continue
			}
			w.update(e, kind)
		}
	}
	w.inTick = false

	w.commit()
	w.availability.Recompute(w.grid, w.foodTastes())

	w.reseedEndangered()
	if n := w.cfg.World.Settings.FoodDropRate; n > 0 {
		w.DropFood(n)
	}
	w.finishCounters()
}

func (w *World) beginTick() {
	for _, reg := range w.registries {
		reg.casualties = nil
		reg.counters = components.TickCounters{Tick: w.time}
	}
}

// update runs one organism's turn: age, move, feed, metabolism, death check
// and reproduction, in that order.
func (w *World) update(e ecs.Entity, kind components.Kind) {
	rules := &w.rules[kind]
	pos, energy, _, life, _ := w.organisms.Get(e)
	life.Lifetime++

	if kind == components.KindBug {
		// A bug standing on food stays to eat.
		if rules.move != nil && !w.grid.Has(*pos, components.KindFood) {
			*pos, _ = systems.Step(w.rng, w.grid, *pos, kind, rules.move, w.directions)
		}
		if w.grid.Has(*pos, components.KindFood) {
			w.feed(e)
		}
	}

	rules.metabolize(energy)
	if systems.Starved(*energy, rules.minEnergy) {
		w.kill(e)
		return
	}

	if life.Mature(rules.maturityAge) && energy.Value >= w.genesOf(e).ReproductionThreshold {
		w.reproduce(e, kind)
	}
}

func (w *World) genesOf(e ecs.Entity) components.Genes {
	_, _, genes, _, _ := w.organisms.Get(e)
	return *genes
}

// feed lets the bug e eat from the food sharing its cell.
func (w *World) feed(e ecs.Entity) {
	pos, energy, genes, _, _ := w.organisms.Get(e)
	food := w.cellFood[w.cellIndex(*pos)]
	if food == (ecs.Entity{}) {
		return
	}
	_, foodEnergy, foodGenes, _, _ := w.organisms.Get(food)

	res := systems.Feed(energy, foodEnergy, *genes, *foodGenes, w.feedParams())
	if res.Killed {
		w.registries[components.KindFood].counters.Eaten++
		w.kill(food)
	}
}

// reproduce creates one offspring next to e. The offspring takes the
// parent's birth energy and ceiling and inherits mutated genes.
func (w *World) reproduce(e ecs.Entity, kind components.Kind) {
	rules := &w.rules[kind]
	reg := w.registries[kind]
	pos, energy, genes, _, _ := w.organisms.Get(e)

	w.directions = systems.AllowedDirections(w.directions[:0], w.grid, *pos, kind)
	if len(w.directions) == 0 {
		reg.counters.FailedBirths++
		if w.cfg.Reproduction.FailurePolicy == config.FailurePay {
			systems.PayReproduction(energy, rules.reproductionCost)
		}
		return
	}
	slot := pos.Add(systems.RandomWalk(w.rng, w.directions))

	systems.PayReproduction(energy, rules.reproductionCost)
	childGenes := systems.Inherit(w.rng, *genes, rules.evolution, energy.Max)
	childEnergy := components.Energy{Value: energy.Initial, Initial: energy.Initial, Max: energy.Max}

	// spawnAt may grow component storage; parent pointers are stale after this.
	if _, err := w.spawnAt(slot, kind, childEnergy, childGenes); err != nil {
		slog.Error("offspring placement rejected", "kind", kind.String(), "tick", w.time, "error", err)
		return
	}
	reg.counters.Births++
}

// commit moves this tick's casualties into the dead registry, removes their
// entities and appends this tick's births to the alive lists.
func (w *World) commit() {
	for _, kind := range components.Kinds {
		reg := w.registries[kind]
		before := len(reg.alive)

		kept := reg.alive[:0]
		for _, e := range append(reg.alive, reg.births...) {
			if _, dead := w.dying[e]; dead {
				w.world.RemoveEntity(e)
				continue
			}
			kept = append(kept, e)
		}
		reg.alive = kept
		reg.births = reg.births[:0]
		reg.dead = append(reg.dead, reg.casualties)
		reg.counters.Deaths = len(reg.casualties)

		switch {
		case len(reg.alive) > 0:
			reg.extinct = false
		case before > 0 && !reg.extinct:
			reg.extinct = true
			slog.Info("extinction", "kind", kind.String(), "tick", w.time)
		}
	}
	clear(w.dying)
}

func (w *World) finishCounters() {
	for _, kind := range components.Kinds {
		reg := w.registries[kind]
		reg.counters.Population = len(reg.alive)
		var total float64
		for _, e := range reg.alive {
			_, energy, _, _, _ := w.organisms.Get(e)
			total += energy.Value
		}
		reg.counters.Energy = total
	}
}
