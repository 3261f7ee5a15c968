package game

import (
	"fmt"
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/bugsoup/components"
	"github.com/pthm-cable/bugsoup/config"
)

// DropFood places up to n food organisms with the food spawn defaults on
// randomly chosen spawnable cells. It returns how many were placed; an
// exhausted spawn pool stops the drop early.
func (w *World) DropFood(n int) int {
	return w.drop(components.KindFood, n, w.rules[components.KindFood].spawn)
}

// DropBug places up to n bugs with the bug spawn defaults.
func (w *World) DropBug(n int) int {
	return w.drop(components.KindBug, n, w.rules[components.KindBug].spawn)
}

// DropWith places up to n organisms of a kind using explicit spawn values.
func (w *World) DropWith(kind components.Kind, n int, spawn config.SpawnConfig) int {
	return w.drop(kind, n, spawn)
}

func (w *World) drop(kind components.Kind, n int, spawn config.SpawnConfig) int {
	placed := 0
	for placed < n {
		pos, ok := w.availability.Pop(w.rng)
		if !ok {
			slog.Debug("spawn pool exhausted",
				"kind", kind.String(),
				"tick", w.time,
				"requested", n,
				"placed", placed,
			)
			break
		}
		// Spawnable cells are free of food but may already hold a bug.
		if w.grid.Occupied(pos, kind) {
			continue
		}
		energy := components.Energy{Initial: spawn.Energy, Max: spawn.EnergyMax}
		energy.Set(spawn.Energy)
		genes := components.Genes{ReproductionThreshold: spawn.ReproductionThreshold, Taste: spawn.Taste}
		if _, err := w.spawnAt(pos, kind, energy, genes); err != nil {
			continue
		}
		w.registries[kind].counters.Dropped++
		placed++
	}
	return placed
}

// spawnAt creates an organism and marks its cell. The grid is checked first
// so a rejected placement leaves no trace. Organisms created during a tick
// wait in births until the commit phase.
func (w *World) spawnAt(pos components.Position, kind components.Kind, energy components.Energy, genes components.Genes) (ecs.Entity, error) {
	if err := w.grid.Add(pos, kind); err != nil {
		return ecs.Entity{}, fmt.Errorf("spawning %s: %w", kind, err)
	}

	id := w.nextID
	w.nextID++

	life := components.Life{BirthTick: w.time}
	org := components.Organism{ID: id, Kind: kind}
	e := w.organisms.NewEntity(&pos, &energy, &genes, &life, &org)

	if kind == components.KindFood {
		w.cellFood[w.cellIndex(pos)] = e
	}

	reg := w.registries[kind]
	if w.inTick {
		reg.births = append(reg.births, e)
	} else {
		reg.alive = append(reg.alive, e)
	}
	return e, nil
}

// kill clears an organism from the grid and records it as a casualty. The
// registry transfer happens at commit.
func (w *World) kill(e ecs.Entity) {
	if _, done := w.dying[e]; done {
		return
	}
	pos, energy, genes, life, org := w.organisms.Get(e)

	if err := w.grid.Remove(*pos, org.Kind); err != nil {
		slog.Error("grid out of sync on death", "id", org.ID, "kind", org.Kind.String(), "error", err)
	}
	if org.Kind == components.KindFood {
		w.cellFood[w.cellIndex(*pos)] = ecs.Entity{}
	}

	w.dying[e] = struct{}{}
	reg := w.registries[org.Kind]
	reg.casualties = append(reg.casualties, snapshotOf(pos, energy, genes, life, org))
}

// reseedEndangered drops organisms for any kind whose population fell below
// its endangered threshold. Bugs are given the current food taste average so
// they can feed on the flora that survived.
func (w *World) reseedEndangered() {
	every := int32(w.cfg.World.EndangeredTime)
	if every <= 0 || w.time%every != 0 {
		return
	}

	for _, kind := range components.Kinds {
		rules := w.rules[kind]
		alive := w.Population(kind)
		if alive >= rules.endangeredThreshold {
			continue
		}

		spawn := rules.spawn
		if kind == components.KindBug {
			spawn.Taste = w.availability.FoodTasteAverage()
		}
		placed := w.DropWith(kind, rules.endangeredThreshold-alive, spawn)

		slog.Info("endangered reseed",
			"kind", kind.String(),
			"tick", w.time,
			"population_before", alive,
			"placed", placed,
			"taste", spawn.Taste,
		)
	}
}
