package game

import "github.com/pthm-cable/bugsoup/components"

func snapshotOf(pos *components.Position, energy *components.Energy, genes *components.Genes, life *components.Life, org *components.Organism) components.OrganismSnapshot {
	return components.OrganismSnapshot{
		Kind:                  org.Kind,
		X:                     pos.X,
		Y:                     pos.Y,
		Energy:                energy.Value,
		ReproductionThreshold: genes.ReproductionThreshold,
		Taste:                 genes.Taste,
		Lifetime:              life.Lifetime,
		ID:                    org.ID,
	}
}

// Organisms returns a snapshot of every alive organism of a kind, in
// registry order.
func (w *World) Organisms(kind components.Kind) []components.OrganismSnapshot {
	return w.AppendOrganisms(nil, kind)
}

// AppendOrganisms appends the alive snapshots of a kind to dst.
func (w *World) AppendOrganisms(dst []components.OrganismSnapshot, kind components.Kind) []components.OrganismSnapshot {
	for _, e := range w.registries[kind].alive {
		dst = append(dst, snapshotOf(w.organisms.Get(e)))
	}
	return dst
}

// Casualties returns the organisms of a kind that died during the last tick.
func (w *World) Casualties(kind components.Kind) []components.OrganismSnapshot {
	return w.registries[kind].casualties
}

// Dead returns every casualty bucket of a kind, one per completed tick.
func (w *World) Dead(kind components.Kind) [][]components.OrganismSnapshot {
	return w.registries[kind].dead
}

// Counters returns the event counts of the last tick for a kind.
func (w *World) Counters(kind components.Kind) components.TickCounters {
	return w.registries[kind].counters
}
