package telemetry

import "github.com/pthm-cable/bugsoup/components"

// kindWindow keeps the last window ticks of deaths for one kind.
type kindWindow struct {
	deaths    []float64   // deaths per tick, ring
	lifespans [][]float64 // casualty lifetimes per tick, ring
	next      int
	filled    int
}

// Collector turns per-tick organism snapshots into KindStats. Death counts
// and lifespans are averaged over a rolling window of ticks.
type Collector struct {
	window int
	kinds  [len(components.Kinds)]*kindWindow

	// Scratch
	energies   []float64
	lifetimes  []float64
	thresholds []float64
	tastes     []float64
	spans      []float64
}

// NewCollector creates a collector averaging over window ticks.
func NewCollector(window int) *Collector {
	if window < 1 {
		window = 1
	}
	c := &Collector{window: window}
	for i := range c.kinds {
		c.kinds[i] = &kindWindow{
			deaths:    make([]float64, window),
			lifespans: make([][]float64, window),
		}
	}
	return c
}

// Window returns the number of ticks in the rolling window.
func (c *Collector) Window() int {
	return c.window
}

// Observe records one tick for a kind. alive is the population at the end
// of the tick, casualties are the organisms that died during it.
func (c *Collector) Observe(tick int32, kind components.Kind, alive, casualties []components.OrganismSnapshot) KindStats {
	kw := c.kinds[kind]

	// Overwrite the oldest slot
	kw.deaths[kw.next] = float64(len(casualties))
	spans := kw.lifespans[kw.next][:0]
	for _, o := range casualties {
		spans = append(spans, float64(o.Lifetime))
	}
	kw.lifespans[kw.next] = spans
	kw.next = (kw.next + 1) % c.window
	if kw.filled < c.window {
		kw.filled++
	}

	c.energies = c.energies[:0]
	c.lifetimes = c.lifetimes[:0]
	c.thresholds = c.thresholds[:0]
	c.tastes = c.tastes[:0]
	for _, o := range alive {
		c.energies = append(c.energies, o.Energy)
		c.lifetimes = append(c.lifetimes, float64(o.Lifetime))
		c.thresholds = append(c.thresholds, o.ReproductionThreshold)
		c.tastes = append(c.tastes, o.Taste)
	}

	c.spans = c.spans[:0]
	for i := 0; i < kw.filled; i++ {
		c.spans = append(c.spans, kw.lifespans[i]...)
	}

	total, p10, p50, p90 := ComputeEnergyStats(c.energies)

	return KindStats{
		Kind:       kind,
		Time:       tick,
		Energy:     total,
		Population: len(alive),
		Deaths:     len(casualties),

		AverageDeaths:                mean(kw.deaths[:kw.filled]),
		AverageAliveLifetime:         mean(c.lifetimes),
		AverageLifespan:              mean(c.spans),
		AverageReproductionThreshold: mean(c.thresholds),
		AverageTaste:                 MeanTaste(c.tastes),

		EnergyP10: p10,
		EnergyP50: p50,
		EnergyP90: p90,
	}
}
