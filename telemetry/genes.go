package telemetry

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/bugsoup/components"
)

// Gene names used in genes.csv.
const (
	GeneReproductionThreshold = "reproduction_threshold"
	GeneTaste                 = "taste"
)

// GeneBin is one histogram bar of a gene distribution.
type GeneBin struct {
	Time    int32           `csv:"time"`
	Kind    components.Kind `csv:"kind"`
	Gene    string          `csv:"gene"`
	BinLow  float64         `csv:"bin_low"`
	BinHigh float64         `csv:"bin_high"`
	Count   float64         `csv:"count"`
}

// GeneHistogram bins the heritable traits of a population.
type GeneHistogram struct {
	bins     int
	values   []float64
	dividers []float64
	counts   []float64
}

// NewGeneHistogram creates a histogram with the given number of bins per gene.
func NewGeneHistogram(bins int) *GeneHistogram {
	if bins < 1 {
		bins = 1
	}
	return &GeneHistogram{
		bins:     bins,
		dividers: make([]float64, bins+1),
		counts:   make([]float64, bins),
	}
}

// Observe appends the threshold and taste histograms of organisms to dst.
// Thresholds are binned over [0, energyMax], tastes over [0, 360).
func (h *GeneHistogram) Observe(dst []GeneBin, tick int32, kind components.Kind, organisms []components.OrganismSnapshot, energyMax float64) []GeneBin {
	h.values = h.values[:0]
	for _, o := range organisms {
		h.values = append(h.values, o.ReproductionThreshold)
	}
	dst = h.appendBins(dst, tick, kind, GeneReproductionThreshold, energyMax)

	h.values = h.values[:0]
	for _, o := range organisms {
		h.values = append(h.values, o.Taste)
	}
	return h.appendBins(dst, tick, kind, GeneTaste, 360)
}

func (h *GeneHistogram) appendBins(dst []GeneBin, tick int32, kind components.Kind, gene string, upper float64) []GeneBin {
	slices.Sort(h.values)
	if n := len(h.values); n > 0 && h.values[n-1] >= upper {
		// Histogram needs every value strictly below the last divider
		upper = math.Nextafter(h.values[n-1], math.Inf(1))
	}
	floats.Span(h.dividers, 0, upper)

	clear(h.counts)
	if len(h.values) > 0 {
		stat.Histogram(h.counts, h.dividers, h.values, nil)
	}

	for i, c := range h.counts {
		dst = append(dst, GeneBin{
			Time:    tick,
			Kind:    kind,
			Gene:    gene,
			BinLow:  h.dividers[i],
			BinHigh: h.dividers[i+1],
			Count:   c,
		})
	}
	return dst
}
