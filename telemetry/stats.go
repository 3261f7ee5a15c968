package telemetry

import (
	"log/slog"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/bugsoup/components"
)

// KindStats holds the per-tick aggregates of one kind.
type KindStats struct {
	Kind components.Kind `csv:"-"`
	Time int32           `csv:"time"`

	Energy     float64 `csv:"energy"` // total energy of the alive population
	Population int     `csv:"population"`
	Deaths     int     `csv:"deaths"`

	// AverageDeaths and AverageLifespan roll over the collector window.
	// Column order is read positionally by plotting tools.
	AverageDeaths                float64 `csv:"average_deaths"`
	AverageAliveLifetime         float64 `csv:"average_alive_lifetime"`
	AverageLifespan              float64 `csv:"average_lifespan"`
	AverageReproductionThreshold float64 `csv:"average_reproduction_threshold"`
	AverageTaste                 float64 `csv:"average_taste"`

	// Energy distribution, logged only
	EnergyP10 float64 `csv:"-"`
	EnergyP50 float64 `csv:"-"`
	EnergyP90 float64 `csv:"-"`
}

// Quantile returns the empirical p-quantile of values, p in [0, 1].
// values need not be sorted. Returns 0 for an empty slice.
func Quantile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	return stat.Quantile(math.Max(0, math.Min(1, p)), stat.Empirical, sorted, nil)
}

// ComputeEnergyStats returns the total and the 10th, 50th and 90th
// percentiles of the energy values.
func ComputeEnergyStats(values []float64) (total, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	total = floats.Sum(sorted)
	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	return total, p10, p50, p90
}

// MeanTaste returns the circular mean of tastes in degrees, in [0, 360).
// Returns 0 for an empty slice.
func MeanTaste(tastes []float64) float64 {
	if len(tastes) == 0 {
		return 0
	}
	rad := make([]float64, len(tastes))
	for i, t := range tastes {
		rad[i] = t * math.Pi / 180
	}
	deg := math.Mod(stat.CircularMean(rad, nil)*180/math.Pi+360, 360)
	if deg >= 360 {
		return 0
	}
	return deg
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

// LogValue implements slog.LogValuer for structured logging.
func (s KindStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("kind", s.Kind.String()),
		slog.Int("time", int(s.Time)),
		slog.Int("population", s.Population),
		slog.Float64("energy", s.Energy),
		slog.Int("deaths", s.Deaths),
		slog.Float64("average_deaths", s.AverageDeaths),
		slog.Float64("average_alive_lifetime", s.AverageAliveLifetime),
		slog.Float64("average_lifespan", s.AverageLifespan),
		slog.Float64("average_reproduction_threshold", s.AverageReproductionThreshold),
		slog.Float64("average_taste", s.AverageTaste),
		slog.Float64("energy_p10", s.EnergyP10),
		slog.Float64("energy_p50", s.EnergyP50),
		slog.Float64("energy_p90", s.EnergyP90),
	)
}

// LogStats logs the food and bug aggregates of one tick on a single line.
func LogStats(food, bug KindStats) {
	slog.Info("stats",
		"time", food.Time,
		"food", food,
		"bug", bug,
	)
}
