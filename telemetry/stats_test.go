package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/bugsoup/components"
)

func TestQuantile(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{5, 4, 3, 2, 1}, 0.5, 3.0},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1},
		{"p90", []float64{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}, 0.9, 9},
		{"p clamped", []float64{1, 2}, 1.5, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Quantile(tt.values, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Quantile(%v, %v) = %v, want %v", tt.values, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeEnergyStats(t *testing.T) {
	values := []float64{100, 90, 80, 70, 60, 50, 40, 30, 20, 10}
	total, p10, p50, p90 := ComputeEnergyStats(values)

	if total != 550 {
		t.Errorf("total = %v, want 550", total)
	}
	if p10 != 10 || p50 != 50 || p90 != 90 {
		t.Errorf("percentiles = %v/%v/%v, want 10/50/90", p10, p50, p90)
	}
	if values[0] != 100 {
		t.Error("input slice was reordered")
	}
}

func TestComputeEnergyStatsEmpty(t *testing.T) {
	total, p10, p50, p90 := ComputeEnergyStats(nil)
	if total != 0 || p10 != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty slice should return all zeros")
	}
}

func TestMeanTaste(t *testing.T) {
	tests := []struct {
		name   string
		tastes []float64
		want   float64
	}{
		{"empty", nil, 0},
		{"single", []float64{120}, 120},
		{"across zero", []float64{350, 10}, 0},
		{"near top", []float64{340, 350}, 345},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MeanTaste(tt.tastes)
			d := math.Abs(got - tt.want)
			if d > 180 {
				d = 360 - d
			}
			if d > 1e-6 {
				t.Errorf("MeanTaste(%v) = %v, want %v", tt.tastes, got, tt.want)
			}
			if got < 0 || got >= 360 {
				t.Errorf("MeanTaste(%v) = %v outside [0, 360)", tt.tastes, got)
			}
		})
	}
}

func TestKindStatsLogValue(t *testing.T) {
	s := KindStats{Kind: components.KindBug, Time: 7, Population: 3}
	v := s.LogValue()
	attrs := v.Group()
	if len(attrs) == 0 || attrs[0].Key != "kind" || attrs[0].Value.String() != "bug" {
		t.Errorf("unexpected log group %v", attrs)
	}
}
