package systems

import (
	"testing"

	"github.com/pthm-cable/bugsoup/components"
)

// ---------- Respire / Grow ----------

func TestRespire_ClampsAtZero(t *testing.T) {
	e := components.Energy{Value: 5, Initial: 30, Max: 100}

	lost := Respire(&e, 10)
	if lost != 5 {
		t.Errorf("expected 5 lost, got %v", lost)
	}
	if e.Value != 0 {
		t.Errorf("expected energy 0, got %v", e.Value)
	}
	if !Starved(e, 0) {
		t.Error("zero energy should be starved at minimum 0")
	}
}

func TestGrow_ClampsAtCeiling(t *testing.T) {
	e := components.Energy{Value: 95, Initial: 20, Max: 100}

	gained := Grow(&e, 10)
	if gained != 5 {
		t.Errorf("expected 5 gained, got %v", gained)
	}
	if e.Value != 100 {
		t.Errorf("expected energy 100, got %v", e.Value)
	}
}

func TestStarved_AtOrBelowMinimum(t *testing.T) {
	tests := []struct {
		value, min float64
		want       bool
	}{
		{10, 10, true},
		{9, 10, true},
		{10.5, 10, false},
		{0, 0, true},
		{1, 0, false},
	}
	for _, tt := range tests {
		e := components.Energy{Value: tt.value, Max: 100}
		if got := Starved(e, tt.min); got != tt.want {
			t.Errorf("Starved(%v, %v) = %v, want %v", tt.value, tt.min, got, tt.want)
		}
	}
}

// ---------- PayReproduction ----------

func TestPayReproduction_ResetsToBirthEnergy(t *testing.T) {
	tests := []struct {
		name      string
		value     float64
		cost      float64
		wantGiven float64
	}{
		{"rich parent", 100, 4, 70},
		{"cost larger than energy", 3, 6, -27},
		{"free reproduction", 50, 0, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := components.Energy{Value: tt.value, Initial: 30, Max: 100}
			given := PayReproduction(&e, tt.cost)
			if e.Value != 30 {
				t.Errorf("expected energy reset to 30, got %v", e.Value)
			}
			if given != tt.wantGiven {
				t.Errorf("expected %v given up, got %v", tt.wantGiven, given)
			}
		})
	}
}
