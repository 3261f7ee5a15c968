// Package components defines ECS components for the simulation.
package components

// Energy tracks an organism's vitality.
// Value stays within [0, Max]; every mutation goes through Add or Set.
type Energy struct {
	Value   float64
	Initial float64 // energy at birth, restored after reproducing
	Max     float64
}

// Set assigns v clamped to [0, Max].
func (e *Energy) Set(v float64) {
	switch {
	case v < 0:
		v = 0
	case v > e.Max:
		v = e.Max
	}
	e.Value = v
}

// Add shifts the energy by delta and returns the change actually applied.
func (e *Energy) Add(delta float64) float64 {
	before := e.Value
	e.Set(e.Value + delta)
	return e.Value - before
}

// Genes holds the heritable traits.
type Genes struct {
	ReproductionThreshold float64
	Taste                 float64 // hue in [0, 360)
}

// Life tracks age.
type Life struct {
	Lifetime  int32 // ticks survived
	BirthTick int32
}

// Mature reports whether the organism has lived at least maturityAge ticks.
func (l Life) Mature(maturityAge int32) bool {
	return l.Lifetime >= maturityAge
}
