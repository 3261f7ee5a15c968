package components

import "fmt"

// OrganismSnapshot is a read-only copy of one organism's state, taken at the
// end of a tick (or at the moment of death for casualties).
type OrganismSnapshot struct {
	Kind                  Kind    `csv:"kind"`
	X                     int     `csv:"x"`
	Y                     int     `csv:"y"`
	Energy                float64 `csv:"energy"`
	ReproductionThreshold float64 `csv:"reproduction_threshold"`
	Taste                 float64 `csv:"taste"`
	Lifetime              int32   `csv:"lifetime"`
	ID                    uint32  `csv:"id"`
}

// MarshalCSV writes the kind name.
func (k Kind) MarshalCSV() (string, error) {
	return k.String(), nil
}

// UnmarshalCSV parses a kind name.
func (k *Kind) UnmarshalCSV(s string) error {
	parsed, ok := ParseKind(s)
	if !ok {
		return fmt.Errorf("unknown kind %q", s)
	}
	*k = parsed
	return nil
}

// TickCounters are the raw per-kind event counts of one tick.
type TickCounters struct {
	Tick         int32
	Population   int     // alive at end of tick
	Births       int     // offspring created by reproduction
	Dropped      int     // organisms placed by spawning
	Deaths       int     // organisms moved to the dead registry
	Eaten        int     // food deaths caused by feeding
	FailedBirths int     // reproductions with no free slot
	Energy       float64 // total energy of the alive population
}
