package components

// Kind identifies which of the two organism variants an entity is.
type Kind uint8

const (
	KindFood Kind = iota
	KindBug
)

// Kinds lists every kind, indexed by Kind.
var Kinds = [...]Kind{KindFood, KindBug}

// Occupancy codes summed into grid cells. The sum of both stays distinct
// from either code alone.
const (
	CodeEmpty uint8 = 0
	CodeFood  uint8 = 1
	CodeBug   uint8 = 2
	CodeBoth        = CodeFood + CodeBug
)

// String returns the kind name used in logs and CSV output.
func (k Kind) String() string {
	switch k {
	case KindFood:
		return "food"
	case KindBug:
		return "bug"
	default:
		return "unknown"
	}
}

// Code returns the occupancy code for the kind.
func (k Kind) Code() uint8 {
	if k == KindBug {
		return CodeBug
	}
	return CodeFood
}

// ParseKind converts a kind name back to a Kind.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "food":
		return KindFood, true
	case "bug":
		return KindBug, true
	}
	return 0, false
}

// Organism bundles identity and kind.
type Organism struct {
	ID   uint32
	Kind Kind
}
