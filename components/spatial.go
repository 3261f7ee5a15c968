package components

// Position is a grid cell coordinate. X indexes columns, Y indexes rows.
type Position struct {
	X, Y int
}

// Add returns the position shifted by d.
func (p Position) Add(d Direction) Position {
	dx, dy := d.Delta()
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Direction is one of the four cardinal moves.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists the cardinal moves in the order neighbours are checked.
var Directions = [...]Direction{Up, Down, Left, Right}

// Delta returns the coordinate offset for the direction.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, 1
	case Down:
		return 0, -1
	case Left:
		return -1, 0
	default:
		return 1, 0
	}
}

func (d Direction) String() string {
	return [...]string{"up", "down", "left", "right"}[d]
}
