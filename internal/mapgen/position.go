package mapgen

import (
	"fmt"
	"math"
	"sort"
)

// ShiftDirection is one of the four cardinal moves the walker can take.
type ShiftDirection int

const (
	ShiftUp ShiftDirection = iota
	ShiftRight
	ShiftDown
	ShiftLeft
)

// String returns the string representation of a ShiftDirection.
func (d ShiftDirection) String() string {
	switch d {
	case ShiftUp:
		return "up"
	case ShiftRight:
		return "right"
	case ShiftDown:
		return "down"
	case ShiftLeft:
		return "left"
	default:
		return "unknown"
	}
}

// Offset returns the grid delta for one step in this direction. Y grows
// downward.
func (d ShiftDirection) Offset() (dx, dy int) {
	switch d {
	case ShiftUp:
		return 0, -1
	case ShiftRight:
		return 1, 0
	case ShiftDown:
		return 0, 1
	case ShiftLeft:
		return -1, 0
	}
	return 0, 0
}

// AllShiftDirections returns the four cardinal directions in their stable
// tie-break order.
func AllShiftDirections() []ShiftDirection {
	return []ShiftDirection{ShiftUp, ShiftRight, ShiftDown, ShiftLeft}
}

// Position is an integer grid coordinate. Waypoints and the walker's live
// position share this type.
type Position struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
}

// String returns "(x,y)".
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Shifted returns the position one cell away in the given direction.
func (p Position) Shifted(d ShiftDirection) Position {
	dx, dy := d.Offset()
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// DistanceSquared returns the squared Euclidean distance to other.
func (p Position) DistanceSquared(other Position) int {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return dx*dx + dy*dy
}

// Distance returns the Euclidean distance to other.
func (p Position) Distance(other Position) float64 {
	return math.Sqrt(float64(p.DistanceSquared(other)))
}

// ChebyshevDistance returns the maximum of the axis distances to other, the
// metric of 8-neighborhoods.
func (p Position) ChebyshevDistance(other Position) int {
	dx := p.X - other.X
	if dx < 0 {
		dx = -dx
	}
	dy := p.Y - other.Y
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}

// RatedShifts returns the four directions ordered best to worst by the
// squared distance of the shifted position to the goal. Ties keep the
// stable Up, Right, Down, Left order so the ranking is deterministic.
func (p Position) RatedShifts(goal Position) [4]ShiftDirection {
	dirs := AllShiftDirections()
	sort.SliceStable(dirs, func(i, j int) bool {
		return p.Shifted(dirs[i]).DistanceSquared(goal) < p.Shifted(dirs[j]).DistanceSquared(goal)
	})

	var rated [4]ShiftDirection
	copy(rated[:], dirs)
	return rated
}
