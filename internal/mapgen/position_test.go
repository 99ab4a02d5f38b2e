package mapgen

import "testing"

func TestShiftDirectionOffset(t *testing.T) {
	tests := []struct {
		dir    ShiftDirection
		dx, dy int
	}{
		{ShiftUp, 0, -1},
		{ShiftRight, 1, 0},
		{ShiftDown, 0, 1},
		{ShiftLeft, -1, 0},
	}

	for _, tc := range tests {
		dx, dy := tc.dir.Offset()
		if dx != tc.dx || dy != tc.dy {
			t.Errorf("%s.Offset() = (%d, %d), want (%d, %d)", tc.dir, dx, dy, tc.dx, tc.dy)
		}
	}
}

func TestShifted(t *testing.T) {
	p := Position{X: 5, Y: 5}

	tests := []struct {
		dir  ShiftDirection
		want Position
	}{
		{ShiftUp, Position{X: 5, Y: 4}},
		{ShiftRight, Position{X: 6, Y: 5}},
		{ShiftDown, Position{X: 5, Y: 6}},
		{ShiftLeft, Position{X: 4, Y: 5}},
	}

	for _, tc := range tests {
		if got := p.Shifted(tc.dir); got != tc.want {
			t.Errorf("Shifted(%s) = %v, want %v", tc.dir, got, tc.want)
		}
	}
}

func TestDistances(t *testing.T) {
	a := Position{X: 0, Y: 0}
	b := Position{X: 3, Y: 4}

	if got := a.DistanceSquared(b); got != 25 {
		t.Errorf("DistanceSquared = %d, want 25", got)
	}
	if got := a.Distance(b); got != 5.0 {
		t.Errorf("Distance = %v, want 5.0", got)
	}
	if got := a.ChebyshevDistance(b); got != 4 {
		t.Errorf("ChebyshevDistance = %d, want 4", got)
	}
	if got := b.DistanceSquared(a); got != 25 {
		t.Errorf("DistanceSquared should be symmetric, got %d", got)
	}
}

func TestRatedShifts(t *testing.T) {
	tests := []struct {
		name string
		pos  Position
		goal Position
		want [4]ShiftDirection
	}{
		{
			// moving right is best, up/down tie and keep their base order
			name: "goal east",
			pos:  Position{X: 10, Y: 10},
			goal: Position{X: 20, Y: 10},
			want: [4]ShiftDirection{ShiftRight, ShiftUp, ShiftDown, ShiftLeft},
		},
		{
			name: "goal south",
			pos:  Position{X: 10, Y: 10},
			goal: Position{X: 10, Y: 20},
			want: [4]ShiftDirection{ShiftDown, ShiftRight, ShiftLeft, ShiftUp},
		},
		{
			name: "goal northwest",
			pos:  Position{X: 10, Y: 10},
			goal: Position{X: 0, Y: 0},
			want: [4]ShiftDirection{ShiftUp, ShiftLeft, ShiftRight, ShiftDown},
		},
		{
			// all four shifts are equally bad: base order is preserved
			name: "goal is the position",
			pos:  Position{X: 10, Y: 10},
			goal: Position{X: 10, Y: 10},
			want: [4]ShiftDirection{ShiftUp, ShiftRight, ShiftDown, ShiftLeft},
		},
	}

	for _, tc := range tests {
		if got := tc.pos.RatedShifts(tc.goal); got != tc.want {
			t.Errorf("%s: RatedShifts = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestRatedShiftsImprovementOrder(t *testing.T) {
	pos := Position{X: 50, Y: 50}
	goal := Position{X: 90, Y: 20}

	rated := pos.RatedShifts(goal)
	for i := 1; i < len(rated); i++ {
		prev := pos.Shifted(rated[i-1]).DistanceSquared(goal)
		cur := pos.Shifted(rated[i]).DistanceSquared(goal)
		if prev > cur {
			t.Errorf("rank %d (%s) is better than rank %d (%s)", i, rated[i], i-1, rated[i-1])
		}
	}
}
