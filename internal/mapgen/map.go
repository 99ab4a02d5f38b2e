package mapgen

// Map is the generated level: a fixed-size grid of block types plus the
// spawn coordinate. One generation run owns its Map exclusively.
type Map struct {
	Width  int
	Height int
	Spawn  Position

	grid [][]BlockType // row-major: grid[y][x]
}

// NewMap creates a width x height map filled with the given block type.
func NewMap(width, height int, fill BlockType, spawn Position) *Map {
	grid := make([][]BlockType, height)
	for y := range grid {
		row := make([]BlockType, width)
		for x := range row {
			row[x] = fill
		}
		grid[y] = row
	}

	return &Map{
		Width:  width,
		Height: height,
		Spawn:  spawn,
		grid:   grid,
	}
}

// InBounds reports whether p lies inside the grid.
func (m *Map) InBounds(p Position) bool {
	return p.X >= 0 && p.X < m.Width && p.Y >= 0 && p.Y < m.Height
}

// At returns the block type at p. The position must be in bounds; an
// out-of-bounds read is a programming error and panics.
func (m *Map) At(p Position) BlockType {
	return m.grid[p.Y][p.X]
}

// Set writes the block type at p. The position must be in bounds; an
// out-of-bounds write is a programming error and panics.
func (m *Map) Set(p Position, t BlockType) {
	m.grid[p.Y][p.X] = t
}

// Cells returns the map as a flat row-major byte slice, one byte per cell.
// Used by artifacts and the store; the slice is a copy.
func (m *Map) Cells() []byte {
	cells := make([]byte, 0, m.Width*m.Height)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			cells = append(cells, byte(m.grid[y][x]))
		}
	}
	return cells
}

// clampRect clips a rectangle to the grid and reports whether anything of
// it remains.
func (m *Map) clampRect(tl, br Position) (Position, Position, bool) {
	if tl.X > br.X || tl.Y > br.Y {
		return tl, br, false
	}
	if br.X < 0 || br.Y < 0 || tl.X >= m.Width || tl.Y >= m.Height {
		return tl, br, false
	}
	if tl.X < 0 {
		tl.X = 0
	}
	if tl.Y < 0 {
		tl.Y = 0
	}
	if br.X >= m.Width {
		br.X = m.Width - 1
	}
	if br.Y >= m.Height {
		br.Y = m.Height - 1
	}
	return tl, br, true
}

// setCell writes t at (x,y) honoring the overwrite policy: with
// overwrite=false only cells still holding the default solid fill are
// replaced, so previously placed markers survive.
func (m *Map) setCell(x, y int, t BlockType, overwrite bool) {
	if !overwrite && m.grid[y][x] != BlockHookable {
		return
	}
	m.grid[y][x] = t
}

// SetArea fills the axis-aligned rectangle [tl, br] (inclusive) with t.
// The rectangle is clamped at the grid edge, never wrapped; a rectangle
// fully outside the grid is a no-op.
func (m *Map) SetArea(tl, br Position, t BlockType, overwrite bool) {
	tl, br, ok := m.clampRect(tl, br)
	if !ok {
		return
	}

	for y := tl.Y; y <= br.Y; y++ {
		for x := tl.X; x <= br.X; x++ {
			m.setCell(x, y, t, overwrite)
		}
	}
}

// SetAreaBorder fills only the 1-cell-thick ring at the perimeter of the
// rectangle [tl, br], with the same clamping and overwrite rules as
// SetArea. Ring segments that fall outside the grid are dropped.
func (m *Map) SetAreaBorder(tl, br Position, t BlockType, overwrite bool) {
	if tl.X > br.X || tl.Y > br.Y {
		return
	}

	top := Position{X: tl.X, Y: tl.Y}
	bottom := Position{X: tl.X, Y: br.Y}
	m.SetArea(top, Position{X: br.X, Y: tl.Y}, t, overwrite)
	if br.Y != tl.Y {
		m.SetArea(bottom, br, t, overwrite)
	}
	if br.Y > tl.Y+1 {
		m.SetArea(Position{X: tl.X, Y: tl.Y + 1}, Position{X: tl.X, Y: br.Y - 1}, t, overwrite)
		if br.X != tl.X {
			m.SetArea(Position{X: br.X, Y: tl.Y + 1}, Position{X: br.X, Y: br.Y - 1}, t, overwrite)
		}
	}
}

// ApplyKernel stamps the kernel centered at pos, writing t to every member
// cell that the carving policy allows. The stamp is clipped at the grid
// edge. Policy: carving Empty claims Hookable and Freeze cells; carving
// any other type claims only Hookable cells, so the outer kernel never
// downgrades space the inner kernel carved.
func (m *Map) ApplyKernel(pos Position, k Kernel, t BlockType) {
	half := k.Size / 2

	for oy := 0; oy < k.Size; oy++ {
		for ox := 0; ox < k.Size; ox++ {
			if !k.Contains(ox, oy) {
				continue
			}

			x := pos.X + ox - half
			y := pos.Y + oy - half
			if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
				continue
			}

			current := m.grid[y][x]
			switch {
			case current == BlockHookable:
				m.grid[y][x] = t
			case current == BlockFreeze && t == BlockEmpty:
				m.grid[y][x] = t
			}
		}
	}
}

// CountBlocks returns the number of cells holding t.
func (m *Map) CountBlocks(t BlockType) int {
	count := 0
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.grid[y][x] == t {
				count++
			}
		}
	}
	return count
}
