package mapgen

import "fmt"

// BlockType is the closed set of cell types a generated map contains.
type BlockType uint8

const (
	BlockHookable BlockType = iota // solid terrain, the map's default fill
	BlockEmpty                     // carved, walkable space
	BlockFreeze                    // hazard buffer between empty and solid
	BlockSpawn                     // player spawn line inside the start room
	BlockStart                     // start trigger ring around the spawn room
	BlockFinish                    // finish trigger ring around the end room
)

// String returns the string representation of a BlockType.
func (b BlockType) String() string {
	switch b {
	case BlockHookable:
		return "hookable"
	case BlockEmpty:
		return "empty"
	case BlockFreeze:
		return "freeze"
	case BlockSpawn:
		return "spawn"
	case BlockStart:
		return "start"
	case BlockFinish:
		return "finish"
	default:
		return "unknown"
	}
}

// Rune returns the single-character form used by map artifacts.
func (b BlockType) Rune() rune {
	switch b {
	case BlockHookable:
		return '#'
	case BlockEmpty:
		return '.'
	case BlockFreeze:
		return 'x'
	case BlockSpawn:
		return 'S'
	case BlockStart:
		return '>'
	case BlockFinish:
		return '<'
	default:
		return '?'
	}
}

// BlockFromRune is the inverse of Rune.
func BlockFromRune(r rune) (BlockType, error) {
	switch r {
	case '#':
		return BlockHookable, nil
	case '.':
		return BlockEmpty, nil
	case 'x':
		return BlockFreeze, nil
	case 'S':
		return BlockSpawn, nil
	case '>':
		return BlockStart, nil
	case '<':
		return BlockFinish, nil
	default:
		return BlockHookable, fmt.Errorf("mapgen: unknown block rune %q", r)
	}
}
