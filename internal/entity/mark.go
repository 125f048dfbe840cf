package entity

import "fmt"

// Mark is a player's symbol. The zero value marks an empty cell.
type Mark string

const (
	MarkNone Mark = ""
	MarkX    Mark = "X"
	MarkO    Mark = "O"
)

// CellCount is the number of cells in a sub-board and of sub-boards in the meta-grid.
const CellCount = 9

// Grid is a 3x3 board stored row-major.
type Grid [CellCount]Mark

func (that Mark) IsPlayer() bool {
	return that == MarkX || that == MarkO
}

// Opponent returns the other player's mark.
func (that Mark) Opponent() Mark {
	switch that {
	case MarkX:
		return MarkO
	case MarkO:
		return MarkX
	default:
		return MarkNone
	}
}

// ParseMark accepts "X", "O" and, when allowEmpty is set, the empty string.
func ParseMark(s string, allowEmpty bool) (Mark, error) {
	switch m := Mark(s); {
	case m.IsPlayer():
		return m, nil
	case m == MarkNone && allowEmpty:
		return MarkNone, nil
	default:
		return MarkNone, fmt.Errorf("unknown mark %q", s)
	}
}

func ValidIndex(i int) bool {
	return i >= 0 && i < CellCount
}

// IsFull reports whether every cell holds a mark.
func (that Grid) IsFull() bool {
	for _, cell := range that {
		if cell == MarkNone {
			return false
		}
	}

	return true
}
