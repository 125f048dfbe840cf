package tictactoe

import "github.com/rocketscienceinc/ultimate-tictactoe/internal/entity"

// WinCombos are checked in this order; the first full line decides.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Winner returns the mark occupying a whole line, or entity.MarkNone.
func Winner(grid entity.Grid) entity.Mark {
	for _, combo := range WinCombos {
		a, b, c := grid[combo[0]], grid[combo[1]], grid[combo[2]]
		if a != entity.MarkNone && a == b && b == c {
			return a
		}
	}

	return entity.MarkNone
}

// SubBoardOutcome derives the outcome of one sub-board from its cells.
func SubBoardOutcome(grid entity.Grid) entity.SubBoardOutcome {
	if winner := Winner(grid); winner != entity.MarkNone {
		return entity.WonBy(winner)
	}

	if grid.IsFull() {
		return entity.Drawn()
	}

	return entity.Undecided()
}

// OverallOutcome applies the same rule to the meta-grid of sub-board outcomes.
// A drawn sub-board blocks lines through it without counting for either mark.
func OverallOutcome(outcomes [entity.CellCount]entity.SubBoardOutcome) entity.GameOutcome {
	var meta entity.Grid
	decided := 0

	for i, outcome := range outcomes {
		meta[i] = outcome.LineMark()
		if outcome.IsDecided() {
			decided++
		}
	}

	if winner := Winner(meta); winner != entity.MarkNone {
		return entity.GameOutcome{Status: entity.StatusWon, Winner: winner}
	}

	if decided == entity.CellCount {
		return entity.GameOutcome{Status: entity.StatusDrawn}
	}

	return entity.InProgress()
}

// NextActiveBoard sends the opponent to the sub-board matching the cell just played,
// unless that sub-board is already decided.
func NextActiveBoard(outcomes [entity.CellCount]entity.SubBoardOutcome, cell int) int {
	if !entity.ValidIndex(cell) || outcomes[cell].IsDecided() {
		return entity.AnyBoard
	}

	return cell
}
