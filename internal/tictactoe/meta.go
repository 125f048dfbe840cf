package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/ultimate-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/entity"
)

// CheckMove - verifies the game is running and the targeted sub-board may be played.
func CheckMove(state entity.MetaGameState, board int) error {
	if state.Overall.IsTerminal() {
		return apperror.ErrGameOver
	}

	if !entity.ValidIndex(board) {
		return fmt.Errorf("%w: sub-board %d out of range", apperror.ErrIllegalBoard, board)
	}

	if !state.IsFree() && board != state.ActiveBoard {
		return fmt.Errorf("%w: must play on sub-board %d", apperror.ErrIllegalBoard, state.ActiveBoard)
	}

	if state.SubOutcomes[board].IsDecided() {
		return fmt.Errorf("%w: sub-board %d is already %s", apperror.ErrIllegalBoard, board, state.SubOutcomes[board].Status)
	}

	return nil
}

// ApplyMove - returns the state following an accepted move whose sub-board now has outcome.
// The sub-board outcome is committed before the next active board is derived.
func ApplyMove(state entity.MetaGameState, board, cell int, outcome entity.SubBoardOutcome) entity.MetaGameState {
	next := state

	if !next.SubOutcomes[board].IsDecided() {
		next.SubOutcomes[board] = outcome
	}

	if !next.Overall.IsTerminal() {
		next.Overall = OverallOutcome(next.SubOutcomes)
	}

	next.LastCellPlayed = cell
	next.ActiveBoard = NextActiveBoard(next.SubOutcomes, cell)
	next.Turn = state.Turn.Opponent()
	next.Moves = state.Moves + 1

	return next
}
