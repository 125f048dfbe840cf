package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/ultimate-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/entity"
)

// MakeTurn - applies one authoritative move to a single board record.
// On error the board is left untouched.
func MakeTurn(board *entity.Board, mark entity.Mark, cell int) error {
	if board.IsFinished() {
		return apperror.ErrBoardFinished
	}

	if err := validateMove(board, mark, cell); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	board.Grid[cell] = mark
	board.Moves++
	updateBoardStatus(board, mark)

	return nil
}

// validateMove - checks if the move is valid.
func validateMove(board *entity.Board, mark entity.Mark, cell int) error {
	if !entity.ValidIndex(cell) {
		return fmt.Errorf("%w: %d", apperror.ErrInvalidCell, cell)
	}

	if !mark.IsPlayer() {
		return fmt.Errorf("%w: unknown mark %q", apperror.ErrNotYourTurn, mark)
	}

	if board.Turn != entity.MarkNone && board.Turn != mark {
		return apperror.ErrNotYourTurn
	}

	if board.Grid[cell] != entity.MarkNone {
		return apperror.ErrCellOccupied
	}

	return nil
}

// updateBoardStatus - checks the board status after a move.
func updateBoardStatus(board *entity.Board, mark entity.Mark) {
	outcome := SubBoardOutcome(board.Grid)

	switch outcome.Status {
	case entity.StatusWon:
		board.Winner = outcome.Winner
		board.Turn = entity.MarkNone
	case entity.StatusDrawn:
		board.IsDraw = true
		board.Turn = entity.MarkNone
	default:
		if board.Turn != entity.MarkNone {
			board.Turn = mark.Opponent()
		}
	}
}
