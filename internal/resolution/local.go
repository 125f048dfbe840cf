package resolution

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/ultimate-tictactoe/internal/entity"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/service"
)

// Local resolves moves against an in-process board service.
type Local struct {
	boards service.BoardService
}

func NewLocal(boards service.BoardService) *Local {
	return &Local{boards: boards}
}

func (that *Local) CreateSubBoard(ctx context.Context, startingMark entity.Mark) (SubBoardHandle, error) {
	board, err := that.boards.CreateBoard(ctx, startingMark)
	if err != nil {
		return SubBoardHandle{}, fmt.Errorf("failed to create sub-board: %w", err)
	}

	return SubBoardHandle{ID: board.ID, Grid: board.Grid}, nil
}

func (that *Local) ApplyMove(ctx context.Context, handle SubBoardHandle, cell int, mark entity.Mark) (MoveOutcome, error) {
	board, err := that.boards.MakeTurn(ctx, handle.ID, cell, mark)
	if errors.Is(err, service.ErrMoveRejected) {
		return MoveOutcome{}, &RejectedError{Reason: err.Error()}
	}

	if err != nil {
		return MoveOutcome{}, fmt.Errorf("failed to apply move: %w", err)
	}

	return outcomeFromBoard(board), nil
}

func (that *Local) DeleteSubBoard(ctx context.Context, handle SubBoardHandle) error {
	if err := that.boards.DeleteBoard(ctx, handle.ID); err != nil {
		return fmt.Errorf("failed to delete sub-board: %w", err)
	}

	return nil
}
