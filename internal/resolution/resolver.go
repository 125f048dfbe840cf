// Package resolution connects the meta-game to the authority that applies and
// stores single sub-board moves.
package resolution

import (
	"context"
	"errors"

	"github.com/rocketscienceinc/ultimate-tictactoe/internal/entity"
)

var ErrMoveRejected = errors.New("move rejected by resolution service")

// RejectedError carries the human readable reason of a remote rejection.
type RejectedError struct {
	Reason string
}

func (that *RejectedError) Error() string {
	return ErrMoveRejected.Error() + ": " + that.Reason
}

func (that *RejectedError) Is(target error) bool {
	return target == ErrMoveRejected
}

// SubBoardHandle identifies one sub-board owned by the resolution service.
type SubBoardHandle struct {
	ID   string
	Grid entity.Grid
}

// MoveOutcome is the authoritative state of a sub-board after a move.
type MoveOutcome struct {
	Grid   entity.Grid
	Winner entity.Mark
	IsDraw bool
}

// Resolver is the move resolution collaborator. Callers must not retry ApplyMove
// blindly: a retried move could land on a board whose state has moved on.
type Resolver interface {
	CreateSubBoard(ctx context.Context, startingMark entity.Mark) (SubBoardHandle, error)
	ApplyMove(ctx context.Context, handle SubBoardHandle, cell int, mark entity.Mark) (MoveOutcome, error)
	DeleteSubBoard(ctx context.Context, handle SubBoardHandle) error
}

func outcomeFromBoard(board *entity.Board) MoveOutcome {
	return MoveOutcome{
		Grid:   board.Grid,
		Winner: board.Winner,
		IsDraw: board.IsDraw,
	}
}
