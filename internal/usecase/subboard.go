package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/ultimate-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/entity"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/resolution"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/tictactoe"
)

// SubBoard caches the authoritative grid of one sub-board and derives its outcome.
// The cache is only ever replaced with what the resolver returned.
type SubBoard struct {
	resolver resolution.Resolver
	handle   resolution.SubBoardHandle
}

func NewSubBoard(resolver resolution.Resolver, handle resolution.SubBoardHandle) *SubBoard {
	return &SubBoard{
		resolver: resolver,
		handle:   handle,
	}
}

func (that *SubBoard) Handle() resolution.SubBoardHandle {
	return that.handle
}

func (that *SubBoard) Grid() entity.Grid {
	return that.handle.Grid
}

func (that *SubBoard) Outcome() entity.SubBoardOutcome {
	return tictactoe.SubBoardOutcome(that.handle.Grid)
}

// ApplyMove - resolves the move remotely and replaces the cached grid with the result.
func (that *SubBoard) ApplyMove(ctx context.Context, cell int, mark entity.Mark) (entity.Grid, error) {
	grid, err := that.resolve(ctx, cell, mark)
	if err != nil {
		return that.handle.Grid, err
	}

	that.replace(grid)

	return grid, nil
}

// check - local filter run before any remote call.
func (that *SubBoard) check(cell int) error {
	if !entity.ValidIndex(cell) {
		return fmt.Errorf("%w: cell %d out of range", apperror.ErrIllegalMove, cell)
	}

	if that.handle.Grid[cell] != entity.MarkNone {
		return fmt.Errorf("%w: cell %d is already occupied", apperror.ErrIllegalMove, cell)
	}

	return nil
}

// resolve - asks the resolver for the move without touching the cache.
func (that *SubBoard) resolve(ctx context.Context, cell int, mark entity.Mark) (entity.Grid, error) {
	if err := that.check(cell); err != nil {
		return entity.Grid{}, err
	}

	outcome, err := that.resolver.ApplyMove(ctx, that.handle, cell, mark)
	if err != nil {
		var rejected *resolution.RejectedError
		if errors.As(err, &rejected) {
			return entity.Grid{}, fmt.Errorf("%w: %s", apperror.ErrIllegalMove, rejected.Reason)
		}

		return entity.Grid{}, fmt.Errorf("%w: %w", apperror.ErrResolutionFailure, err)
	}

	return outcome.Grid, nil
}

func (that *SubBoard) replace(grid entity.Grid) {
	that.handle.Grid = grid
}
