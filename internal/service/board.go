package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/ultimate-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/entity"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/pkg"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/tictactoe"
)

const maxTurnAttempts = 5

// ErrMoveRejected wraps every rule violation reported by MakeTurn.
var ErrMoveRejected = errors.New("move rejected")

// BoardService is the authoritative owner of single sub-boards.
type BoardService interface {
	CreateBoard(ctx context.Context, startingMark entity.Mark) (*entity.Board, error)
	GetBoard(ctx context.Context, id string) (*entity.Board, error)
	History(ctx context.Context, id string) ([]*entity.Board, error)
	MakeTurn(ctx context.Context, id string, cell int, mark entity.Mark) (*entity.Board, error)
	DeleteBoard(ctx context.Context, id string) error
}

type boardRepo interface {
	CreateOrUpdate(ctx context.Context, board *entity.Board) error
	Update(ctx context.Context, board *entity.Board, prevMoves int) error
	GetByID(ctx context.Context, id string) (*entity.Board, error)
	History(ctx context.Context, id string) ([]*entity.Board, error)
	DeleteByID(ctx context.Context, id string) error
}

type boardService struct {
	logger    *slog.Logger
	boardRepo boardRepo
}

func NewBoardService(logger *slog.Logger, boardRepo boardRepo) BoardService {
	return &boardService{
		logger:    logger.With("component", "board-service"),
		boardRepo: boardRepo,
	}
}

func (that *boardService) CreateBoard(ctx context.Context, startingMark entity.Mark) (*entity.Board, error) {
	mark, err := entity.ParseMark(string(startingMark), true)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMoveRejected, err)
	}

	board := entity.NewBoard(pkg.GenerateBoardID(), mark)
	if err := that.boardRepo.CreateOrUpdate(ctx, board); err != nil {
		return nil, fmt.Errorf("failed to create board in storage: %w", err)
	}

	that.logger.Debug("board created", "boardID", board.ID, "startingMark", startingMark)

	return board, nil
}

func (that *boardService) GetBoard(ctx context.Context, id string) (*entity.Board, error) {
	board, err := that.boardRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve board from storage: %w", err)
	}

	return board, nil
}

func (that *boardService) History(ctx context.Context, id string) ([]*entity.Board, error) {
	history, err := that.boardRepo.History(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve board history from storage: %w", err)
	}

	return history, nil
}

// MakeTurn - applies one move. The board is stored only if no other move landed
// since it was read; otherwise the move is checked again against the newer board.
func (that *boardService) MakeTurn(ctx context.Context, id string, cell int, mark entity.Mark) (*entity.Board, error) {
	log := that.logger.With("method", "MakeTurn", "boardID", id)

	for attempt := 0; attempt < maxTurnAttempts; attempt++ {
		board, err := that.boardRepo.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to get board by id: %w", err)
		}

		prevMoves := board.Moves

		if err = tictactoe.MakeTurn(board, mark, cell); err != nil {
			log.Debug("move rejected", "cell", cell, "mark", mark, "error", err)
			return board, fmt.Errorf("%w: %w", ErrMoveRejected, err)
		}

		err = that.boardRepo.Update(ctx, board, prevMoves)
		if errors.Is(err, apperror.ErrBoardConflict) {
			log.Debug("board changed concurrently, retrying", "attempt", attempt)
			continue
		}

		if err != nil {
			return nil, fmt.Errorf("failed to update board: %w", err)
		}

		return board, nil
	}

	return nil, fmt.Errorf("failed to update board: %w", apperror.ErrBoardConflict)
}

func (that *boardService) DeleteBoard(ctx context.Context, id string) error {
	if err := that.boardRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete board: %w", err)
	}

	return nil
}
