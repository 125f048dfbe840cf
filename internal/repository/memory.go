package repository

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/ultimate-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/entity"
)

type memoryBoard struct {
	mu      sync.Mutex
	history map[string][]*entity.Board
}

// NewMemoryBoardRepository keeps boards in process memory.
func NewMemoryBoardRepository() BoardRepository {
	return &memoryBoard{
		history: make(map[string][]*entity.Board),
	}
}

func (that *memoryBoard) CreateOrUpdate(_ context.Context, board *entity.Board) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.history[board.ID] = append(that.history[board.ID], board.Clone())

	return nil
}

func (that *memoryBoard) Update(_ context.Context, board *entity.Board, prevMoves int) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	history, ok := that.history[board.ID]
	if !ok {
		return apperror.ErrBoardNotFound
	}

	if history[len(history)-1].Moves != prevMoves {
		return apperror.ErrBoardConflict
	}

	that.history[board.ID] = append(history, board.Clone())

	return nil
}

func (that *memoryBoard) GetByID(_ context.Context, id string) (*entity.Board, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	history, ok := that.history[id]
	if !ok {
		return nil, apperror.ErrBoardNotFound
	}

	return history[len(history)-1].Clone(), nil
}

func (that *memoryBoard) History(_ context.Context, id string) ([]*entity.Board, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	history, ok := that.history[id]
	if !ok {
		return nil, apperror.ErrBoardNotFound
	}

	out := make([]*entity.Board, 0, len(history))
	for _, board := range history {
		out = append(out, board.Clone())
	}

	return out, nil
}

func (that *memoryBoard) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.history[id]; !ok {
		return apperror.ErrBoardNotFound
	}

	delete(that.history, id)

	return nil
}
