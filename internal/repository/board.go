package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/ultimate-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/entity"
)

type BoardRepository interface {
	// CreateOrUpdate stores the board and appends it to the board's history.
	CreateOrUpdate(ctx context.Context, board *entity.Board) error
	// Update stores the board only if the stored one still has prevMoves moves,
	// otherwise it returns apperror.ErrBoardConflict.
	Update(ctx context.Context, board *entity.Board, prevMoves int) error
	GetByID(ctx context.Context, id string) (*entity.Board, error)
	History(ctx context.Context, id string) ([]*entity.Board, error)
	DeleteByID(ctx context.Context, id string) error
}

type dbBoard struct {
	client *redis.Client
}

func NewBoardRepository(client *redis.Client) BoardRepository {
	return &dbBoard{
		client: client,
	}
}

func boardKey(id string) string {
	return "board:" + id
}

func historyKey(id string) string {
	return "board:" + id + ":history"
}

func (that *dbBoard) CreateOrUpdate(ctx context.Context, board *entity.Board) error {
	boardJSON, err := json.Marshal(board)
	if err != nil {
		return fmt.Errorf("could not marshal board: %w", err)
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, boardKey(board.ID), boardJSON, 0)
		pipe.RPush(ctx, historyKey(board.ID), boardJSON)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set board: %w", err)
	}

	return nil
}

func (that *dbBoard) Update(ctx context.Context, board *entity.Board, prevMoves int) error {
	boardJSON, err := json.Marshal(board)
	if err != nil {
		return fmt.Errorf("could not marshal board: %w", err)
	}

	key := boardKey(board.ID)

	err = that.client.Watch(ctx, func(tx *redis.Tx) error {
		response, err := tx.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			return apperror.ErrBoardNotFound
		}

		if err != nil {
			return fmt.Errorf("failed to get board by id: %w", err)
		}

		var stored entity.Board
		if err = json.Unmarshal([]byte(response), &stored); err != nil {
			return fmt.Errorf("failed to unmarshal board: %w", err)
		}

		if stored.Moves != prevMoves {
			return apperror.ErrBoardConflict
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, boardJSON, 0)
			pipe.RPush(ctx, historyKey(board.ID), boardJSON)
			return nil
		})

		return err
	}, key)

	if errors.Is(err, redis.TxFailedErr) {
		return apperror.ErrBoardConflict
	}

	if err != nil {
		return fmt.Errorf("failed to update board: %w", err)
	}

	return nil
}

func (that *dbBoard) GetByID(ctx context.Context, id string) (*entity.Board, error) {
	response, err := that.client.Get(ctx, boardKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrBoardNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get board by id: %w", err)
	}

	var existingBoard entity.Board
	if err = json.Unmarshal([]byte(response), &existingBoard); err != nil {
		return nil, fmt.Errorf("failed to unmarshal board: %w", err)
	}

	return &existingBoard, nil
}

func (that *dbBoard) History(ctx context.Context, id string) ([]*entity.Board, error) {
	entries, err := that.client.LRange(ctx, historyKey(id), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get board history: %w", err)
	}

	if len(entries) == 0 {
		return nil, apperror.ErrBoardNotFound
	}

	history := make([]*entity.Board, 0, len(entries))
	for _, entry := range entries {
		var board entity.Board
		if err = json.Unmarshal([]byte(entry), &board); err != nil {
			return nil, fmt.Errorf("failed to unmarshal board history: %w", err)
		}

		history = append(history, &board)
	}

	return history, nil
}

func (that *dbBoard) DeleteByID(ctx context.Context, id string) error {
	deleted, err := that.client.Del(ctx, boardKey(id), historyKey(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete board by ID: %w", err)
	}

	if deleted == 0 {
		return apperror.ErrBoardNotFound
	}

	return nil
}
