package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/ultimate-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/entity"
	"github.com/rocketscienceinc/ultimate-tictactoe/testing/suite"
)

type repoFactory func(t *testing.T) (context.Context, BoardRepository)

func testBoardRepository(t *testing.T, newRepo repoFactory) {
	t.Run("CreateOrUpdate_GetByID", func(t *testing.T) {
		ctx, repo := newRepo(t)

		// Given: a stored board
		board := entity.NewBoard("123", entity.MarkX)
		require.NoError(t, repo.CreateOrUpdate(ctx, board))

		// When: GetByID is called with its id
		stored, err := repo.GetByID(ctx, board.ID)

		// Then: the stored board matches
		require.NoError(t, err)
		assert.Equal(t, board, stored)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, repo := newRepo(t)

		// When: GetByID is called with an unknown id
		_, err := repo.GetByID(ctx, "9999999")

		// Then: ErrBoardNotFound is returned
		require.ErrorIs(t, err, apperror.ErrBoardNotFound)
	})

	t.Run("History keeps every state oldest first", func(t *testing.T) {
		ctx, repo := newRepo(t)

		// Given: a board saved three times
		board := entity.NewBoard("h1", entity.MarkNone)
		require.NoError(t, repo.CreateOrUpdate(ctx, board))

		board.Grid[0] = entity.MarkX
		board.Moves = 1
		require.NoError(t, repo.CreateOrUpdate(ctx, board))

		board.Grid[4] = entity.MarkO
		board.Moves = 2
		require.NoError(t, repo.CreateOrUpdate(ctx, board))

		// When: reading the history
		history, err := repo.History(ctx, board.ID)

		// Then: all three states come back in order
		require.NoError(t, err)
		require.Len(t, history, 3)
		assert.Equal(t, 0, history[0].Moves)
		assert.Equal(t, entity.MarkNone, history[0].Grid[0])
		assert.Equal(t, entity.MarkX, history[1].Grid[0])
		assert.Equal(t, entity.MarkO, history[2].Grid[4])
	})

	t.Run("History_NotFound", func(t *testing.T) {
		ctx, repo := newRepo(t)

		_, err := repo.History(ctx, "missing")

		require.ErrorIs(t, err, apperror.ErrBoardNotFound)
	})

	t.Run("Update only over the expected move count", func(t *testing.T) {
		ctx, repo := newRepo(t)

		// Given: a stored empty board and two moves computed from it
		board := entity.NewBoard("u1", entity.MarkNone)
		require.NoError(t, repo.CreateOrUpdate(ctx, board))

		first := board.Clone()
		first.Grid[4] = entity.MarkX
		first.Moves = 1

		second := board.Clone()
		second.Grid[4] = entity.MarkO
		second.Moves = 1

		// When: both are written over the same stored state
		require.NoError(t, repo.Update(ctx, first, 0))
		err := repo.Update(ctx, second, 0)

		// Then: the later one is refused and the first mark stays
		require.ErrorIs(t, err, apperror.ErrBoardConflict)

		stored, err := repo.GetByID(ctx, board.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.MarkX, stored.Grid[4])

		history, err := repo.History(ctx, board.ID)
		require.NoError(t, err)
		assert.Len(t, history, 2)
	})

	t.Run("Update_NotFound", func(t *testing.T) {
		ctx, repo := newRepo(t)

		err := repo.Update(ctx, entity.NewBoard("missing", entity.MarkX), 0)

		require.ErrorIs(t, err, apperror.ErrBoardNotFound)
	})

	t.Run("DeleteByID", func(t *testing.T) {
		ctx, repo := newRepo(t)

		// Given: a stored board
		board := entity.NewBoard("d1", entity.MarkX)
		require.NoError(t, repo.CreateOrUpdate(ctx, board))

		// When: DeleteByID is called twice
		require.NoError(t, repo.DeleteByID(ctx, board.ID))
		err := repo.DeleteByID(ctx, board.ID)

		// Then: the board is gone and the second delete reports it
		require.ErrorIs(t, err, apperror.ErrBoardNotFound)
		_, err = repo.GetByID(ctx, board.ID)
		require.ErrorIs(t, err, apperror.ErrBoardNotFound)
		_, err = repo.History(ctx, board.ID)
		require.ErrorIs(t, err, apperror.ErrBoardNotFound)
	})
}

func TestRedisBoardRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("redis suite needs docker")
	}

	testBoardRepository(t, func(t *testing.T) (context.Context, BoardRepository) {
		ctx, st := suite.New(t)
		return ctx, NewBoardRepository(st.Storage)
	})
}

func TestMemoryBoardRepository(t *testing.T) {
	testBoardRepository(t, func(t *testing.T) (context.Context, BoardRepository) {
		return context.Background(), NewMemoryBoardRepository()
	})
}
