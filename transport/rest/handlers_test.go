package rest

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/ultimate-tictactoe/internal/entity"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/resolution"
)

func TestPing(t *testing.T) {
	rec := doJSON(t, newTestRouter(t), http.MethodGet, "/ping", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestBoardHandlers(t *testing.T) {
	router := newTestRouter(t)

	// Given: a new board started by X
	rec := doJSON(t, router, http.MethodPost, "/tictactoe/new", resolution.CreateBoardRequest{StartingPlayer: entity.MarkX})
	require.Equal(t, http.StatusOK, rec.Code)
	board := decodeBody[resolution.BoardDTO](t, rec)
	require.NotEmpty(t, board.ID)
	assert.Equal(t, entity.BoardStatusInProgress, board.Status)
	assert.Equal(t, entity.MarkX, board.Turn)

	t.Run("Move", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/tictactoe/"+board.ID+"/move", resolution.MoveRequest{Index: 4, Player: entity.MarkX})

		require.Equal(t, http.StatusOK, rec.Code)
		moved := decodeBody[resolution.BoardDTO](t, rec)
		assert.Equal(t, entity.MarkX, moved.Board[4])
		assert.Equal(t, entity.MarkO, moved.Turn)
	})

	t.Run("Rejected move", func(t *testing.T) {
		// When: O targets the occupied centre
		rec := doJSON(t, router, http.MethodPost, "/tictactoe/"+board.ID+"/move", resolution.MoveRequest{Index: 4, Player: entity.MarkO})

		// Then: 400 with the reason as detail
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decodeBody[resolution.ErrorResponse](t, rec).Detail, "occupied")
	})

	t.Run("Get and history", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/tictactoe/"+board.ID, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 1, decodeBody[resolution.BoardDTO](t, rec).Moves)

		rec = doJSON(t, router, http.MethodGet, "/tictactoe/"+board.ID+"/history", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		history := decodeBody[[]resolution.BoardDTO](t, rec)
		require.Len(t, history, 2)
		assert.Equal(t, entity.Grid{}, history[0].Board)
		assert.Equal(t, entity.MarkX, history[1].Board[4])
	})

	t.Run("Unknown board", func(t *testing.T) {
		for _, path := range []string{"/tictactoe/missing", "/tictactoe/missing/history"} {
			rec := doJSON(t, router, http.MethodGet, path, nil)

			require.Equal(t, http.StatusNotFound, rec.Code)
			assert.Equal(t, "Board not found.", decodeBody[resolution.ErrorResponse](t, rec).Detail)
		}

		rec := doJSON(t, router, http.MethodPost, "/tictactoe/missing/move", resolution.MoveRequest{Index: 0, Player: entity.MarkX})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Invalid starting player", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/tictactoe/new", map[string]string{"starting_player": "Z"})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Delete", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodDelete, "/tictactoe/"+board.ID, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, decodeBody[resolution.DeleteResponse](t, rec).OK)

		rec = doJSON(t, router, http.MethodDelete, "/tictactoe/"+board.ID, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, resolution.DeleteResponse{OK: false, Reason: "not found"}, decodeBody[resolution.DeleteResponse](t, rec))
	})
}
