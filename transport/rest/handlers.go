package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/ultimate-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/entity"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/resolution"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/service"
)

const detailBoardNotFound = "Board not found."

type boardService interface {
	CreateBoard(ctx context.Context, startingMark entity.Mark) (*entity.Board, error)
	GetBoard(ctx context.Context, id string) (*entity.Board, error)
	History(ctx context.Context, id string) ([]*entity.Board, error)
	MakeTurn(ctx context.Context, id string, cell int, mark entity.Mark) (*entity.Board, error)
	DeleteBoard(ctx context.Context, id string) error
}

// boardHandlers - the resolution service API: single boards with their move history.
type boardHandlers struct {
	logger *slog.Logger
	boards boardService
}

func (that *boardHandlers) create(w http.ResponseWriter, r *http.Request) {
	var req resolution.CreateBoardRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(that.logger, w, http.StatusBadRequest, resolution.ErrorResponse{Detail: "invalid request body"})
		return
	}

	board, err := that.boards.CreateBoard(r.Context(), req.StartingPlayer)
	if err != nil {
		that.fail(w, "create", err)
		return
	}

	writeJSON(that.logger, w, http.StatusOK, resolution.NewBoardDTO(board))
}

func (that *boardHandlers) get(w http.ResponseWriter, r *http.Request) {
	board, err := that.boards.GetBoard(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.fail(w, "get", err)
		return
	}

	writeJSON(that.logger, w, http.StatusOK, resolution.NewBoardDTO(board))
}

func (that *boardHandlers) history(w http.ResponseWriter, r *http.Request) {
	history, err := that.boards.History(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.fail(w, "history", err)
		return
	}

	dtos := make([]resolution.BoardDTO, 0, len(history))
	for _, board := range history {
		dtos = append(dtos, resolution.NewBoardDTO(board))
	}

	writeJSON(that.logger, w, http.StatusOK, dtos)
}

func (that *boardHandlers) move(w http.ResponseWriter, r *http.Request) {
	var req resolution.MoveRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(that.logger, w, http.StatusBadRequest, resolution.ErrorResponse{Detail: "invalid request body"})
		return
	}

	board, err := that.boards.MakeTurn(r.Context(), chi.URLParam(r, "id"), req.Index, req.Player)
	if err != nil {
		that.fail(w, "move", err)
		return
	}

	writeJSON(that.logger, w, http.StatusOK, resolution.NewBoardDTO(board))
}

func (that *boardHandlers) delete(w http.ResponseWriter, r *http.Request) {
	err := that.boards.DeleteBoard(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, apperror.ErrBoardNotFound) {
		writeJSON(that.logger, w, http.StatusOK, resolution.DeleteResponse{OK: false, Reason: "not found"})
		return
	}

	if err != nil {
		that.fail(w, "delete", err)
		return
	}

	writeJSON(that.logger, w, http.StatusOK, resolution.DeleteResponse{OK: true})
}

func (that *boardHandlers) fail(w http.ResponseWriter, method string, err error) {
	switch {
	case errors.Is(err, apperror.ErrBoardNotFound):
		writeJSON(that.logger, w, http.StatusNotFound, resolution.ErrorResponse{Detail: detailBoardNotFound})
	case errors.Is(err, service.ErrMoveRejected):
		writeJSON(that.logger, w, http.StatusBadRequest, resolution.ErrorResponse{Detail: err.Error()})
	default:
		that.logger.Error("board request failed", "method", method, "error", err)
		writeJSON(that.logger, w, http.StatusInternalServerError, resolution.ErrorResponse{Detail: "Internal Server Error"})
	}
}
