package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/ultimate-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/resolution"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/usecase"
)

const (
	kindGameOver          = "game_over"
	kindIllegalBoard      = "illegal_board"
	kindIllegalMove       = "illegal_move"
	kindMoveInFlight      = "move_in_flight"
	kindStaleResponse     = "stale_response"
	kindResolutionFailure = "resolution_failure"
	kindGameNotFound      = "game_not_found"
	kindBadRequest        = "bad_request"
	kindInternal          = "internal"
)

type gameManager interface {
	Create(ctx context.Context) (*usecase.Controller, error)
	Get(id string) (*usecase.Controller, error)
	Delete(ctx context.Context, id string) error
}

type moveRequest struct {
	Board int `json:"board"`
	Cell  int `json:"cell"`
}

type gameErrorResponse struct {
	Error  string            `json:"error"`
	Reason string            `json:"reason"`
	State  *usecase.Snapshot `json:"state,omitempty"`
}

// ultimateHandlers - the meta-game API on top of GameManager.
type ultimateHandlers struct {
	logger    *slog.Logger
	games     gameManager
	heartbeat time.Duration
}

func (that *ultimateHandlers) create(w http.ResponseWriter, r *http.Request) {
	controller, err := that.games.Create(r.Context())
	if err != nil {
		that.fail(w, err, nil)
		return
	}

	writeJSON(that.logger, w, http.StatusCreated, controller.Snapshot())
}

func (that *ultimateHandlers) get(w http.ResponseWriter, r *http.Request) {
	controller, ok := that.controller(w, r)
	if !ok {
		return
	}

	writeJSON(that.logger, w, http.StatusOK, controller.Snapshot())
}

func (that *ultimateHandlers) delete(w http.ResponseWriter, r *http.Request) {
	if err := that.games.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.fail(w, err, nil)
		return
	}

	writeJSON(that.logger, w, http.StatusOK, resolution.DeleteResponse{OK: true})
}

func (that *ultimateHandlers) move(w http.ResponseWriter, r *http.Request) {
	controller, ok := that.controller(w, r)
	if !ok {
		return
	}

	var req moveRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(that.logger, w, http.StatusBadRequest, gameErrorResponse{Error: kindBadRequest, Reason: "invalid request body"})
		return
	}

	snap, err := controller.PlayMove(r.Context(), req.Board, req.Cell)
	if err != nil {
		that.fail(w, err, &snap)
		return
	}

	writeJSON(that.logger, w, http.StatusOK, snap)
}

func (that *ultimateHandlers) reset(w http.ResponseWriter, r *http.Request) {
	controller, ok := that.controller(w, r)
	if !ok {
		return
	}

	snap, err := controller.Reset(r.Context())
	if err != nil {
		that.fail(w, err, &snap)
		return
	}

	writeJSON(that.logger, w, http.StatusOK, snap)
}

func (that *ultimateHandlers) controller(w http.ResponseWriter, r *http.Request) (*usecase.Controller, bool) {
	controller, err := that.games.Get(chi.URLParam(r, "id"))
	if err != nil {
		that.fail(w, err, nil)
		return nil, false
	}

	return controller, true
}

func (that *ultimateHandlers) fail(w http.ResponseWriter, err error, snap *usecase.Snapshot) {
	status, kind := classify(err)
	if status == http.StatusInternalServerError || status == http.StatusBadGateway {
		that.logger.Error("game request failed", "kind", kind, "error", err)
	}

	writeJSON(that.logger, w, status, gameErrorResponse{Error: kind, Reason: err.Error(), State: snap})
}

// classify maps a controller error to its HTTP status and error kind.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, apperror.ErrGameNotFound):
		return http.StatusNotFound, kindGameNotFound
	case errors.Is(err, apperror.ErrGameOver):
		return http.StatusConflict, kindGameOver
	case errors.Is(err, apperror.ErrIllegalBoard):
		return http.StatusConflict, kindIllegalBoard
	case errors.Is(err, apperror.ErrIllegalMove):
		return http.StatusConflict, kindIllegalMove
	case errors.Is(err, apperror.ErrMoveInFlight):
		return http.StatusConflict, kindMoveInFlight
	case errors.Is(err, apperror.ErrStaleResponse):
		return http.StatusConflict, kindStaleResponse
	case errors.Is(err, apperror.ErrResolutionFailure):
		return http.StatusBadGateway, kindResolutionFailure
	default:
		return http.StatusInternalServerError, kindInternal
	}
}
