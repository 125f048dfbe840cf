package apperror

import "errors"

var (
	ErrIllegalMove       = errors.New("illegal move")
	ErrIllegalBoard      = errors.New("illegal board")
	ErrGameOver          = errors.New("game is already over")
	ErrResolutionFailure = errors.New("move resolution failed")

	ErrMoveInFlight  = errors.New("another move is in flight")
	ErrStaleResponse = errors.New("stale move response discarded")
	ErrGameNotFound  = errors.New("game not found")

	ErrBoardNotFound = errors.New("board not found")
	ErrBoardConflict = errors.New("board was changed by another move")
	ErrBoardFinished = errors.New("board is already finished")
	ErrNotYourTurn   = errors.New("it's not your turn")
	ErrCellOccupied  = errors.New("cell is already occupied")
	ErrInvalidCell   = errors.New("invalid cell index")
)
