package resolution

import "github.com/rocketscienceinc/ultimate-tictactoe/internal/entity"

// Wire types of the board service HTTP API.

type CreateBoardRequest struct {
	StartingPlayer entity.Mark `json:"starting_player,omitempty"`
}

type MoveRequest struct {
	Index  int         `json:"index"`
	Player entity.Mark `json:"player"`
}

type BoardDTO struct {
	ID     string      `json:"id"`
	Board  entity.Grid `json:"board"`
	Winner entity.Mark `json:"winner"`
	IsDraw bool        `json:"is_draw"`
	Status string      `json:"status"`
	Turn   entity.Mark `json:"turn"`
	Moves  int         `json:"moves"`
}

type DeleteResponse struct {
	OK     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}

func NewBoardDTO(board *entity.Board) BoardDTO {
	return BoardDTO{
		ID:     board.ID,
		Board:  board.Grid,
		Winner: board.Winner,
		IsDraw: board.IsDraw,
		Status: board.Status(),
		Turn:   board.Turn,
		Moves:  board.Moves,
	}
}
