package entity

const (
	BoardStatusXWins      = "X wins"
	BoardStatusOWins      = "O wins"
	BoardStatusDraw       = "draw"
	BoardStatusInProgress = "in progress"
)

// Board is the resolution service's record of one sub-board.
type Board struct {
	ID     string `json:"id"`
	Grid   Grid   `json:"board"`
	Winner Mark   `json:"winner"`
	IsDraw bool   `json:"is_draw"`
	// Turn is the mark expected next; empty on free boards that accept either mark.
	Turn  Mark `json:"turn"`
	Moves int  `json:"moves"`
}

func NewBoard(id string, startingMark Mark) *Board {
	return &Board{
		ID:   id,
		Turn: startingMark,
	}
}

func (that *Board) IsFinished() bool {
	return that.Winner != MarkNone || that.IsDraw
}

// IsFree reports whether the board accepts moves from either mark.
func (that *Board) IsFree() bool {
	return that.Turn == MarkNone && !that.IsFinished()
}

func (that *Board) Status() string {
	switch {
	case that.Winner == MarkX:
		return BoardStatusXWins
	case that.Winner == MarkO:
		return BoardStatusOWins
	case that.IsDraw:
		return BoardStatusDraw
	default:
		return BoardStatusInProgress
	}
}

func (that *Board) Clone() *Board {
	cp := *that
	return &cp
}
