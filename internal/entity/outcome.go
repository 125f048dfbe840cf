package entity

const (
	StatusUndecided  = "undecided"
	StatusInProgress = "in_progress"
	StatusWon        = "won"
	StatusDrawn      = "drawn"
)

// SubBoardOutcome is the derived result of one sub-board.
type SubBoardOutcome struct {
	Status string `json:"status"`
	Winner Mark   `json:"winner,omitempty"`
}

func Undecided() SubBoardOutcome { return SubBoardOutcome{Status: StatusUndecided} }

func WonBy(mark Mark) SubBoardOutcome { return SubBoardOutcome{Status: StatusWon, Winner: mark} }

func Drawn() SubBoardOutcome { return SubBoardOutcome{Status: StatusDrawn} }

func (that SubBoardOutcome) IsDecided() bool {
	return that.Status == StatusWon || that.Status == StatusDrawn
}

// LineMark is the mark the sub-board contributes to the meta-grid.
// Undecided and drawn sub-boards contribute nothing.
func (that SubBoardOutcome) LineMark() Mark {
	if that.Status == StatusWon {
		return that.Winner
	}

	return MarkNone
}

// GameOutcome is the overall result of a meta-game.
type GameOutcome struct {
	Status string `json:"status"`
	Winner Mark   `json:"winner,omitempty"`
}

func InProgress() GameOutcome { return GameOutcome{Status: StatusInProgress} }

func (that GameOutcome) IsTerminal() bool {
	return that.Status == StatusWon || that.Status == StatusDrawn
}
