package entity

const (
	// AnyBoard lets the next player act on any undecided sub-board.
	AnyBoard = -1
	// NoCell is the last played cell before the first move.
	NoCell = -1
)

// MetaGameState is the whole orchestration state of one ultimate game.
type MetaGameState struct {
	SubOutcomes    [CellCount]SubBoardOutcome `json:"sub_outcomes"`
	Overall        GameOutcome                `json:"overall"`
	ActiveBoard    int                        `json:"active_board"`
	Turn           Mark                       `json:"turn"`
	LastCellPlayed int                        `json:"last_cell_played"`
	Moves          int                        `json:"moves"`
}

// NewMetaGameState returns the initial state: everything undecided, X to move anywhere.
func NewMetaGameState() MetaGameState {
	state := MetaGameState{
		Overall:        InProgress(),
		ActiveBoard:    AnyBoard,
		Turn:           MarkX,
		LastCellPlayed: NoCell,
	}

	for i := range state.SubOutcomes {
		state.SubOutcomes[i] = Undecided()
	}

	return state
}

func (that MetaGameState) IsFree() bool {
	return that.ActiveBoard == AnyBoard
}
