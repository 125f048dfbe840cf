package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/ultimate-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/entity"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/resolution"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/tictactoe"
)

// Snapshot is the read-only view handed to the host after every transition.
type Snapshot struct {
	ID       string                        `json:"id"`
	State    entity.MetaGameState          `json:"state"`
	Boards   [entity.CellCount]entity.Grid `json:"boards"`
	Awaiting bool                          `json:"awaiting"`
	// Version grows with every committed move, reset and close.
	Version  uint64                        `json:"version"`
}

// Controller runs one ultimate game. The mutex is never held across a resolver call;
// the generation counter tells a late response apart from one for the current game.
type Controller struct {
	logger   *slog.Logger
	id       string
	resolver resolution.Resolver
	events   *broadcaster

	mu         sync.Mutex
	state      entity.MetaGameState
	boards     [entity.CellCount]*SubBoard
	generation uint64
	awaiting   bool
}

// NewController - starts a game with nine fresh sub-boards.
func NewController(ctx context.Context, logger *slog.Logger, id string, resolver resolution.Resolver) (*Controller, error) {
	boards, err := createBoards(ctx, resolver)
	if err != nil {
		return nil, err
	}

	return &Controller{
		logger:   logger.With("component", "controller", "gameID", id),
		id:       id,
		resolver: resolver,
		events:   newBroadcaster(),
		state:    entity.NewMetaGameState(),
		boards:   boards,
	}, nil
}

func (that *Controller) ID() string {
	return that.id
}

func (that *Controller) Snapshot() Snapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.snapshotLocked()
}

// State returns a copy of the current meta-game state.
func (that *Controller) State() entity.MetaGameState {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.state
}

func (that *Controller) snapshotLocked() Snapshot {
	snap := Snapshot{
		ID:       that.id,
		State:    that.state,
		Awaiting: that.awaiting,
		Version:  that.generation,
	}

	for i, board := range that.boards {
		snap.Boards[i] = board.Grid()
	}

	return snap
}

// PlayMove - plays the current turn's mark at cell of sub-board board.
// A rejected or failed move leaves the state exactly as it was.
func (that *Controller) PlayMove(ctx context.Context, board, cell int) (Snapshot, error) {
	log := that.logger.With("method", "PlayMove", "board", board, "cell", cell)

	that.mu.Lock()
	if that.awaiting {
		snap := that.snapshotLocked()
		that.mu.Unlock()
		return snap, apperror.ErrMoveInFlight
	}

	if err := tictactoe.CheckMove(that.state, board); err != nil {
		snap := that.snapshotLocked()
		that.mu.Unlock()
		return snap, err
	}

	sub := that.boards[board]
	if err := sub.check(cell); err != nil {
		snap := that.snapshotLocked()
		that.mu.Unlock()
		return snap, err
	}

	generation := that.generation
	mark := that.state.Turn
	that.awaiting = true
	that.mu.Unlock()

	grid, err := sub.resolve(ctx, cell, mark)

	that.mu.Lock()
	if generation != that.generation {
		snap := that.snapshotLocked()
		that.mu.Unlock()
		log.Info("discarding response for a replaced game", "error", err)
		return snap, apperror.ErrStaleResponse
	}

	that.awaiting = false

	if err != nil {
		snap := that.snapshotLocked()
		that.mu.Unlock()
		log.Warn("move not applied", "mark", mark, "error", err)
		return snap, err
	}

	before := that.state
	sub.replace(grid)
	that.state = tictactoe.ApplyMove(that.state, board, cell, sub.Outcome())
	that.generation++

	snap := that.snapshotLocked()
	// published under mu so a concurrent reset cannot overtake these events
	that.events.publish(diffEvents(before, that.state, snap)...)
	that.mu.Unlock()

	log.Debug("move applied", "mark", mark, "activeBoard", snap.State.ActiveBoard, "overall", snap.State.Overall.Status)

	return snap, nil
}

// Reset - replaces the whole game with a fresh one on nine new sub-boards.
// Responses still in flight for the previous game are discarded when they arrive.
func (that *Controller) Reset(ctx context.Context) (Snapshot, error) {
	boards, err := createBoards(ctx, that.resolver)
	if err != nil {
		return that.Snapshot(), err
	}

	that.mu.Lock()
	previous := that.boards
	that.boards = boards
	that.state = entity.NewMetaGameState()
	that.generation++
	that.awaiting = false
	snap := that.snapshotLocked()
	that.events.publish(Event{Kind: EventReset, Board: entity.AnyBoard, Snapshot: snap})
	that.mu.Unlock()

	that.logger.Info("game reset")
	that.releaseBoards(context.WithoutCancel(ctx), previous)

	return snap, nil
}

// Subscribe - streams events until ctx is done, the returned func is called or the game is closed.
func (that *Controller) Subscribe(ctx context.Context) (<-chan Event, func()) {
	return that.events.subscribe(ctx)
}

// Close - ends every subscription and releases the sub-boards.
func (that *Controller) Close(ctx context.Context) {
	that.mu.Lock()
	boards := that.boards
	that.generation++
	that.mu.Unlock()

	that.events.close()
	that.releaseBoards(ctx, boards)
}

func (that *Controller) releaseBoards(ctx context.Context, boards [entity.CellCount]*SubBoard) {
	for _, board := range boards {
		if board == nil {
			continue
		}

		if err := that.resolver.DeleteSubBoard(ctx, board.Handle()); err != nil {
			that.logger.Warn("failed to release sub-board", "boardID", board.Handle().ID, "error", err)
		}
	}
}

// createBoards - requests nine fresh sub-boards; on failure the ones already created are released.
func createBoards(ctx context.Context, resolver resolution.Resolver) ([entity.CellCount]*SubBoard, error) {
	var boards [entity.CellCount]*SubBoard

	for i := range boards {
		handle, err := resolver.CreateSubBoard(ctx, entity.MarkNone)
		if err != nil {
			for _, created := range boards[:i] {
				_ = resolver.DeleteSubBoard(context.WithoutCancel(ctx), created.Handle())
			}

			return boards, fmt.Errorf("%w: %w", apperror.ErrResolutionFailure, err)
		}

		boards[i] = NewSubBoard(resolver, handle)
	}

	return boards, nil
}
