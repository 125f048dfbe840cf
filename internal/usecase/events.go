package usecase

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/ultimate-tictactoe/internal/entity"
)

const (
	EventBoard    = "board"
	EventGameOver = "game_over"
	EventReset    = "reset"
)

const subscriberBuffer = 8

// Event notifies the host about a sub-board outcome change, the end of the game or a reset.
type Event struct {
	Kind     string                  `json:"kind"`
	Board    int                     `json:"board"`
	Outcome  *entity.SubBoardOutcome `json:"outcome,omitempty"`
	Overall  *entity.GameOutcome     `json:"overall,omitempty"`
	Snapshot Snapshot                `json:"snapshot"`
}

// diffEvents lists what changed between two states.
func diffEvents(before, after entity.MetaGameState, snap Snapshot) []Event {
	var events []Event

	for i := range after.SubOutcomes {
		if before.SubOutcomes[i] != after.SubOutcomes[i] {
			outcome := after.SubOutcomes[i]
			events = append(events, Event{Kind: EventBoard, Board: i, Outcome: &outcome, Snapshot: snap})
		}
	}

	if !before.Overall.IsTerminal() && after.Overall.IsTerminal() {
		overall := after.Overall
		events = append(events, Event{Kind: EventGameOver, Board: entity.AnyBoard, Overall: &overall, Snapshot: snap})
	}

	return events
}

type subscriber struct {
	ch        chan Event
	done      chan struct{}
	closeOnce sync.Once
}

func (that *subscriber) close() {
	that.closeOnce.Do(func() {
		close(that.ch)
		close(that.done)
	})
}

type broadcaster struct {
	mu     sync.Mutex
	subs   map[*subscriber]struct{}
	closed bool
}

func newBroadcaster() *broadcaster {
	return &broadcaster{subs: make(map[*subscriber]struct{})}
}

// subscribe - registers a listener until ctx is done or the returned func is called.
func (that *broadcaster) subscribe(ctx context.Context) (<-chan Event, func()) {
	sub := &subscriber{ch: make(chan Event, subscriberBuffer), done: make(chan struct{})}

	that.mu.Lock()
	if that.closed {
		that.mu.Unlock()
		sub.close()
		return sub.ch, func() {}
	}
	that.subs[sub] = struct{}{}
	that.mu.Unlock()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			that.mu.Lock()
			delete(that.subs, sub)
			that.mu.Unlock()
			sub.close()
		})
	}

	go func() {
		select {
		case <-ctx.Done():
			unsubscribe()
		case <-sub.done:
		}
	}()

	return sub.ch, unsubscribe
}

// publish - fans events out; subscribers that cannot keep up are dropped.
// It never blocks, so callers may hold their own locks.
func (that *broadcaster) publish(events ...Event) {
	if len(events) == 0 {
		return
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	for sub := range that.subs {
	send:
		for _, event := range events {
			select {
			case sub.ch <- event:
			default:
				delete(that.subs, sub)
				sub.close()
				break send
			}
		}
	}
}

func (that *broadcaster) close() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.closed = true
	for sub := range that.subs {
		sub.close()
		delete(that.subs, sub)
	}
}
