package usecase

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/ultimate-tictactoe/internal/entity"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/repository"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/resolution"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/service"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newLocalResolver(t *testing.T) *resolution.Local {
	t.Helper()

	return resolution.NewLocal(service.NewBoardService(newTestLogger(), repository.NewMemoryBoardRepository()))
}

// countingResolver counts the sub-boards requested from the wrapped resolver.
type countingResolver struct {
	resolution.Resolver
	created atomic.Int32
}

func (that *countingResolver) CreateSubBoard(ctx context.Context, startingMark entity.Mark) (resolution.SubBoardHandle, error) {
	that.created.Add(1)
	return that.Resolver.CreateSubBoard(ctx, startingMark)
}

// blockingResolver holds every ApplyMove until release is closed.
type blockingResolver struct {
	resolution.Resolver
	entered chan struct{}
	release chan struct{}
}

func newBlockingResolver(inner resolution.Resolver) *blockingResolver {
	return &blockingResolver{
		Resolver: inner,
		entered:  make(chan struct{}, 4),
		release:  make(chan struct{}),
	}
}

func (that *blockingResolver) ApplyMove(ctx context.Context, handle resolution.SubBoardHandle, cell int, mark entity.Mark) (resolution.MoveOutcome, error) {
	that.entered <- struct{}{}
	<-that.release
	return that.Resolver.ApplyMove(ctx, handle, cell, mark)
}

type mockResolver struct {
	mock.Mock
}

func newMockResolver(t *testing.T) *mockResolver {
	t.Helper()

	m := &mockResolver{}
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (that *mockResolver) CreateSubBoard(ctx context.Context, startingMark entity.Mark) (resolution.SubBoardHandle, error) {
	args := that.Called(ctx, startingMark)
	return args.Get(0).(resolution.SubBoardHandle), args.Error(1)
}

func (that *mockResolver) ApplyMove(ctx context.Context, handle resolution.SubBoardHandle, cell int, mark entity.Mark) (resolution.MoveOutcome, error) {
	args := that.Called(ctx, handle, cell, mark)
	return args.Get(0).(resolution.MoveOutcome), args.Error(1)
}

func (that *mockResolver) DeleteSubBoard(ctx context.Context, handle resolution.SubBoardHandle) error {
	args := that.Called(ctx, handle)
	return args.Error(0)
}

// expectBoards prepares n successful sub-board creations.
func (that *mockResolver) expectBoards(n int) {
	that.On("CreateSubBoard", mock.Anything, entity.MarkNone).
		Return(resolution.SubBoardHandle{ID: "sub"}, nil).
		Times(n)
}
