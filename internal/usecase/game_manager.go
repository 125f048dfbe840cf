package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/ultimate-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/pkg"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/resolution"
)

// GameManager keeps the running games of this process. Games share nothing but the resolver.
type GameManager struct {
	logger   *slog.Logger
	resolver resolution.Resolver

	mu    sync.Mutex
	games map[string]*Controller
}

func NewGameManager(logger *slog.Logger, resolver resolution.Resolver) *GameManager {
	return &GameManager{
		logger:   logger,
		resolver: resolver,
		games:    make(map[string]*Controller),
	}
}

func (that *GameManager) Create(ctx context.Context) (*Controller, error) {
	gameID := pkg.GenerateGameID()

	controller, err := NewController(ctx, that.logger, gameID, that.resolver)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.mu.Lock()
	that.games[gameID] = controller
	that.mu.Unlock()

	that.logger.Info("game created", "gameID", gameID)

	return controller, nil
}

func (that *GameManager) Get(id string) (*Controller, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	controller, ok := that.games[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrGameNotFound, id)
	}

	return controller, nil
}

func (that *GameManager) Delete(ctx context.Context, id string) error {
	that.mu.Lock()
	controller, ok := that.games[id]
	delete(that.games, id)
	that.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", apperror.ErrGameNotFound, id)
	}

	controller.Close(ctx)
	that.logger.Info("game deleted", "gameID", id)

	return nil
}

// Shutdown - closes every game.
func (that *GameManager) Shutdown(ctx context.Context) {
	that.mu.Lock()
	games := that.games
	that.games = make(map[string]*Controller)
	that.mu.Unlock()

	for _, controller := range games {
		controller.Close(ctx)
	}
}
