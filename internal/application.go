package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rocketscienceinc/ultimate-tictactoe/internal/config"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/repository"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/repository/storage"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/resolution"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/service"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/usecase"
	"github.com/rocketscienceinc/ultimate-tictactoe/transport/rest"
)

const shutdownTimeout = 10 * time.Second

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	boardRepo, closeStorage, err := newBoardRepository(ctx, log, conf)
	if err != nil {
		return err
	}
	defer closeStorage()

	boardService := service.NewBoardService(logger, boardRepo)
	resolver := newResolver(log, conf, boardService)
	gameManager := usecase.NewGameManager(logger, resolver)

	server := rest.New(logger, conf.HTTPPort, rest.NewRouter(logger, boardService, gameManager, conf.Events.Heartbeat))

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		if httpErr := server.Start(); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	gameManager.Shutdown(shutdownCtx)

	if err = server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	return nil
}

// newBoardRepository - picks the board storage; the returned func releases it.
func newBoardRepository(ctx context.Context, log *slog.Logger, conf *config.Config) (repository.BoardRepository, func(), error) {
	if conf.Storage != config.StorageRedis {
		log.Info("Using in-memory board storage")
		return repository.NewMemoryBoardRepository(), func() {}, nil
	}

	redisAddrString := conf.Redis.GetRedisAddr()

	redisStorage, err := storage.New(ctx, redisAddrString)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	log.Info("Using redis board storage", "addr", redisAddrString)

	closeStorage := func() {
		if err := redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}

	return repository.NewBoardRepository(redisStorage), closeStorage, nil
}

func newResolver(log *slog.Logger, conf *config.Config, boards service.BoardService) resolution.Resolver {
	if conf.Resolution.Mode == config.ResolutionRemote {
		log.Info("Resolving moves remotely", "baseURL", conf.Resolution.BaseURL)
		return resolution.NewHTTPClient(conf.Resolution.BaseURL, conf.Resolution.Timeout)
	}

	return resolution.NewLocal(boards)
}
