package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const defaultHeartbeat = 15 * time.Second

// NewRouter wires the board service routes and the meta-game routes.
func NewRouter(logger *slog.Logger, boards boardService, games gameManager, heartbeat time.Duration) http.Handler {
	if heartbeat <= 0 {
		heartbeat = defaultHeartbeat
	}

	board := &boardHandlers{logger: logger.With("component", "board-handlers"), boards: boards}
	ultimate := &ultimateHandlers{logger: logger.With("component", "ultimate-handlers"), games: games, heartbeat: heartbeat}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/ping", pingHandler)

	r.Route("/tictactoe", func(r chi.Router) {
		r.Post("/new", board.create)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", board.get)
			r.Delete("/", board.delete)
			r.Get("/history", board.history)
			r.Post("/move", board.move)
		})
	})

	r.Route("/ultimate", func(r chi.Router) {
		r.Post("/", ultimate.create)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", ultimate.get)
			r.Delete("/", ultimate.delete)
			r.Post("/move", ultimate.move)
			r.Post("/reset", ultimate.reset)
			r.Get("/events", ultimate.events)
		})
	})

	return r
}

type Server struct {
	logger *slog.Logger
	srv    *http.Server
}

func New(logger *slog.Logger, port string, handler http.Handler) *Server {
	return &Server{
		logger: logger.With("component", "http-server"),
		srv: &http.Server{
			Addr:         ":" + port,
			Handler:      handler,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  30 * time.Second,
		},
	}
}

// Start - serves until Shutdown is called.
func (that *Server) Start() error {
	that.logger.Info("Starting HTTP server", "addr", that.srv.Addr)

	if err := that.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) Shutdown(ctx context.Context) error {
	if err := that.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}
