package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

const shutdownTimeout = 5 * time.Second

type roomReader interface {
	GetByID(ctx context.Context, id string) (*entity.Room, error)
}

type roomCounter interface {
	Count() int
}

type Server struct {
	logger *slog.Logger

	ping  PingHandler
	rooms RoomHandler
}

func New(logger *slog.Logger, reader roomReader, counter roomCounter) *Server {
	log := logger.With("component", "rest")

	return &Server{
		logger: log,
		ping:   NewPingHandler(),
		rooms:  NewRoomHandler(log, reader, counter),
	}
}

func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", that.ping.StatusHandler)
	mux.HandleFunc("GET /ping", that.ping.PingHandler)
	mux.HandleFunc("GET /rooms/{id}", that.rooms.GetRoom)
	mux.HandleFunc("GET /stats", that.rooms.Stats)

	return mux
}

func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
