package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/gomoku-backend/internal/config"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/usecase"
)

const shutdownTimeout = 5 * time.Second

type roomUseCase interface {
	CreateRoom(ctx context.Context, player *entity.Player) (*usecase.Result, error)
	JoinRoom(ctx context.Context, code string, player *entity.Player) (*usecase.Result, error)

	MakeMove(ctx context.Context, code, playerID string, row, col int) (*usecase.Result, error)
	RestartGame(ctx context.Context, code, playerID string) (*usecase.Result, error)

	LeaveRoom(ctx context.Context, code, playerID string) (*usecase.Result, error)
	Disconnect(ctx context.Context, code, playerID string) (*usecase.Result, error)

	SetNotifier(notify func(events []entity.Event))
}

type handlerFunc func(ctx context.Context, c *client, msg *Message) error

type Server struct {
	logger   *slog.Logger
	rooms    roomUseCase
	validate *validator.Validate
	upgrader websocket.Upgrader

	maxNameLength int

	clientsMutex sync.RWMutex
	clients      map[string]*client

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, conf *config.Config, rooms roomUseCase) *Server {
	server := &Server{
		logger:        logger.With("component", "websocket"),
		rooms:         rooms,
		validate:      validator.New(validator.WithRequiredStructEnabled()),
		maxNameLength: conf.MaxNameLength,
		clients:       make(map[string]*client),
		handlers:      make(map[string]handlerFunc),
	}

	server.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     checkOrigin(conf.AllowedOrigins),
	}

	server.handlers[actionCreateRoom] = server.handleCreateRoom
	server.handlers[actionJoinRoom] = server.handleJoinRoom
	server.handlers[actionMakeMove] = server.handleMakeMove
	server.handlers[actionRestartGame] = server.handleRestartGame
	server.handlers[actionLeaveRoom] = server.handleLeaveRoom

	rooms.SetNotifier(server.deliver)

	return server
}

// Handler - http handler serving the websocket endpoint at /ws.
func (that *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.serveWS(ctx, w, r)
	})

	return mux
}

// Start - starts WebSocket server, returns once ctx is canceled and the server is shut down.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(ctx),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown server", "error", err)
		}

		that.closeAll()
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// serveWS - upgrades the connection and runs it until the peer goes away.
func (that *Server) serveWS(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "serveWS")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	c := newClient(uuid.NewString(), conn)
	that.register(c)

	log = log.With("playerID", c.id)
	log.Info("WebSocket connection established", "remote", conn.RemoteAddr().String())

	go c.writeLoop()

	err = c.readLoop(func(data []byte) {
		that.handleMessage(ctx, c, data)
	})
	if err != nil && !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		log.Info("connection lost", "error", err)
	}

	that.handleDisconnect(ctx, c)
}

// handleMessage - decodes one frame and runs its handler; a panic fails only this connection.
func (that *Server) handleMessage(ctx context.Context, c *client, data []byte) {
	log := that.logger.With("method", "handleMessage", "playerID", c.id)

	var message Message
	if err := json.Unmarshal(data, &message); err != nil {
		log.Warn("failed to unmarshal message", "error", err)
		that.sendError(c, "", badRequest(err))
		return
	}

	handler, ok := that.handlers[message.Action]
	if !ok {
		log.Warn("unknown action", "action", message.Action)
		that.sendError(c, message.Action, badRequest(fmt.Errorf("unknown action %q", message.Action)))
		return
	}

	defer func() {
		if recovered := recover(); recovered != nil {
			log.Error("handler panicked", "action", message.Action, "panic", recovered)
			c.close()
		}
	}()

	if err := handler(ctx, c, &message); err != nil {
		log.Info("request rejected", "action", message.Action, "roomID", c.roomID, "slot", c.slot, "error", err)
		that.sendError(c, message.Action, err)
	}
}

// handleDisconnect - runs once per connection after its read loop ends.
func (that *Server) handleDisconnect(ctx context.Context, c *client) {
	that.release(ctx, c, that.rooms.Disconnect)
	that.unregister(c)
	c.close()

	that.logger.Info("player disconnected", "method", "handleDisconnect", "playerID", c.id)
}

// deliver - hands each event to its recipient without blocking on any of them; rooms call it under their session lock.
func (that *Server) deliver(events []entity.Event) {
	log := that.logger.With("method", "deliver")

	for _, event := range events {
		message, err := encodeMessage(event.Name, event.Payload)
		if err != nil {
			log.Error("failed to marshal event", "event", event.Name, "error", err)
			continue
		}

		that.clientsMutex.RLock()
		recipient, ok := that.clients[event.PlayerID]
		that.clientsMutex.RUnlock()

		if !ok {
			log.Warn("connection not found for player", "playerID", event.PlayerID, "event", event.Name)
			continue
		}

		if !recipient.enqueue(message) {
			log.Warn("dropping slow connection", "playerID", event.PlayerID, "event", event.Name)
			recipient.close()
		}
	}
}

func (that *Server) register(c *client) {
	that.clientsMutex.Lock()
	defer that.clientsMutex.Unlock()

	that.clients[c.id] = c
}

func (that *Server) unregister(c *client) {
	that.clientsMutex.Lock()
	defer that.clientsMutex.Unlock()

	delete(that.clients, c.id)
}

func (that *Server) closeAll() {
	that.clientsMutex.RLock()
	defer that.clientsMutex.RUnlock()

	for _, c := range that.clients {
		c.close()
	}
}

func checkOrigin(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if len(allowed) == 0 || origin == "" {
			return true
		}

		return slices.Contains(allowed, origin)
	}
}
