package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

const (
	codeLength      = 8
	maxCodeAttempts = 16
)

var ErrCodeGeneration = errors.New("failed to generate a unique room code")

type roomRepo interface {
	CreateOrUpdate(ctx context.Context, room *entity.Room) error
	DeleteByID(ctx context.Context, id string) error
}

type Option func(*RoomManager)

// WithRoomRepository - mirrors the latest state of every room into repo.
func WithRoomRepository(repo roomRepo) Option {
	return func(that *RoomManager) {
		that.roomRepo = repo
	}
}

func WithCodeGenerator(generate func() string) Option {
	return func(that *RoomManager) {
		that.generateCode = generate
	}
}

// RoomManager - process-wide registry of active rooms keyed by room code.
type RoomManager struct {
	logger       *slog.Logger
	roomRepo     roomRepo
	generateCode func() string
	notify       atomic.Pointer[func(events []entity.Event)]

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewRoomManager(logger *slog.Logger, opts ...Option) *RoomManager {
	manager := &RoomManager{
		logger:       logger.With("component", "room_manager"),
		generateCode: GenerateRoomCode,
		sessions:     make(map[string]*Session),
	}

	for _, opt := range opts {
		opt(manager)
	}

	return manager
}

// SetNotifier - notify queues events for delivery; it runs under a session lock, so it must not block.
func (that *RoomManager) SetNotifier(notify func(events []entity.Event)) {
	that.notify.Store(&notify)
}

// GenerateRoomCode - short uppercase alphanumeric code taken from a random uuid.
func GenerateRoomCode() string {
	return strings.ToUpper(uuid.NewString()[:codeLength])
}

// NormalizeCode - the form room codes are stored in.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (that *RoomManager) CreateRoom(ctx context.Context, player *entity.Player) (*Result, error) {
	log := that.logger.With("method", "CreateRoom", "playerID", player.ID)

	session, err := that.insert(player)
	if err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	result := session.Open()
	that.publish(ctx, session, result.Room)

	log.Info("room created", "roomID", result.Room.ID)

	return result, nil
}

func (that *RoomManager) JoinRoom(ctx context.Context, code string, player *entity.Player) (*Result, error) {
	log := that.logger.With("method", "JoinRoom", "playerID", player.ID)

	session, err := that.find(code)
	if err != nil {
		return nil, fmt.Errorf("failed to join room %s: %w", code, err)
	}

	result, err := session.Join(player)
	if err != nil {
		return nil, fmt.Errorf("failed to join room %s: %w", code, err)
	}

	that.publish(ctx, session, result.Room)

	log.Info("player joined room", "roomID", result.Room.ID, "slot", result.Slot)

	return result, nil
}

func (that *RoomManager) MakeMove(ctx context.Context, code, playerID string, row, col int) (*Result, error) {
	session, err := that.find(code)
	if err != nil {
		return nil, err
	}

	result, err := session.MakeMove(playerID, row, col)
	if err != nil {
		return nil, err
	}

	that.publish(ctx, session, result.Room)

	if result.Room.IsFinished() {
		that.logger.Info("game finished", "method", "MakeMove", "roomID", result.Room.ID, "winner", result.Room.Winner)
	}

	return result, nil
}

func (that *RoomManager) RestartGame(ctx context.Context, code, playerID string) (*Result, error) {
	session, err := that.find(code)
	if err != nil {
		return nil, err
	}

	result, err := session.Restart(playerID)
	if err != nil {
		return nil, err
	}

	that.publish(ctx, session, result.Room)

	return result, nil
}

// LeaveRoom - explicit leave, the opponent is told with opponent_left.
func (that *RoomManager) LeaveRoom(ctx context.Context, code, playerID string) (*Result, error) {
	return that.vacate(ctx, code, playerID, entity.EventOpponentLeft)
}

// Disconnect - dropped connection, the opponent is told with opponent_disconnected.
func (that *RoomManager) Disconnect(ctx context.Context, code, playerID string) (*Result, error) {
	return that.vacate(ctx, code, playerID, entity.EventOpponentDisconnected)
}

func (that *RoomManager) GetByID(_ context.Context, code string) (*entity.Room, error) {
	session, err := that.find(code)
	if err != nil {
		return nil, err
	}

	room := session.Snapshot()

	return &room, nil
}

func (that *RoomManager) Count() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.sessions)
}

func (that *RoomManager) vacate(ctx context.Context, code, playerID, notice string) (*Result, error) {
	log := that.logger.With("method", "vacate", "roomID", code, "playerID", playerID)

	session, err := that.find(code)
	if err != nil {
		return nil, err
	}

	result, err := session.Leave(playerID, notice)
	if err != nil {
		return nil, err
	}

	if result.Room.IsClosed() {
		that.remove(result.Room.ID, session)
		log.Info("room closed")
	}

	that.publish(ctx, session, result.Room)

	log.Info("player left room", "slot", result.Slot, "notice", notice)

	return result, nil
}

// insert - picks a free code and registers a new room under it in one critical section.
func (that *RoomManager) insert(player *entity.Player) (*Session, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	for range maxCodeAttempts {
		code := NormalizeCode(that.generateCode())
		if _, exists := that.sessions[code]; exists || code == "" {
			continue
		}

		session := NewSession(entity.NewRoom(code, player), that.emit)
		that.sessions[code] = session

		return session, nil
	}

	return nil, ErrCodeGeneration
}

func (that *RoomManager) find(code string) (*Session, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	session, ok := that.sessions[NormalizeCode(code)]
	if !ok {
		return nil, apperror.ErrRoomNotFound
	}

	return session, nil
}

// remove - drops code only while it still maps to session.
func (that *RoomManager) remove(code string, session *Session) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if current, ok := that.sessions[code]; ok && current == session {
		delete(that.sessions, code)
	}
}

func (that *RoomManager) emit(events []entity.Event) {
	if notify := that.notify.Load(); notify != nil {
		(*notify)(events)
	}
}

// publish - best effort copy of the room to the snapshot store; stale revisions are dropped.
func (that *RoomManager) publish(ctx context.Context, session *Session, room entity.Room) {
	if that.roomRepo == nil {
		return
	}

	log := that.logger.With("method", "publish", "roomID", room.ID, "revision", room.Revision)

	session.publish(room, func(room entity.Room) {
		if room.IsClosed() {
			err := that.roomRepo.DeleteByID(ctx, room.ID)
			if err != nil && !errors.Is(err, apperror.ErrRoomNotFound) {
				log.Error("failed to delete room snapshot", "error", err)
			}

			return
		}

		if err := that.roomRepo.CreateOrUpdate(ctx, &room); err != nil {
			log.Error("failed to save room snapshot", "error", err)
		}
	})
}
