package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/usecase"
)

const defaultNamePrefix = "Player "

func (that *Server) handleCreateRoom(ctx context.Context, c *client, msg *Message) error {
	var req CreateRoomRequest
	if err := that.decode(msg, &req); err != nil {
		return err
	}

	player, err := that.newPlayer(c, req.PlayerName)
	if err != nil {
		return err
	}

	result, err := that.rooms.CreateRoom(ctx, player)
	if err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}

	that.release(ctx, c, that.rooms.LeaveRoom)
	c.bind(result.Room.ID, result.Slot)

	return nil
}

func (that *Server) handleJoinRoom(ctx context.Context, c *client, msg *Message) error {
	var req JoinRoomRequest
	if err := json.Unmarshal(payloadOf(msg), &req); err != nil {
		return badRequest(err)
	}

	req.RoomID = usecase.NormalizeCode(req.RoomID)
	if err := that.validate.Struct(req); err != nil {
		return badRequest(err)
	}

	player, err := that.newPlayer(c, req.PlayerName)
	if err != nil {
		return err
	}

	result, err := that.rooms.JoinRoom(ctx, req.RoomID, player)
	if err != nil {
		return err
	}

	that.release(ctx, c, that.rooms.LeaveRoom)
	c.bind(result.Room.ID, result.Slot)

	return nil
}

func (that *Server) handleMakeMove(ctx context.Context, c *client, msg *Message) error {
	var req MakeMoveRequest
	if err := that.decode(msg, &req); err != nil {
		return err
	}

	if !c.isBound() {
		return apperror.ErrNotInRoom
	}

	if _, err := that.rooms.MakeMove(ctx, c.roomID, c.id, *req.Row, *req.Col); err != nil {
		return err
	}

	return nil
}

func (that *Server) handleRestartGame(ctx context.Context, c *client, _ *Message) error {
	if !c.isBound() {
		return apperror.ErrNotInRoom
	}

	if _, err := that.rooms.RestartGame(ctx, c.roomID, c.id); err != nil {
		return err
	}

	return nil
}

func (that *Server) handleLeaveRoom(ctx context.Context, c *client, _ *Message) error {
	if !c.isBound() {
		return apperror.ErrNotInRoom
	}

	that.release(ctx, c, that.rooms.LeaveRoom)

	return nil
}

// release - vacates the seat bound to c, if any, and clears the binding whatever the outcome.
func (that *Server) release(ctx context.Context, c *client, vacate func(ctx context.Context, code, playerID string) (*usecase.Result, error)) {
	if !c.isBound() {
		return
	}

	roomID := c.roomID
	c.unbind()

	if _, err := vacate(ctx, roomID, c.id); err != nil {
		that.logger.Warn("failed to vacate seat", "method", "release", "roomID", roomID, "playerID", c.id, "error", err)
	}
}

// sendError - error notice for the requesting connection only; failed joins use join_error.
func (that *Server) sendError(c *client, action string, err error) {
	code := apperror.Code(err)

	message := err.Error()
	if code == "internal" {
		message = "internal server error"
	}

	event := entity.Event{
		Name:     entity.EventError,
		PlayerID: c.id,
		Payload: entity.ErrorPayload{
			Action:  action,
			Code:    code,
			Message: message,
		},
	}

	if action == actionJoinRoom {
		event.Name = entity.EventJoinError
		event.Payload = entity.JoinErrorPayload{Message: message}
	}

	that.deliver([]entity.Event{event})
}

// decode - unmarshals and validates the payload of msg into req.
func (that *Server) decode(msg *Message, req any) error {
	if err := json.Unmarshal(payloadOf(msg), req); err != nil {
		return badRequest(err)
	}

	if err := that.validate.Struct(req); err != nil {
		return badRequest(err)
	}

	return nil
}

// newPlayer - player for c, named after the connection when name is blank.
func (that *Server) newPlayer(c *client, name string) (*entity.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultNamePrefix + c.id[:4]
	}

	if that.maxNameLength > 0 {
		if err := that.validate.Var(name, "max="+strconv.Itoa(that.maxNameLength)); err != nil {
			return nil, badRequest(fmt.Errorf("player name is longer than %d characters", that.maxNameLength))
		}
	}

	return &entity.Player{ID: c.id, Name: name}, nil
}

func payloadOf(msg *Message) []byte {
	if len(msg.Payload) == 0 || string(msg.Payload) == "null" {
		return []byte("{}")
	}

	return msg.Payload
}

func badRequest(err error) error {
	if errors.Is(err, apperror.ErrBadRequest) {
		return err
	}

	return fmt.Errorf("%w: %v", apperror.ErrBadRequest, err)
}
