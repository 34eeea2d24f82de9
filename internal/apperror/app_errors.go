package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrIllegalMove  = errors.New("illegal move")
	ErrNotYourTurn  = errors.New("it's not your turn")
	ErrGameFinished = errors.New("game is already finished")
	ErrRoomNotFound = errors.New("room not found")
	ErrRoomFull     = errors.New("room is full")
	ErrInvalidState = errors.New("invalid game state")
	ErrNotInRoom    = errors.New("player is not in the room")
	ErrBadRequest   = errors.New("bad request")

	ErrCellOccupied     = fmt.Errorf("%w: cell is already occupied", ErrIllegalMove)
	ErrOutOfBoard       = fmt.Errorf("%w: cell is out of the board", ErrIllegalMove)
	ErrGameIsNotStarted = fmt.Errorf("%w: game is not started", ErrInvalidState)
	ErrGameNotFinished  = fmt.Errorf("%w: game is not finished", ErrInvalidState)
	ErrAlreadyInRoom    = fmt.Errorf("%w: player is already in the room", ErrInvalidState)
)

// Code returns the wire code for err, "internal" when err is not one of the known kinds.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrIllegalMove):
		return "illegal_move"
	case errors.Is(err, ErrNotYourTurn):
		return "not_your_turn"
	case errors.Is(err, ErrGameFinished):
		return "game_finished"
	case errors.Is(err, ErrRoomNotFound):
		return "room_not_found"
	case errors.Is(err, ErrRoomFull):
		return "room_full"
	case errors.Is(err, ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, ErrNotInRoom):
		return "not_in_room"
	case errors.Is(err, ErrBadRequest):
		return "bad_request"
	default:
		return "internal"
	}
}
