package entity

import (
	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
)

const (
	StatusWaiting  = "waiting"
	StatusPlaying  = "playing"
	StatusFinished = "finished"
	StatusClosed   = "closed"
)

const NoWinner = 0

// Room - one game instance. Players[0] is slot 1 (black), Players[1] is slot 2 (white).
type Room struct {
	ID            string     `json:"id"`
	Board         Board      `json:"board"`
	Players       [2]*Player `json:"players"`
	CurrentPlayer int        `json:"current_player"`
	Winner        int        `json:"winner"`
	Status        string     `json:"status"`
	Moves         int        `json:"moves"`
	Revision      int64      `json:"revision"`
}

func NewRoom(id string, creator *Player) *Room {
	return &Room{
		ID:            id,
		Players:       [2]*Player{creator, nil},
		CurrentPlayer: PlayerBlack,
		Winner:        NoWinner,
		Status:        StatusWaiting,
	}
}

// Join - seats player in the vacant slot and starts a fresh game.
func (that *Room) Join(player *Player) (int, error) {
	if that.IsClosed() {
		return 0, apperror.ErrRoomNotFound
	}

	if that.SlotOf(player.ID) != 0 {
		return 0, apperror.ErrAlreadyInRoom
	}

	slot := that.vacantSlot()
	if slot == 0 {
		return 0, apperror.ErrRoomFull
	}

	that.Players[slot-1] = player
	that.resetGame()

	return slot, nil
}

// Restart - clears the board of a finished game, players keep their slots.
func (that *Room) Restart(slot int) error {
	if that.Player(slot) == nil {
		return apperror.ErrNotInRoom
	}

	if !that.IsFinished() {
		return apperror.ErrGameNotFinished
	}

	that.resetGame()

	return nil
}

// Vacate - frees slot and returns the player still seated, if any.
func (that *Room) Vacate(slot int) *Player {
	if that.Player(slot) == nil {
		return nil
	}

	that.Players[slot-1] = nil

	opponent := that.Player(Opponent(slot))
	if opponent == nil {
		that.Status = StatusClosed
		return nil
	}

	that.Status = StatusWaiting

	return opponent
}

// SlotOf - returns the slot held by playerID, 0 when the player is not seated.
func (that *Room) SlotOf(playerID string) int {
	for i, player := range that.Players {
		if player != nil && player.ID == playerID {
			return i + 1
		}
	}

	return 0
}

func (that *Room) Player(slot int) *Player {
	if slot != PlayerBlack && slot != PlayerWhite {
		return nil
	}

	return that.Players[slot-1]
}

func (that *Room) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Room) IsPlaying() bool {
	return that.Status == StatusPlaying
}

func (that *Room) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Room) IsClosed() bool {
	return that.Status == StatusClosed
}

func (that *Room) IsDraw() bool {
	return that.IsFinished() && that.Winner == NoWinner
}

func (that *Room) vacantSlot() int {
	for i, player := range that.Players {
		if player == nil {
			return i + 1
		}
	}

	return 0
}

func (that *Room) resetGame() {
	that.Board.Reset()
	that.CurrentPlayer = PlayerBlack
	that.Winner = NoWinner
	that.Moves = 0
	that.Status = StatusPlaying
}

func Opponent(slot int) int {
	if slot == PlayerBlack {
		return PlayerWhite
	}

	return PlayerBlack
}
