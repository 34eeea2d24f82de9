package usecase

import (
	"fmt"
	"sync"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/gomoku"
)

// Result - room state right after an accepted operation and the events it produced.
type Result struct {
	Room   entity.Room
	Slot   int
	Events []entity.Event
}

// Session - one room; every mutation runs under the session lock.
type Session struct {
	mu     sync.Mutex
	room   *entity.Room
	notify func(events []entity.Event)

	publishMu sync.Mutex
	published int64
}

// NewSession - notify receives the events of every accepted mutation, in commit order, while the session lock is held.
func NewSession(room *entity.Room, notify func(events []entity.Event)) *Session {
	return &Session{room: room, notify: notify}
}

// Open - room_created for the creator in slot 1.
func (that *Session) Open() *Result {
	that.mu.Lock()
	defer that.mu.Unlock()

	creator := that.room.Player(entity.PlayerBlack)

	return that.commit(entity.PlayerBlack, []entity.Event{{
		Name:     entity.EventRoomCreated,
		PlayerID: creator.ID,
		Payload: entity.RoomCreatedPayload{
			RoomID:       that.room.ID,
			PlayerName:   creator.Name,
			PlayerNumber: entity.PlayerBlack,
		},
	}})
}

func (that *Session) Join(player *entity.Player) (*Result, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	slot, err := that.room.Join(player)
	if err != nil {
		return nil, err
	}

	return that.commit(slot, gameStartEvents(that.room)), nil
}

func (that *Session) MakeMove(playerID string, row, col int) (*Result, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	slot := that.room.SlotOf(playerID)
	if slot == 0 {
		return nil, apperror.ErrNotInRoom
	}

	if err := gomoku.MakeMove(that.room, slot, row, col); err != nil {
		return nil, fmt.Errorf("failed to make move: %w", err)
	}

	payload := entity.MoveMadePayload{
		Row:    row,
		Col:    col,
		Player: slot,
	}

	if that.room.IsFinished() {
		winner := that.room.Winner
		payload.Winner = &winner
		payload.Draw = that.room.IsDraw()
	} else {
		currentPlayer := that.room.CurrentPlayer
		payload.CurrentPlayer = &currentPlayer
	}

	return that.commit(slot, broadcast(that.room, entity.EventMoveMade, payload)), nil
}

func (that *Session) Restart(playerID string) (*Result, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	slot := that.room.SlotOf(playerID)
	if slot == 0 {
		return nil, apperror.ErrNotInRoom
	}

	if err := that.room.Restart(slot); err != nil {
		return nil, fmt.Errorf("failed to restart game: %w", err)
	}

	payload := entity.GameRestartedPayload{
		Board:         that.room.Board,
		CurrentPlayer: that.room.CurrentPlayer,
	}

	return that.commit(slot, broadcast(that.room, entity.EventGameRestarted, payload)), nil
}

// Leave - vacates playerID's slot and sends notice to the opponent still seated.
func (that *Session) Leave(playerID, notice string) (*Result, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	slot := that.room.SlotOf(playerID)
	if slot == 0 {
		return nil, apperror.ErrNotInRoom
	}

	var events []entity.Event
	if opponent := that.room.Vacate(slot); opponent != nil {
		events = []entity.Event{{
			Name:     notice,
			PlayerID: opponent.ID,
			Payload:  entity.EmptyPayload{},
		}}
	}

	return that.commit(slot, events), nil
}

func (that *Session) Snapshot() entity.Room {
	that.mu.Lock()
	defer that.mu.Unlock()

	return *that.room
}

// commit - bumps the room revision and hands events over before the caller releases the lock.
func (that *Session) commit(slot int, events []entity.Event) *Result {
	that.room.Revision++

	if that.notify != nil && len(events) > 0 {
		that.notify(events)
	}

	return &Result{
		Room:   *that.room,
		Slot:   slot,
		Events: events,
	}
}

// publish - passes room to write unless a later revision of it was already written.
func (that *Session) publish(room entity.Room, write func(room entity.Room)) {
	that.publishMu.Lock()
	defer that.publishMu.Unlock()

	if room.Revision <= that.published {
		return
	}

	that.published = room.Revision
	write(room)
}

// gameStartEvents - personalised game_start for each seated player.
func gameStartEvents(room *entity.Room) []entity.Event {
	events := make([]entity.Event, 0, len(room.Players))
	players := room.PlayerViews()

	for i, player := range room.Players {
		if player == nil {
			continue
		}

		events = append(events, entity.Event{
			Name:     entity.EventGameStart,
			PlayerID: player.ID,
			Payload: entity.GameStartPayload{
				RoomID:        room.ID,
				Board:         room.Board,
				CurrentPlayer: room.CurrentPlayer,
				YourNumber:    i + 1,
				Players:       players,
			},
		})
	}

	return events
}

func broadcast(room *entity.Room, name string, payload any) []entity.Event {
	events := make([]entity.Event, 0, len(room.Players))

	for _, player := range room.Players {
		if player == nil {
			continue
		}

		events = append(events, entity.Event{
			Name:     name,
			PlayerID: player.ID,
			Payload:  payload,
		})
	}

	return events
}
