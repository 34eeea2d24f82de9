package entity

import (
	"testing"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPlayingRoom(t *testing.T) *Room {
	t.Helper()

	room := NewRoom("ABCD1234", &Player{ID: "p1", Name: "alice"})
	_, err := room.Join(&Player{ID: "p2", Name: "bob"})
	require.NoError(t, err)

	return room
}

func TestNewRoom(t *testing.T) {
	// Given: a creator
	creator := &Player{ID: "p1", Name: "alice"}

	// When: creating a room
	room := NewRoom("ABCD1234", creator)

	// Then: the room waits for a second player with the creator in slot 1
	expectedRoom := &Room{
		ID:            "ABCD1234",
		Players:       [2]*Player{creator, nil},
		CurrentPlayer: PlayerBlack,
		Winner:        NoWinner,
		Status:        StatusWaiting,
	}

	require.Equal(t, expectedRoom, room)
}

func TestRoom_Join(t *testing.T) {
	t.Run("Second player takes slot 2 and the game starts", func(t *testing.T) {
		// Given: a waiting room
		room := NewRoom("ABCD1234", &Player{ID: "p1", Name: "alice"})

		// When: another player joins
		slot, err := room.Join(&Player{ID: "p2", Name: "bob"})

		// Then: they get slot 2 and the game is on with black to move
		require.NoError(t, err)
		assert.Equal(t, PlayerWhite, slot)
		assert.Equal(t, StatusPlaying, room.Status)
		assert.Equal(t, PlayerBlack, room.CurrentPlayer)
		assert.True(t, room.Board.IsEmpty())
	})

	t.Run("Error when both slots are taken", func(t *testing.T) {
		// Given: a room with two players
		room := newPlayingRoom(t)

		// When: a third player joins
		slot, err := room.Join(&Player{ID: "p3", Name: "carol"})

		// Then: the room is full
		require.ErrorIs(t, err, apperror.ErrRoomFull)
		assert.Zero(t, slot)
	})

	t.Run("Error when the room is closed", func(t *testing.T) {
		// Given: a room whose only player left
		room := NewRoom("ABCD1234", &Player{ID: "p1", Name: "alice"})
		room.Vacate(PlayerBlack)

		// When: someone joins
		_, err := room.Join(&Player{ID: "p2", Name: "bob"})

		// Then: it behaves as if the room does not exist
		require.ErrorIs(t, err, apperror.ErrRoomNotFound)
	})

	t.Run("Error when the player is already seated", func(t *testing.T) {
		// Given: a waiting room
		room := NewRoom("ABCD1234", &Player{ID: "p1", Name: "alice"})

		// When: the creator joins their own room
		_, err := room.Join(&Player{ID: "p1", Name: "alice"})

		// Then: the request is rejected as an invalid state
		require.ErrorIs(t, err, apperror.ErrInvalidState)
	})

	t.Run("Joiner fills the vacated slot 1 and the board is reset", func(t *testing.T) {
		// Given: a game in progress whose black player left
		room := newPlayingRoom(t)
		require.NoError(t, room.Board.Place(7, 7, PlayerBlack))
		room.Vacate(PlayerBlack)

		// When: a new player joins
		slot, err := room.Join(&Player{ID: "p3", Name: "carol"})

		// Then: they sit in slot 1 and a fresh game starts
		require.NoError(t, err)
		assert.Equal(t, PlayerBlack, slot)
		assert.True(t, room.Board.IsEmpty())
		assert.Equal(t, StatusPlaying, room.Status)
	})
}

func TestRoom_Restart(t *testing.T) {
	t.Run("Restarts a finished game keeping the players", func(t *testing.T) {
		// Given: a finished game
		room := newPlayingRoom(t)
		require.NoError(t, room.Board.Place(0, 0, PlayerBlack))
		room.Status = StatusFinished
		room.Winner = PlayerBlack
		room.Moves = 9
		players := room.Players

		// When: white asks for a restart
		err := room.Restart(PlayerWhite)

		// Then: the board, turn and winner are reset
		require.NoError(t, err)
		assert.True(t, room.Board.IsEmpty())
		assert.Equal(t, PlayerBlack, room.CurrentPlayer)
		assert.Equal(t, NoWinner, room.Winner)
		assert.Zero(t, room.Moves)
		assert.Equal(t, StatusPlaying, room.Status)
		assert.Equal(t, players, room.Players)
	})

	t.Run("Error on a game still in progress", func(t *testing.T) {
		// Given: a game in progress
		room := newPlayingRoom(t)

		// When: restarting it
		err := room.Restart(PlayerBlack)

		// Then: the game is not finished
		require.ErrorIs(t, err, apperror.ErrInvalidState)
	})

	t.Run("Error for an empty slot", func(t *testing.T) {
		// Given: a waiting room
		room := NewRoom("ABCD1234", &Player{ID: "p1", Name: "alice"})
		room.Status = StatusFinished

		// When: slot 2 asks for a restart
		err := room.Restart(PlayerWhite)

		// Then: nobody sits there
		require.ErrorIs(t, err, apperror.ErrNotInRoom)
	})
}

func TestRoom_Vacate(t *testing.T) {
	t.Run("One player left keeps the room waiting", func(t *testing.T) {
		// Given: a game in progress
		room := newPlayingRoom(t)

		// When: white leaves
		opponent := room.Vacate(PlayerWhite)

		// Then: black stays and the room waits
		require.NotNil(t, opponent)
		assert.Equal(t, "p1", opponent.ID)
		assert.Equal(t, StatusWaiting, room.Status)
		assert.Nil(t, room.Player(PlayerWhite))
	})

	t.Run("Last player out closes the room", func(t *testing.T) {
		// Given: a room with one player
		room := NewRoom("ABCD1234", &Player{ID: "p1", Name: "alice"})

		// When: they leave
		opponent := room.Vacate(PlayerBlack)

		// Then: the room is closed
		assert.Nil(t, opponent)
		assert.True(t, room.IsClosed())
	})
}

func TestRoom_SlotOf(t *testing.T) {
	// Given: a full room
	room := newPlayingRoom(t)

	// When / Then: players are found in their slots
	assert.Equal(t, PlayerBlack, room.SlotOf("p1"))
	assert.Equal(t, PlayerWhite, room.SlotOf("p2"))
	assert.Zero(t, room.SlotOf("stranger"))
}

func TestRoom_PlayerViews(t *testing.T) {
	// Given: a full room
	room := newPlayingRoom(t)

	// When: building the roster
	views := room.PlayerViews()

	// Then: both players are listed in slot order
	assert.Equal(t, []PlayerView{{Number: 1, Name: "alice"}, {Number: 2, Name: "bob"}}, views)
}
