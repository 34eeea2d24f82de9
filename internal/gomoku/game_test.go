package gomoku

import (
	"testing"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGame(t *testing.T) *entity.Room {
	t.Helper()

	room := entity.NewRoom("ABCD1234", &entity.Player{ID: "p1", Name: "alice"})
	_, err := room.Join(&entity.Player{ID: "p2", Name: "bob"})
	require.NoError(t, err)

	return room
}

// playMoves - alternates black and white through moves, black first.
func playMoves(t *testing.T, room *entity.Room, moves [][2]int) {
	t.Helper()

	for i, move := range moves {
		slot := entity.PlayerBlack
		if i%2 == 1 {
			slot = entity.PlayerWhite
		}

		require.NoError(t, MakeMove(room, slot, move[0], move[1]))
	}
}

func TestMakeMove(t *testing.T) {
	t.Run("Accepted move passes the turn", func(t *testing.T) {
		// Given: a fresh game
		room := newGame(t)

		// When: black plays the center
		err := MakeMove(room, entity.PlayerBlack, 7, 7)

		// Then: the stone is placed and it is white's turn
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerBlack, room.Board[7][7])
		assert.Equal(t, entity.PlayerWhite, room.CurrentPlayer)
		assert.Equal(t, 1, room.Moves)
		assert.Equal(t, entity.StatusPlaying, room.Status)
	})

	t.Run("Turn alternates strictly", func(t *testing.T) {
		// Given: a fresh game
		room := newGame(t)

		moves := [][2]int{{0, 0}, {14, 14}, {0, 2}, {14, 12}, {0, 4}, {14, 10}}
		for i, move := range moves {
			mover := room.CurrentPlayer

			// When: the player to move plays
			require.NoError(t, MakeMove(room, mover, move[0], move[1]))

			// Then: the other slot is to move
			assert.Equal(t, entity.Opponent(mover), room.CurrentPlayer, "move %d", i)
		}
	})

	t.Run("Error on playing out of turn", func(t *testing.T) {
		// Given: a fresh game where black is to move
		room := newGame(t)

		// When: white moves
		err := MakeMove(room, entity.PlayerWhite, 7, 7)

		// Then: it is not white's turn and nothing changed
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.True(t, room.Board.IsEmpty())
		assert.Equal(t, entity.PlayerBlack, room.CurrentPlayer)
	})

	t.Run("Error on occupied cell", func(t *testing.T) {
		// Given: black holds the center
		room := newGame(t)
		playMoves(t, room, [][2]int{{7, 7}})

		// When: white plays the same cell
		err := MakeMove(room, entity.PlayerWhite, 7, 7)

		// Then: the move is illegal and the turn stays with white
		require.ErrorIs(t, err, apperror.ErrIllegalMove)
		assert.Equal(t, entity.PlayerBlack, room.Board[7][7])
		assert.Equal(t, entity.PlayerWhite, room.CurrentPlayer)
	})

	t.Run("Error on cell outside the board", func(t *testing.T) {
		// Given: a fresh game
		room := newGame(t)

		// When: black plays outside the grid
		err := MakeMove(room, entity.PlayerBlack, 15, 0)

		// Then: the move is illegal
		require.ErrorIs(t, err, apperror.ErrIllegalMove)
		assert.Zero(t, room.Moves)
	})

	t.Run("Error while waiting for the second player", func(t *testing.T) {
		// Given: a room with only the creator
		room := entity.NewRoom("ABCD1234", &entity.Player{ID: "p1", Name: "alice"})

		// When: the creator plays
		err := MakeMove(room, entity.PlayerBlack, 7, 7)

		// Then: the game is not started
		require.ErrorIs(t, err, apperror.ErrGameIsNotStarted)
	})

	t.Run("Winning move finishes the game", func(t *testing.T) {
		// Given: black has four in row 5 (cols 3-6)
		room := newGame(t)
		playMoves(t, room, [][2]int{{5, 3}, {6, 3}, {5, 4}, {6, 4}, {5, 5}, {6, 5}, {5, 6}, {6, 6}})

		// When: black completes col 7
		err := MakeMove(room, entity.PlayerBlack, 5, 7)

		// Then: black wins and the turn does not pass
		require.NoError(t, err)
		assert.Equal(t, entity.StatusFinished, room.Status)
		assert.Equal(t, entity.PlayerBlack, room.Winner)
		assert.Equal(t, entity.PlayerBlack, room.CurrentPlayer)
	})

	t.Run("Error on any move after the game finished", func(t *testing.T) {
		// Given: black has won
		room := newGame(t)
		playMoves(t, room, [][2]int{{5, 3}, {6, 3}, {5, 4}, {6, 4}, {5, 5}, {6, 5}, {5, 6}, {6, 6}, {5, 7}})

		for _, slot := range []int{entity.PlayerBlack, entity.PlayerWhite} {
			// When: either player moves
			err := MakeMove(room, slot, 10, 10)

			// Then: the game is finished
			require.ErrorIs(t, err, apperror.ErrGameFinished)
		}

		assert.Equal(t, entity.EmptyCell, room.Board[10][10])
	})

	t.Run("Full board without a line is a draw", func(t *testing.T) {
		// Given: a board full except for one cell, without any line of five
		room := newGame(t)
		fillWithoutLines(&room.Board)
		room.Board[14][14] = entity.EmptyCell
		room.CurrentPlayer = entity.PlayerBlack

		// When: the last cell is played
		err := MakeMove(room, entity.PlayerBlack, 14, 14)

		// Then: the game ends with no winner
		require.NoError(t, err)
		assert.True(t, room.IsDraw())
		assert.Equal(t, entity.NoWinner, room.Winner)
	})
}

// fillWithoutLines - fills the board with a pattern without five of a kind on any axis.
func fillWithoutLines(board *entity.Board) {
	for row := range entity.BoardSize {
		for col := range entity.BoardSize {
			if ((col+2*row)/2)%2 == 0 {
				board[row][col] = entity.PlayerBlack
			} else {
				board[row][col] = entity.PlayerWhite
			}
		}
	}
}

func TestCheckWin(t *testing.T) {
	lines := map[string][5][2]int{
		"horizontal":    {{5, 3}, {5, 4}, {5, 5}, {5, 6}, {5, 7}},
		"vertical":      {{2, 9}, {3, 9}, {4, 9}, {5, 9}, {6, 9}},
		"diagonal":      {{10, 10}, {11, 11}, {12, 12}, {13, 13}, {14, 14}},
		"anti-diagonal": {{0, 14}, {1, 13}, {2, 12}, {3, 11}, {4, 10}},
	}

	for name, line := range lines {
		t.Run("Five on the "+name+" axis wins from any stone of the line", func(t *testing.T) {
			// Given: five white stones on one axis
			var board entity.Board
			for _, cell := range line {
				board[cell[0]][cell[1]] = entity.PlayerWhite
			}

			for _, cell := range line {
				// When: checking through any stone of the line
				won := CheckWin(&board, cell[0], cell[1], entity.PlayerWhite)

				// Then: white wins
				assert.True(t, won)
			}

			// And: black does not
			assert.False(t, CheckWin(&board, line[0][0], line[0][1], entity.PlayerBlack))
		})
	}

	t.Run("Four in a row does not win", func(t *testing.T) {
		// Given: four black stones in a row
		var board entity.Board
		for col := 3; col < 7; col++ {
			board[5][col] = entity.PlayerBlack
		}

		// When / Then: no win
		assert.False(t, CheckWin(&board, 5, 6, entity.PlayerBlack))
	})

	t.Run("Broken line does not win", func(t *testing.T) {
		// Given: five black stones with a white one in the middle
		var board entity.Board
		for col := 0; col < 6; col++ {
			board[0][col] = entity.PlayerBlack
		}
		board[0][2] = entity.PlayerWhite

		// When / Then: no win through either side
		assert.False(t, CheckWin(&board, 0, 0, entity.PlayerBlack))
		assert.False(t, CheckWin(&board, 0, 5, entity.PlayerBlack))
	})

	t.Run("Overline wins", func(t *testing.T) {
		// Given: six black stones in a column
		var board entity.Board
		for row := 4; row < 10; row++ {
			board[row][2] = entity.PlayerBlack
		}

		// When / Then: six in a row counts
		assert.True(t, CheckWin(&board, 6, 2, entity.PlayerBlack))
	})

	t.Run("Line along the board edge wins", func(t *testing.T) {
		// Given: five black stones ending in the corner
		var board entity.Board
		for col := 10; col < entity.BoardSize; col++ {
			board[14][col] = entity.PlayerBlack
		}

		// When / Then: the edge does not break the count
		assert.True(t, CheckWin(&board, 14, 14, entity.PlayerBlack))
	})

	t.Run("Coordinates outside the board never win", func(t *testing.T) {
		var board entity.Board

		assert.False(t, CheckWin(&board, -1, 3, entity.PlayerBlack))
		assert.False(t, CheckWin(&board, 3, entity.BoardSize, entity.PlayerBlack))
	})
}
