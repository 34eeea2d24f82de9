package gomoku

import (
	"fmt"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

// WinLength - stones in an unbroken line needed to win. Longer lines win too.
const WinLength = 5

// axes through a cell: horizontal, vertical, diagonal, anti-diagonal.
var axes = [4][2]int{
	{0, 1},
	{1, 0},
	{1, 1},
	{1, -1},
}

// MakeMove - places slot's stone and settles the game state after it.
func MakeMove(room *entity.Room, slot, row, col int) error {
	if err := validateMove(room, slot); err != nil {
		return err
	}

	if err := room.Board.Place(row, col, slot); err != nil {
		return fmt.Errorf("invalid move: %w", err)
	}

	room.Moves++
	updateGameStatus(room, slot, row, col)

	return nil
}

// validateMove - checks the room accepts a move from slot.
func validateMove(room *entity.Room, slot int) error {
	switch {
	case room.IsFinished():
		return apperror.ErrGameFinished
	case !room.IsPlaying():
		return apperror.ErrGameIsNotStarted
	case room.Player(slot) == nil:
		return apperror.ErrNotInRoom
	case room.CurrentPlayer != slot:
		return apperror.ErrNotYourTurn
	}

	return nil
}

func updateGameStatus(room *entity.Room, slot, row, col int) {
	switch {
	case CheckWin(&room.Board, row, col, slot):
		room.Winner = slot
		room.Status = entity.StatusFinished
	case room.Board.IsFull():
		room.Winner = entity.NoWinner
		room.Status = entity.StatusFinished
	default:
		room.CurrentPlayer = entity.Opponent(slot)
	}
}

// CheckWin - reports whether the stone at (row, col) completes a line of WinLength or more.
func CheckWin(board *entity.Board, row, col, player int) bool {
	if !entity.InBounds(row, col) || board[row][col] != player {
		return false
	}

	for _, axis := range axes {
		count := 1 + countStones(board, row, col, axis[0], axis[1], player) +
			countStones(board, row, col, -axis[0], -axis[1], player)

		if count >= WinLength {
			return true
		}
	}

	return false
}

// countStones - consecutive player stones from (row, col) exclusive, walking by (dr, dc).
func countStones(board *entity.Board, row, col, dr, dc, player int) int {
	count := 0

	for r, c := row+dr, col+dc; entity.InBounds(r, c) && board[r][c] == player; r, c = r+dr, c+dc {
		count++
	}

	return count
}
