package entity

import (
	"fmt"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
)

const BoardSize = 15

const (
	EmptyCell   = 0
	PlayerBlack = 1
	PlayerWhite = 2
)

// Board - square grid, serialized as nested rows of 0/1/2.
type Board [BoardSize][BoardSize]int

func (that *Board) Reset() {
	*that = Board{}
}

// Place - puts player's stone on an empty cell inside the board.
func (that *Board) Place(row, col, player int) error {
	if !InBounds(row, col) {
		return fmt.Errorf("%w: row %d col %d", apperror.ErrOutOfBoard, row, col)
	}

	if that[row][col] != EmptyCell {
		return fmt.Errorf("%w: row %d col %d", apperror.ErrCellOccupied, row, col)
	}

	that[row][col] = player

	return nil
}

func (that *Board) IsFull() bool {
	for _, line := range that {
		for _, cell := range line {
			if cell == EmptyCell {
				return false
			}
		}
	}

	return true
}

func (that *Board) IsEmpty() bool {
	return *that == Board{}
}

func InBounds(row, col int) bool {
	return row >= 0 && row < BoardSize && col >= 0 && col < BoardSize
}
