package board

import (
	"github.com/pkg/errors"
)

var ErrInvalidMove = errors.New("invalid move")

// 6x7 grid, row 0 is the top of the board. Board is a value type,
// so every copy is independent from the original.
type Board [Rows][Columns]Cell

func New() Board {
	return Board{}
}

// Column can be played if its top cell is empty
func (b Board) IsLegal(col int) bool {
	return col >= 0 && col < Columns && b[0][col] == Empty
}

// Legal columns in ascending order
func (b Board) LegalMoves() []int {
	moves := make([]int, 0, Columns)
	for col := 0; col < Columns; col++ {
		if b[0][col] == Empty {
			moves = append(moves, col)
		}
	}
	return moves
}

// Returns a new board with 'player' piece dropped to the lowest empty row of 'col',
// the receiver is left unchanged
func (b Board) Apply(col int, player Cell) (Board, error) {
	if col < 0 || col >= Columns {
		return b, errors.Wrapf(ErrInvalidMove, "column %d out of range", col)
	}
	if player != PlayerA && player != PlayerB {
		return b, errors.Wrapf(ErrInvalidMove, "cannot drop %v piece", player)
	}

	row := b.dropRow(col)
	if row < 0 {
		return b, errors.Wrapf(ErrInvalidMove, "column %d is full", col)
	}

	b[row][col] = player
	return b, nil
}

// Lowest empty row of the column, -1 if full
func (b *Board) dropRow(col int) int {
	for row := Rows - 1; row >= 0; row-- {
		if b[row][col] == Empty {
			return row
		}
	}
	return -1
}

// Number of pieces of given player
func (b Board) Count(player Cell) int {
	n := 0
	for row := range b {
		for col := range b[row] {
			if b[row][col] == player {
				n++
			}
		}
	}
	return n
}

// Player to move, inferred from the piece counts. PlayerA always starts.
func (b Board) Turn() Cell {
	if b.Count(PlayerA) <= b.Count(PlayerB) {
		return PlayerA
	}
	return PlayerB
}

func (b Board) IsFull() bool {
	for col := 0; col < Columns; col++ {
		if b[0][col] == Empty {
			return false
		}
	}
	return true
}

// Checks every window exactly once for four equal pieces,
// a full board without one is a draw
func (b Board) Outcome() Outcome {
	for i := range Windows {
		w := &Windows[i]
		first := b[w[0].Row][w[0].Col]
		if first == Empty {
			continue
		}

		if b[w[1].Row][w[1].Col] == first &&
			b[w[2].Row][w[2].Col] == first &&
			b[w[3].Row][w[3].Col] == first {
			return Outcome{Status: Win, Winner: first}
		}
	}

	if b.IsFull() {
		return Outcome{Status: Draw}
	}
	return Outcome{Status: InProgress}
}
