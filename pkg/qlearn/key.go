package qlearn

import (
	"strconv"
	"strings"

	"github.com/IlikeChooros/go-connect4/pkg/board"
)

// Maps a board to its Q-table state key
type KeyFunc func(b board.Board) string

// Textual form of the board, rows top to bottom, for example
// "[[0, 0, 0, 0, 0, 0, 0], ..., [0, 0, 0, 1, 2, 0, 0]]". Existing
// Q-table files are keyed this way.
func CanonicalKey(b board.Board) string {
	var sb strings.Builder
	sb.Grow(board.Rows * (3*board.Columns + 2))

	sb.WriteByte('[')
	for r := 0; r < board.Rows; r++ {
		if r > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('[')
		for c := 0; c < board.Columns; c++ {
			if c > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(strconv.Itoa(int(b[r][c])))
		}
		sb.WriteByte(']')
	}
	sb.WriteByte(']')
	return sb.String()
}

// Compact alternative, the board notation
func NotationKey(b board.Board) string {
	return b.Notation()
}
