package board

import (
	"strconv"
	"strings"

	"github.com/muesli/termenv"
)

const (
	colorPlayerA = "#ff0000"
	colorPlayerB = "#ffd700"
	colorFrame   = "#1e50ff"
)

// Renders the board with colored pieces, falls back to plain
// characters when the output has no color support
func (b Board) Render(out *termenv.Output) string {
	frame := out.String("|").Foreground(out.Color(colorFrame)).String()
	builder := strings.Builder{}

	for row := 0; row < Rows; row++ {
		builder.WriteString(frame)
		for col := 0; col < Columns; col++ {
			builder.WriteString(renderCell(out, b[row][col]))
			builder.WriteString(frame)
		}
		builder.WriteByte('\n')
	}

	builder.WriteByte(' ')
	for col := 0; col < Columns; col++ {
		builder.WriteString(strconv.Itoa(col))
		builder.WriteByte(' ')
	}
	builder.WriteByte('\n')
	return builder.String()
}

func renderCell(out *termenv.Output, cell Cell) string {
	switch cell {
	case PlayerA:
		return out.String("x").Foreground(out.Color(colorPlayerA)).Bold().String()
	case PlayerB:
		return out.String("o").Foreground(out.Color(colorPlayerB)).Bold().String()
	}
	return " "
}

func (b Board) String() string {
	return b.Notation()
}
