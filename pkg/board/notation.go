package board

import (
	"strings"

	"github.com/pkg/errors"
)

var ErrInvalidNotation = errors.New("invalid notation")

const (
	emptySymbol   = '.'
	playerASymbol = 'x'
	playerBSymbol = 'o'
)

// Empty board in the notation
var StartingPosition = New().Notation()

// Rows from top to bottom separated by '/', '.' is empty, 'x' is PlayerA and 'o' is PlayerB.
// Example: "......./......./......./......./......./...x..."
func (b Board) Notation() string {
	builder := strings.Builder{}
	builder.Grow(Rows*Columns + Rows - 1)

	for row := 0; row < Rows; row++ {
		if row > 0 {
			builder.WriteByte('/')
		}
		for col := 0; col < Columns; col++ {
			switch b[row][col] {
			case PlayerA:
				builder.WriteByte(playerASymbol)
			case PlayerB:
				builder.WriteByte(playerBSymbol)
			default:
				builder.WriteByte(emptySymbol)
			}
		}
	}
	return builder.String()
}

// Parse the notation, rejects boards where a piece floats above an empty cell
func FromNotation(notation string) (Board, error) {
	var b Board
	rows := strings.Split(strings.TrimSpace(notation), "/")
	if len(rows) != Rows {
		return b, errors.Wrapf(ErrInvalidNotation, "expected %d rows, got %d", Rows, len(rows))
	}

	for row, line := range rows {
		if len(line) != Columns {
			return b, errors.Wrapf(ErrInvalidNotation, "row %d: expected %d cells, got %d", row, Columns, len(line))
		}
		for col := 0; col < Columns; col++ {
			switch line[col] {
			case emptySymbol:
				b[row][col] = Empty
			case playerASymbol, 'X':
				b[row][col] = PlayerA
			case playerBSymbol, 'O':
				b[row][col] = PlayerB
			default:
				return b, errors.Wrapf(ErrInvalidNotation, "row %d: unknown symbol %q", row, line[col])
			}
		}
	}

	for col := 0; col < Columns; col++ {
		for row := 0; row < Rows-1; row++ {
			if b[row][col] != Empty && b[row+1][col] == Empty {
				return b, errors.Wrapf(ErrInvalidNotation, "floating piece at row %d column %d", row, col)
			}
		}
	}

	return b, nil
}
