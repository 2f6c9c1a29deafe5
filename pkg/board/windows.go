package board

type Square struct {
	Row, Col int
}

// Four consecutive squares, in one of the 4 orientations
type Window [WinLength]Square

// 24 horizontal + 21 vertical + 12 diagonal + 12 anti-diagonal
const NumWindows = 69

// Every 4-length window on the board, computed once
var Windows = generateWindows()

func generateWindows() [NumWindows]Window {
	var windows [NumWindows]Window
	n := 0
	add := func(row, col, dr, dc int) {
		for i := range WinLength {
			windows[n][i] = Square{Row: row + i*dr, Col: col + i*dc}
		}
		n++
	}

	// horizontal
	for row := 0; row < Rows; row++ {
		for col := 0; col+WinLength <= Columns; col++ {
			add(row, col, 0, 1)
		}
	}

	// vertical
	for col := 0; col < Columns; col++ {
		for row := 0; row+WinLength <= Rows; row++ {
			add(row, col, 1, 0)
		}
	}

	// rising (bottom-left to top-right)
	for row := WinLength - 1; row < Rows; row++ {
		for col := 0; col+WinLength <= Columns; col++ {
			add(row, col, -1, 1)
		}
	}

	// falling (top-left to bottom-right)
	for row := 0; row+WinLength <= Rows; row++ {
		for col := 0; col+WinLength <= Columns; col++ {
			add(row, col, 1, 1)
		}
	}

	if n != NumWindows {
		panic("board: window count mismatch")
	}
	return windows
}

// Cells of the board covered by the window
func (b *Board) Window(w *Window) [WinLength]Cell {
	var cells [WinLength]Cell
	for i, sq := range w {
		cells[i] = b[sq.Row][sq.Col]
	}
	return cells
}

// Counts pieces of 'player' and empty cells in the window
func (b *Board) CountWindow(w *Window, player Cell) (own, empty int) {
	for _, sq := range w {
		switch b[sq.Row][sq.Col] {
		case player:
			own++
		case Empty:
			empty++
		}
	}
	return own, empty
}
