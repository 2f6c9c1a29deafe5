package board

const (
	Rows      = 6
	Columns   = 7
	WinLength = 4

	// Column rewarded by the minimax heuristic
	CenterColumn = 3
)

type Cell uint8

const (
	Empty   Cell = 0
	PlayerA Cell = 1
	PlayerB Cell = 2
)

// Returns the other player, Empty stays Empty
func (c Cell) Opponent() Cell {
	switch c {
	case PlayerA:
		return PlayerB
	case PlayerB:
		return PlayerA
	}
	return Empty
}

func (c Cell) String() string {
	switch c {
	case PlayerA:
		return "A"
	case PlayerB:
		return "B"
	}
	return "-"
}

type Status uint8

const (
	InProgress Status = iota
	Win
	Draw
)

func (s Status) String() string {
	switch s {
	case Win:
		return "Win"
	case Draw:
		return "Draw"
	}
	return "InProgress"
}

// Result of the game on a given board, Winner is set only for Status == Win
type Outcome struct {
	Status Status
	Winner Cell
}

func (o Outcome) Terminal() bool {
	return o.Status != InProgress
}

func (o Outcome) String() string {
	if o.Status == Win {
		return "Win(" + o.Winner.String() + ")"
	}
	return o.Status.String()
}
