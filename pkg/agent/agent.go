package agent

import (
	"github.com/IlikeChooros/go-connect4/pkg/board"
	"github.com/pkg/errors"
)

var ErrNoLegalMove = errors.New("no legal move")

// Single capability every engine provides, the controller
// swaps engines through this interface only
type Agent interface {
	// Choose one of the 'legal' columns for the player to move on 'b'
	ChooseMove(b board.Board, legal []int) (int, error)
	Name() string
}

// Agents that learn from observed transitions, called by the turn driver
// after the learner's own move was applied
type Learner interface {
	Agent
	Observe(prev board.Board, action int, reward float64, next board.Board, terminal bool)
}

func Contains(legal []int, col int) bool {
	for _, c := range legal {
		if c == col {
			return true
		}
	}
	return false
}
