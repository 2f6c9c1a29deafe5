package agent

import (
	"math/rand"

	"github.com/IlikeChooros/go-connect4/pkg/board"
)

// Plays a uniformly random legal column
type Random struct {
	rand *rand.Rand
}

func NewRandom(seed int64) *Random {
	return &Random{rand: rand.New(rand.NewSource(seed))}
}

func (r *Random) Name() string {
	return "random"
}

func (r *Random) ChooseMove(_ board.Board, legal []int) (int, error) {
	if len(legal) == 0 {
		return -1, ErrNoLegalMove
	}
	return legal[r.rand.Intn(len(legal))], nil
}
