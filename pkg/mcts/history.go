package mcts

import (
	"math"
	"sync"

	"github.com/IlikeChooros/go-connect4/pkg/board"
)

// Frequency of winning moves per column, recorded outside of the search
// (for example from finished games). Safe for concurrent use.
type History struct {
	mu     sync.RWMutex
	counts [board.Columns]int
	total  int
}

func NewHistory() *History {
	return &History{}
}

// Record the moves played by the winner of a game
func (h *History) Record(moves ...int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, m := range moves {
		if m >= 0 && m < board.Columns {
			h.counts[m]++
			h.total++
		}
	}
}

// Share of recorded winning moves played in 'column', in [0, 1]
func (h *History) Frequency(column int) float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.total == 0 || column < 0 || column >= board.Columns {
		return 0
	}
	return float64(h.counts[column]) / float64(h.total)
}

func (h *History) Total() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.total
}

// Weight of the history term given child visits, should be close to 1 for few visits
// and close to 0 for many
type HistoryBetaFnType func(visits int32) float64

func HistoryBetaDefault(visits int32) float64 {
	const K = 1000
	return math.Sqrt(K / (3.0*float64(visits) + K))
}

// UCB1 with a bias toward historically winning columns:
// ucb1 + weight * beta(visits) * frequency(move)
type HistoryUCB1 struct {
	UCB1
	History *History
	Weight  float64
	Beta    HistoryBetaFnType
}

func NewHistoryUCB1(explorationParam float64, history *History, weight float64) *HistoryUCB1 {
	return &HistoryUCB1{
		UCB1:    UCB1{ExplorationParam: explorationParam},
		History: history,
		Weight:  weight,
		Beta:    HistoryBetaDefault,
	}
}

func (h *HistoryUCB1) SetBetaFunction(f HistoryBetaFnType) {
	if f != nil {
		h.Beta = f
	}
}

func (h *HistoryUCB1) Select(tree *Tree, parent NodeID) NodeID {
	if h.History == nil || h.Weight == 0 {
		return h.UCB1.Select(tree, parent)
	}

	node := tree.Node(parent)
	lnParentVisits := math.Log(float64(node.Visits))
	best := math.Inf(-1)
	selected := NoNode

	for _, id := range node.Children {
		child := tree.Node(id)
		if child.Visits == 0 {
			return id
		}

		score := h.UCB1.Score(child, lnParentVisits) +
			h.Weight*h.Beta(child.Visits)*h.History.Frequency(child.Move)
		if score > best {
			best = score
			selected = id
		}
	}

	return selected
}
