package minimax

import (
	"math"
	"time"

	"github.com/IlikeChooros/go-connect4/pkg/agent"
	"github.com/IlikeChooros/go-connect4/pkg/board"
	_ "github.com/IlikeChooros/go-connect4/pkg/logging"
	"github.com/rs/zerolog/log"
)

const DefaultDepth = 5

// Depth-bounded adversarial search with alpha-beta pruning. The result is a pure
// function of (board, player, depth), there is no randomness involved.
type Engine struct {
	depth   int
	pruning bool
	nodes   int
}

func New(depth int) *Engine {
	if depth < 1 {
		depth = 1
	}
	return &Engine{depth: depth, pruning: true}
}

func (e *Engine) Name() string {
	return "minimax"
}

func (e *Engine) Depth() int {
	return e.depth
}

// Enable or disable alpha-beta cutoffs, the chosen move is the same either way
func (e *Engine) SetPruning(pruning bool) *Engine {
	e.pruning = pruning
	return e
}

// Number of nodes visited during the last search
func (e *Engine) Nodes() int {
	return e.nodes
}

func (e *Engine) ChooseMove(b board.Board, legal []int) (int, error) {
	return e.search(&b, b.Turn(), legal)
}

// Best column for 'player' on 'b'
func (e *Engine) BestMove(b board.Board, player board.Cell) (int, error) {
	return e.search(&b, player, b.LegalMoves())
}

func (e *Engine) search(b *board.Board, player board.Cell, moves []int) (int, error) {
	if len(moves) == 0 {
		return -1, agent.ErrNoLegalMove
	}

	start := time.Now()
	e.nodes = 0
	alpha, beta := math.MinInt, math.MaxInt
	bestScore := math.MinInt
	bestMove := -1

	for _, move := range moves {
		child, err := b.Apply(move, player)
		if err != nil {
			return -1, err
		}

		score := e.minimax(&child, 1, alpha, beta, false, player)
		// Strict comparison keeps the lowest column among equal scores
		if score > bestScore {
			bestScore = score
			bestMove = move
		}

		if e.pruning {
			alpha = max(alpha, bestScore)
		}
	}

	log.Debug().
		Str("player", player.String()).
		Int("depth", e.depth).
		Int("move", bestMove).
		Int("score", bestScore).
		Int("nodes", e.nodes).
		Dur("elapsed", time.Since(start)).
		Msg("minimax decision")

	return bestMove, nil
}

func (e *Engine) minimax(b *board.Board, depth, alpha, beta int, maximizing bool, player board.Cell) int {
	e.nodes++
	if depth == e.depth || b.Outcome().Terminal() {
		return Evaluate(b, player, depth)
	}

	mover := player
	if !maximizing {
		mover = player.Opponent()
	}

	if maximizing {
		best := math.MinInt
		for _, move := range b.LegalMoves() {
			child, _ := b.Apply(move, mover)
			best = max(best, e.minimax(&child, depth+1, alpha, beta, false, player))
			if e.pruning {
				alpha = max(alpha, best)
				if beta <= alpha {
					break
				}
			}
		}
		return best
	}

	best := math.MaxInt
	for _, move := range b.LegalMoves() {
		child, _ := b.Apply(move, mover)
		best = min(best, e.minimax(&child, depth+1, alpha, beta, true, player))
		if e.pruning {
			beta = min(beta, best)
			if beta <= alpha {
				break
			}
		}
	}
	return best
}
