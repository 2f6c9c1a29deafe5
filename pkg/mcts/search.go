package mcts

import (
	"math/rand"

	"github.com/IlikeChooros/go-connect4/pkg/agent"
	"github.com/IlikeChooros/go-connect4/pkg/board"
	_ "github.com/IlikeChooros/go-connect4/pkg/logging"
	"github.com/rs/zerolog/log"
)

// Runs the search from 'b' with 'player' to move, until the limits are reached
// and returns the best column. The tree is kept until the next search for inspection.
func (mcts *MCTS) Search(b board.Board, player board.Cell) (int, error) {
	return mcts.search(b, player, b.LegalMoves())
}

func (mcts *MCTS) search(b board.Board, player board.Cell, moves []int) (int, error) {
	rootMoves := make([]int, 0, len(moves))
	for _, m := range moves {
		if b.IsLegal(m) {
			rootMoves = append(rootMoves, m)
		}
	}

	if len(rootMoves) == 0 || b.Outcome().Terminal() {
		return -1, agent.ErrNoLegalMove
	}

	mcts.setupSearch(b, player)
	mcts.tree.Root().Untried = rootMoves
	mcts.run(rand.New(rand.NewSource(SeedGeneratorFn())))

	move := mcts.RootMove()
	log.Debug().
		Str("player", player.String()).
		Int("move", move).
		Int("cycles", mcts.Cycles()).
		Uint32("size", mcts.Size()).
		Int("maxdepth", mcts.MaxDepth()).
		Uint32("cps", mcts.Cps()).
		Stringer("stop", mcts.StopReason()).
		Msg("mcts decision")
	return move, nil
}

// This function only resets the limiter, the counters and creates the new tree,
// doesn't actually start the search
func (mcts *MCTS) setupSearch(b board.Board, player board.Cell) {
	mcts.Limiter.Reset()
	mcts.tree = NewTree(b, player)
	mcts.cps.Store(0)
	mcts.cycles.Store(0)
	mcts.maxdepth.Store(0)
	mcts.size.Store(1)
}

// Actual search loop, each iteration does:
//
// 1. selection - descend to the most promising node, expanding one new child
//
// 2. rollout - play random moves until the game ends
//
// 3. backpropagate - increment counters up to the root
//
// The limits are checked only between iterations.
func (mcts *MCTS) run(r *rand.Rand) {
	for mcts.Limiter.Ok(mcts.Size(), uint32(mcts.MaxDepth()), uint32(mcts.Cycles())) {
		leaf := mcts.Select(r)
		winner := Rollout(mcts.tree.Node(leaf), r)
		mcts.strategy.Backpropagate(mcts.tree, leaf, winner)

		// Increment cycle count and store the cps
		mcts.cycles.Add(1)
		mcts.cps.Store(uint32(mcts.Cycles()) * 1000 / mcts.Limiter.Elapsed())
		mcts.listener.invokeCycle(mcts)
	}

	mcts.Limiter.EvaluateStopReason(mcts.Size(), uint32(mcts.MaxDepth()), uint32(mcts.Cycles()))
	mcts.invokeListener(mcts.listener.onStop)
}

// Descends from the root while nodes are fully expanded and non-terminal,
// then expands one untried move of the reached node (if the tree may grow)
func (mcts *MCTS) Select(r *rand.Rand) NodeID {
	tree := mcts.tree
	id := NodeID(0)

	for node := tree.Node(id); node.FullyExpanded() && !node.Terminal(); node = tree.Node(id) {
		id = mcts.selection.Select(tree, id)
	}

	if node := tree.Node(id); !node.Terminal() && !node.FullyExpanded() && mcts.Limiter.Expand() {
		id = tree.Expand(id, r)
		mcts.size.Store(uint32(tree.Size()))

		// Set the 'max depth'
		if depth := int32(tree.MaxDepth()); depth > mcts.maxdepth.Load() {
			mcts.maxdepth.Store(depth)
			mcts.invokeListener(mcts.listener.onDepth)
		}
	}

	return id
}

// Plays uniformly random moves from the node's board until the game ends,
// returns the winner or board.Empty on a draw
func Rollout(node *Node, r *rand.Rand) board.Cell {
	b := node.Board
	turn := node.Turn
	outcome := node.Outcome

	for !outcome.Terminal() {
		moves := b.LegalMoves()
		b, _ = b.Apply(moves[r.Intn(len(moves))], turn)
		turn = turn.Opponent()
		outcome = b.Outcome()
	}

	return outcome.Winner
}
