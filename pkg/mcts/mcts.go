package mcts

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/IlikeChooros/go-connect4/pkg/board"
)

type TreeStats struct {
	maxdepth atomic.Int32
	size     atomic.Uint32
	cps      atomic.Uint32
	cycles   atomic.Uint32
}

// Monte Carlo Tree Search engine, builds a fresh tree on every decision.
// A single MCTS must not run two searches at once, use separate instances instead.
type MCTS struct {
	TreeStats
	Limiter         LimiterLike
	listener        *StatsListener
	selection       SelectionLike
	strategy        StrategyLike
	bestChildPolicy BestChildPolicy
	tree            *Tree
	name            string
}

// Create new engine with custom selection and backpropagation
func NewMCTS(selection SelectionLike, strategy StrategyLike) *MCTS {
	return &MCTS{
		Limiter:         LimiterLike(NewLimiter()),
		listener:        &StatsListener{nCycles: 1},
		selection:       selection,
		strategy:        strategy,
		bestChildPolicy: BestChildWinRate,
	}
}

// UCB1 engine with given limits, nil means DefaultLimits
func New(limits *Limits) *MCTS {
	mcts := NewMCTS(NewUCB1(ExplorationParam), DefaultBackprop{})
	mcts.SetLimits(limits)
	return mcts
}

func (mcts *MCTS) Name() string {
	if mcts.name != "" {
		return mcts.name
	}
	return "mcts"
}

// Name reported to the arena and game records
func (mcts *MCTS) SetName(name string) *MCTS {
	mcts.name = name
	return mcts
}

func (mcts *MCTS) invokeListener(f ListenerFunc) {
	if f != nil {
		f(toListenerStats(mcts))
	}
}

func (mcts *MCTS) ResetListener() {
	mcts.listener.OnCycle(nil).OnDepth(nil).OnStop(nil)
}

func (mcts *MCTS) StatsListener() *StatsListener {
	return mcts.listener
}

func (mcts *MCTS) SetListener(listener StatsListener) {
	*mcts.listener = listener
}

// Adds custom context to the limiter, enabling cancellation through it,
// the search notices it between iterations
func (mcts *MCTS) SetContext(ctx context.Context) {
	mcts.Limiter.SetContext(ctx)
}

func (mcts *MCTS) SetBestChildPolicy(policy BestChildPolicy) {
	mcts.bestChildPolicy = policy
}

func (mcts *MCTS) Selection() SelectionLike {
	return mcts.selection
}

func (mcts *MCTS) Strategy() StrategyLike {
	return mcts.strategy
}

// Stop the search, it will end after the current iteration
func (mcts *MCTS) Stop() {
	mcts.Limiter.SetStop(true)
}

// Maxiumum depth reach during the search
func (mcts *MCTS) MaxDepth() int {
	return int(mcts.maxdepth.Load())
}

// Total number of completed iterations of the last search
func (mcts *MCTS) Cycles() int {
	return int(mcts.cycles.Load())
}

// Get cycles per second statistic
func (mcts *MCTS) Cps() uint32 {
	return mcts.cps.Load()
}

// Number of nodes in the tree
func (mcts *MCTS) Size() uint32 {
	return mcts.size.Load()
}

// Get the reason why the search was stopped, valid after search ends
func (mcts *MCTS) StopReason() StopReason {
	return mcts.Limiter.StopReason()
}

func (mcts *MCTS) SetLimits(limits *Limits) {
	mcts.Limiter.SetLimits(limits)
}

func (mcts *MCTS) Limits() *Limits {
	return mcts.Limiter.Limits()
}

// Tree of the last search, nil before the first one
func (mcts *MCTS) Tree() *Tree {
	return mcts.tree
}

func (mcts *MCTS) Root() *Node {
	if mcts.tree == nil {
		return nil
	}
	return mcts.tree.Root()
}

func (mcts *MCTS) String() string {
	str := fmt.Sprintf("MCTS={Size=%d, Stats:{maxdepth=%d, cps=%d, cycles=%d}, Stop=%v",
		mcts.Size(), mcts.MaxDepth(), mcts.Cps(), mcts.Cycles(), mcts.StopReason())
	if root := mcts.Root(); root != nil {
		str += fmt.Sprintf(", Root=%v", root)
	}
	return str + "}"
}

// Return best root child, based on the policy, nil if the root has no children
func (mcts *MCTS) BestChild(policy BestChildPolicy) *Node {
	if mcts.tree == nil {
		return nil
	}

	var bestChild *Node
	root := mcts.tree.Root()

	switch policy {
	case BestChildMostVisits:
		maxVisits := int32(-1)
		for _, id := range root.Children {
			child := mcts.tree.Node(id)
			if child.Visits > maxVisits {
				maxVisits = child.Visits
				bestChild = child
			}
		}
	default:
		bestWinRate := -1.0
		for _, id := range root.Children {
			child := mcts.tree.Node(id)
			if winRate := child.WinRate(); winRate > bestWinRate {
				bestWinRate = winRate
				bestChild = child
			}
		}
	}

	return bestChild
}

// 'the best move' in the position of the last search, -1 if there was none
func (mcts *MCTS) RootMove() int {
	if bestChild := mcts.BestChild(mcts.bestChildPolicy); bestChild != nil {
		return bestChild.Move
	}
	if root := mcts.Root(); root != nil && len(root.Untried) > 0 {
		// Budget ran out before any expansion
		return minMove(root.Untried)
	}
	return -1
}

// Agent contract, the player to move is inferred from the board,
// and only the 'legal' columns are considered at the root
func (mcts *MCTS) ChooseMove(b board.Board, legal []int) (int, error) {
	return mcts.search(b, b.Turn(), legal)
}

func minMove(moves []int) int {
	m := moves[0]
	for _, mv := range moves[1:] {
		m = min(m, mv)
	}
	return m
}
