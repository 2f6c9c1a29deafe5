package mcts

import (
	"fmt"
	"math/rand"

	"github.com/IlikeChooros/go-connect4/pkg/board"
)

// Index of the node in the tree's arena
type NodeID int32

const NoNode NodeID = -1

type Node struct {
	Board    board.Board
	Outcome  board.Outcome
	Move     int    // Column played to reach this node, -1 for the root
	Parent   NodeID // NoNode for the root
	Children []NodeID
	Visits   int32
	Wins     int32
	Turn     board.Cell // Player to move on this node's board
	Untried  []int      // Legal moves not expanded yet
	Depth    int32
}

// Player who made the move leading to this node, the wins are counted from its perspective
func (n *Node) Mover() board.Cell {
	return n.Turn.Opponent()
}

func (n *Node) Terminal() bool {
	return n.Outcome.Terminal()
}

func (n *Node) FullyExpanded() bool {
	return len(n.Untried) == 0
}

// wins/visits, 0 for unvisited nodes
func (n *Node) WinRate() float64 {
	if n.Visits == 0 {
		return 0
	}
	return float64(n.Wins) / float64(n.Visits)
}

func (n *Node) String() string {
	return fmt.Sprintf("Node{move=%d, visits=%d, wins=%d, turn=%v, children=%d, untried=%v}",
		n.Move, n.Visits, n.Wins, n.Turn, len(n.Children), n.Untried)
}

// Arena of nodes, each node refers to its parent and children by index,
// so the whole tree is released at once by dropping the slice
type Tree struct {
	nodes    []Node
	maxDepth int32
}

func NewTree(b board.Board, turn board.Cell) *Tree {
	tree := &Tree{nodes: make([]Node, 0, 1024)}
	tree.add(NoNode, -1, b, turn, 0)
	return tree
}

func (t *Tree) add(parent NodeID, move int, b board.Board, turn board.Cell, depth int32) NodeID {
	outcome := b.Outcome()
	var untried []int
	if !outcome.Terminal() {
		untried = b.LegalMoves()
	}

	t.nodes = append(t.nodes, Node{
		Board:   b,
		Outcome: outcome,
		Move:    move,
		Parent:  parent,
		Turn:    turn,
		Untried: untried,
		Depth:   depth,
	})
	t.maxDepth = max(t.maxDepth, depth)
	return NodeID(len(t.nodes) - 1)
}

// Pointers are valid until the next expansion
func (t *Tree) Node(id NodeID) *Node {
	return &t.nodes[id]
}

func (t *Tree) Root() *Node {
	return &t.nodes[0]
}

func (t *Tree) Size() int {
	return len(t.nodes)
}

func (t *Tree) MaxDepth() int {
	return int(t.maxDepth)
}

// Expands one untried move of 'parent', picked at random, and appends the new child.
// The move is removed from the untried list, so it's never expanded twice.
func (t *Tree) Expand(parent NodeID, r *rand.Rand) NodeID {
	node := t.Node(parent)
	if len(node.Untried) == 0 {
		return parent
	}

	i := r.Intn(len(node.Untried))
	move := node.Untried[i]
	last := len(node.Untried) - 1
	node.Untried[i] = node.Untried[last]
	node.Untried = node.Untried[:last]

	child, err := node.Board.Apply(move, node.Turn)
	if err != nil {
		// Untried moves are always legal
		panic(err)
	}

	id := t.add(parent, move, child, node.Turn.Opponent(), node.Depth+1)
	// 'node' may be invalidated by the append in 'add'
	parentNode := t.Node(parent)
	parentNode.Children = append(parentNode.Children, id)
	return id
}
