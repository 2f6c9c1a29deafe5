package mcts

import "github.com/IlikeChooros/go-connect4/pkg/board"

type StrategyLike interface {
	Backpropagate(tree *Tree, leaf NodeID, winner board.Cell)
}

type DefaultBackprop struct{}

// Walks from the leaf up to the root, every node gets a visit,
// and a win only if the player who moved into it won the playout (draws give nothing)
func (b DefaultBackprop) Backpropagate(tree *Tree, leaf NodeID, winner board.Cell) {
	/*
		source: https://en.wikipedia.org/wiki/Monte_Carlo_tree_search
			If white loses the simulation, all nodes along the selection incremented their simulation count (the denominator),
			but among them only the black nodes were credited with wins (the numerator).
	*/

	for id := leaf; id != NoNode; {
		node := tree.Node(id)
		node.Visits++
		if winner != board.Empty && node.Mover() == winner {
			node.Wins++
		}
		id = node.Parent
	}
}
