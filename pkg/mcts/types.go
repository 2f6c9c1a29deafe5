package mcts

// Other types, which didn't fit to MCTS or Node files

type BestChildPolicy int
type SeedGeneratorFnType func() int64

// Picks the child of 'parent' to descend into, called only on fully expanded non-terminal nodes
type SelectionLike interface {
	Select(tree *Tree, parent NodeID) NodeID
}
