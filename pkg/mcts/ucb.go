package mcts

import "math"

type UCB1 struct {
	ExplorationParam float64
}

func (u *UCB1) SetExplorationParam(c float64) {
	u.ExplorationParam = max(0, c)
}

func NewUCB1(explorationParam float64) *UCB1 {
	return &UCB1{ExplorationParam: explorationParam}
}

// UCB1 : wins/visits + C * sqrt(ln(parent_visits)/visits),
// unvisited child has infinite score, first one is picked
func (u *UCB1) Select(tree *Tree, parent NodeID) NodeID {
	node := tree.Node(parent)
	lnParentVisits := math.Log(float64(node.Visits))

	best := math.Inf(-1)
	selected := NoNode

	for _, id := range node.Children {
		child := tree.Node(id)
		if child.Visits == 0 {
			return id
		}

		score := u.Score(child, lnParentVisits)
		if score > best {
			best = score
			selected = id
		}
	}

	return selected
}

func (u *UCB1) Score(child *Node, lnParentVisits float64) float64 {
	if child.Visits == 0 {
		return math.Inf(1)
	}
	visits := float64(child.Visits)
	return float64(child.Wins)/visits + u.ExplorationParam*math.Sqrt(lnParentVisits/visits)
}
