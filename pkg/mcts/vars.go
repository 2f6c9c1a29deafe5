package mcts

import (
	"math"
	"time"
)

// Exploration parameter used in UCB1 formula, higher values increase exploration
// while lower values increase exploitation. Default is the theoretical sqrt(2).
var ExplorationParam float64 = math.Sqrt2

// Set the exploration parameter used in UCB1 formula
func SetExplorationParam(c float64) {
	ExplorationParam = max(0.0, c)
}

var SeedGeneratorFn SeedGeneratorFnType = func() int64 {
	return time.Now().UnixNano()
}

// Set custom seed generator function for the playout random number generator,
// by default uses current time in nanoseconds
func SetSeedGeneratorFn(f SeedGeneratorFnType) {
	if f != nil {
		SeedGeneratorFn = f
	}
}

const (
	// When choosing the best child, choose the one with the best win rate,
	// unvisited children have win rate of 0. Default for the engine
	BestChildWinRate BestChildPolicy = iota

	// Choose the one with most visits, the usual MCTS choice
	BestChildMostVisits
)
