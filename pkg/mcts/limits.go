package mcts

import (
	"encoding/json"
	"math"
	"strings"
)

type Limits struct {
	Depth    int
	Nodes    uint32
	Cycles   uint32
	Movetime int
}

func (l Limits) String() string {
	builder := strings.Builder{}
	_ = json.NewEncoder(&builder).Encode(l)
	return builder.String()
}

const (
	DefaultDepthLimit    int    = math.MaxInt
	DefaultNodeLimit     uint32 = math.MaxUint32
	DefaultMovetimeLimit int    = -1
	DefaultCyclesLimit   uint32 = math.MaxUint32

	// Number of iterations used when neither cycles nor movetime was set,
	// depth and node limits alone may never be reached
	FallbackCycles uint32 = 1000
)

// Limits with nothing set, the search will run for FallbackCycles iterations
func DefaultLimits() *Limits {
	return &Limits{
		Depth:    DefaultDepthLimit,
		Nodes:    DefaultNodeLimit,
		Cycles:   DefaultCyclesLimit,
		Movetime: DefaultMovetimeLimit,
	}
}

// Set the maximum depth of the tree
func (l *Limits) SetDepth(depth int) *Limits {
	l.Depth = depth
	return l
}

// Set the maximum number of nodes in the tree
func (l *Limits) SetNodes(nodes uint32) *Limits {
	l.Nodes = nodes
	return l
}

// Set the number of select-expand-simulate-backpropagate iterations
func (l *Limits) SetCycles(cycles uint32) *Limits {
	l.Cycles = cycles
	return l
}

// Set the maximum time for engine to think, in milliseconds
func (l *Limits) SetMovetime(movetime int) *Limits {
	l.Movetime = movetime
	return l
}

// Same as SetMovetime, but in seconds
func (l *Limits) SetSeconds(seconds float64) *Limits {
	if seconds < 0 {
		return l.SetMovetime(DefaultMovetimeLimit)
	}
	return l.SetMovetime(int(seconds * 1000))
}

// Whether cycles or movetime was set. Depth and node limits only add
// stopping conditions, a small game tree can stay below both forever.
func (l *Limits) Bounded() bool {
	return l.Cycles != DefaultCyclesLimit ||
		l.Movetime != DefaultMovetimeLimit
}
