package config

import (
	"math/rand"

	"github.com/IlikeChooros/go-connect4/pkg/agent"
	"github.com/IlikeChooros/go-connect4/pkg/mcts"
	"github.com/IlikeChooros/go-connect4/pkg/minimax"
	"github.com/IlikeChooros/go-connect4/pkg/qlearn"
	"github.com/pkg/errors"
)

var AgentKinds = []string{"minimax", "mcts", "qlearn", "random"}

// Builds an engine of the given kind from the config. A qlearn agent starts
// with an empty table, load it with Engine.Load.
func (c Config) NewAgent(kind string, seed int64) (agent.Agent, error) {
	switch kind {
	case "minimax":
		return minimax.New(c.MinimaxDepth), nil
	case "mcts":
		return mcts.New(c.MCTSLimits()), nil
	case "qlearn":
		engine := qlearn.New(c.QParams())
		engine.SetRand(rand.New(rand.NewSource(seed)))
		return engine, nil
	case "random":
		return agent.NewRandom(seed), nil
	}
	return nil, errors.Wrapf(ErrInvalidConfig, "unknown agent %q, want one of %v", kind, AgentKinds)
}
