package config

import (
	"flag"
	"os"
	"strconv"

	"github.com/IlikeChooros/go-connect4/pkg/mcts"
	"github.com/IlikeChooros/go-connect4/pkg/minimax"
	"github.com/IlikeChooros/go-connect4/pkg/qlearn"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

var ErrInvalidConfig = errors.New("invalid config")

const (
	StoreJSON   = "json"
	StoreSQLite = "sqlite"

	FormatConsole = "console"
	FormatJSON    = "json"

	MaxMinimaxDepth = 12

	envPrefix = "C4_"
)

// Settings shared by the programs, engines are built from it
type Config struct {
	MinimaxDepth int

	// MCTS budget, whichever is reached first ends the search.
	// Zero disables the limit, with both zero a fixed default applies.
	MCTSSeconds    float64
	MCTSIterations int

	Alpha   float64
	Gamma   float64
	Epsilon float64

	StorePath string
	StoreKind string // json or sqlite

	LogLevel  string
	LogFormat string // console or json
}

func Default() Config {
	return Config{
		MinimaxDepth:   minimax.DefaultDepth,
		MCTSSeconds:    0,
		MCTSIterations: int(mcts.FallbackCycles),
		Alpha:          qlearn.DefaultAlpha,
		Gamma:          qlearn.DefaultGamma,
		Epsilon:        qlearn.DefaultEpsilon,
		StorePath:      "q_table.json",
		StoreKind:      StoreJSON,
		LogLevel:       "info",
		LogFormat:      FormatConsole,
	}
}

// Defaults overridden by C4_* environment variables, unparsable values are ignored
func FromEnv() Config {
	c := Default()
	c.MinimaxDepth = getEnvInt("MINIMAX_DEPTH", c.MinimaxDepth)
	c.MCTSSeconds = getEnvFloat("MCTS_SECONDS", c.MCTSSeconds)
	c.MCTSIterations = getEnvInt("MCTS_ITERATIONS", c.MCTSIterations)
	c.Alpha = getEnvFloat("ALPHA", c.Alpha)
	c.Gamma = getEnvFloat("GAMMA", c.Gamma)
	c.Epsilon = getEnvFloat("EPSILON", c.Epsilon)
	c.StorePath = getEnv("STORE_PATH", c.StorePath)
	c.StoreKind = getEnv("STORE_KIND", c.StoreKind)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("LOG_FORMAT", c.LogFormat)
	return c
}

// Binds the fields to flags, current values become the flag defaults
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.MinimaxDepth, "depth", c.MinimaxDepth, "minimax search depth in plies")
	fs.Float64Var(&c.MCTSSeconds, "mcts-seconds", c.MCTSSeconds, "MCTS time limit per move in seconds, 0 for none")
	fs.IntVar(&c.MCTSIterations, "mcts-iterations", c.MCTSIterations, "MCTS iteration limit per move, 0 for none")
	fs.Float64Var(&c.Alpha, "alpha", c.Alpha, "Q-learning rate")
	fs.Float64Var(&c.Gamma, "gamma", c.Gamma, "Q-learning discount factor")
	fs.Float64Var(&c.Epsilon, "epsilon", c.Epsilon, "Q-learning exploration rate")
	fs.StringVar(&c.StorePath, "store", c.StorePath, "Q-table location")
	fs.StringVar(&c.StoreKind, "store-kind", c.StoreKind, "Q-table store: json or sqlite")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "trace, debug, info, warn or error")
	fs.StringVar(&c.LogFormat, "log-format", c.LogFormat, "console or json")
}

func (c Config) Validate() error {
	switch {
	case c.MinimaxDepth < 1 || c.MinimaxDepth > MaxMinimaxDepth:
		return errors.Wrapf(ErrInvalidConfig, "minimax depth %d not in [1, %d]", c.MinimaxDepth, MaxMinimaxDepth)
	case c.MCTSSeconds < 0:
		return errors.Wrapf(ErrInvalidConfig, "negative MCTS time limit %v", c.MCTSSeconds)
	case c.MCTSIterations < 0:
		return errors.Wrapf(ErrInvalidConfig, "negative MCTS iteration limit %d", c.MCTSIterations)
	case c.Alpha <= 0 || c.Alpha > 1:
		return errors.Wrapf(ErrInvalidConfig, "alpha %v not in (0, 1]", c.Alpha)
	case c.Gamma < 0 || c.Gamma > 1:
		return errors.Wrapf(ErrInvalidConfig, "gamma %v not in [0, 1]", c.Gamma)
	case c.Epsilon < 0 || c.Epsilon > 1:
		return errors.Wrapf(ErrInvalidConfig, "epsilon %v not in [0, 1]", c.Epsilon)
	case c.StorePath == "":
		return errors.Wrap(ErrInvalidConfig, "empty store path")
	case c.StoreKind != StoreJSON && c.StoreKind != StoreSQLite:
		return errors.Wrapf(ErrInvalidConfig, "unknown store kind %q", c.StoreKind)
	case c.LogFormat != FormatConsole && c.LogFormat != FormatJSON:
		return errors.Wrapf(ErrInvalidConfig, "unknown log format %q", c.LogFormat)
	}

	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrapf(ErrInvalidConfig, "log level: %v", err)
	}
	return nil
}

func (c Config) MCTSLimits() *mcts.Limits {
	limits := mcts.DefaultLimits()
	if c.MCTSSeconds > 0 {
		limits.SetSeconds(c.MCTSSeconds)
	}
	if c.MCTSIterations > 0 {
		limits.SetCycles(uint32(c.MCTSIterations))
	}
	return limits
}

func (c Config) QParams() qlearn.Params {
	return qlearn.Params{
		Alpha:   c.Alpha,
		Gamma:   c.Gamma,
		Epsilon: c.Epsilon,
	}
}

// Caller closes the store
func (c Config) OpenStore() (qlearn.Store, error) {
	switch c.StoreKind {
	case StoreSQLite:
		store, err := qlearn.NewSQLiteStore(c.StorePath)
		if err != nil {
			return nil, err
		}
		return store, nil
	case StoreJSON:
		return qlearn.NewFileStore(c.StorePath), nil
	}
	return nil, errors.Wrapf(ErrInvalidConfig, "unknown store kind %q", c.StoreKind)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(envPrefix + key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if i, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return i
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if f, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return f
	}
	return defaultValue
}
