package qlearn

import (
	"math/rand"
	"time"

	"github.com/IlikeChooros/go-connect4/pkg/agent"
	"github.com/IlikeChooros/go-connect4/pkg/board"
	"github.com/rs/zerolog/log"
)

const (
	DefaultAlpha   = 0.1
	DefaultGamma   = 0.9
	DefaultEpsilon = 0.1
)

type Params struct {
	Alpha   float64 // learning rate
	Gamma   float64 // discount factor
	Epsilon float64 // exploration rate
}

func DefaultParams() Params {
	return Params{
		Alpha:   DefaultAlpha,
		Gamma:   DefaultGamma,
		Epsilon: DefaultEpsilon,
	}
}

// Tabular Q-learning agent with epsilon-greedy action selection.
// The engine owns its table, it's not safe for concurrent use.
type Engine struct {
	params Params
	table  Table
	key    KeyFunc
	rand   *rand.Rand

	// table as of the last save or load, nil if there was none
	persisted Table
}

func New(params Params) *Engine {
	return &Engine{
		params: params,
		table:  make(Table),
		key:    CanonicalKey,
		rand:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (e *Engine) Name() string {
	return "qlearn"
}

func (e *Engine) Params() Params {
	return e.params
}

// Set exploration rate, 0 makes the agent fully greedy
func (e *Engine) SetEpsilon(epsilon float64) {
	e.params.Epsilon = epsilon
}

func (e *Engine) SetRand(r *rand.Rand) {
	if r != nil {
		e.rand = r
	}
}

// Substitute the state encoding, must be set before any learning
// since existing keys are not converted
func (e *Engine) SetKeyFunc(f KeyFunc) {
	if f != nil {
		e.key = f
	}
}

func (e *Engine) Key(b board.Board) string {
	return e.key(b)
}

// The live table, mutated by Observe
func (e *Engine) Table() Table {
	return e.table
}

// Replace the table, the engine takes ownership of it
func (e *Engine) SetTable(t Table) {
	if t == nil {
		t = make(Table)
	}
	e.table = t
	e.persisted = nil
}

// Number of known states
func (e *Engine) Size() int {
	return len(e.table)
}

func (e *Engine) Values(b board.Board) Values {
	return e.table.Get(e.key(b))
}

// With probability epsilon a uniformly random legal column, otherwise the legal
// column with the highest value. Ties go to the first column in 'legal' order,
// so an unseen state yields the first legal column.
func (e *Engine) ChooseMove(b board.Board, legal []int) (int, error) {
	cols := make([]int, 0, len(legal))
	for _, c := range legal {
		if c >= 0 && c < board.Columns {
			cols = append(cols, c)
		}
	}
	if len(cols) == 0 {
		return -1, agent.ErrNoLegalMove
	}

	if e.rand.Float64() < e.params.Epsilon {
		return cols[e.rand.Intn(len(cols))], nil
	}
	return e.greedy(e.table.Get(e.key(b)), cols), nil
}

func (e *Engine) greedy(values Values, cols []int) int {
	best := cols[0]
	for _, c := range cols[1:] {
		if values[c] > values[best] {
			best = c
		}
	}
	return best
}

// One-step Bellman update of Q[prev][action]:
//
//	Q[s][a] = (1-alpha)*Q[s][a] + alpha*(reward + gamma*max(Q[s'])*(1-terminal))
//
// Both states get a zero entry if they're unknown.
func (e *Engine) Observe(prev board.Board, action int, reward float64, next board.Board, terminal bool) {
	if action < 0 || action >= board.Columns {
		return
	}

	prevKey, nextKey := e.key(prev), e.key(next)
	e.table.ensure(prevKey)
	e.table.ensure(nextKey)

	future := 0.0
	if !terminal {
		future = e.table[nextKey].Max()
	}

	values := e.table[prevKey]
	values[action] = (1-e.params.Alpha)*values[action] + e.params.Alpha*(reward+e.params.Gamma*future)
	e.table[prevKey] = values
}

// Writes the whole table to the store, unless it's unchanged since the last
// save or load. Reports whether anything was written.
func (e *Engine) Save(store Store) (bool, error) {
	if e.persisted != nil && e.table.Equal(e.persisted) {
		return false, nil
	}

	if err := store.Save(e.table.Snapshot()); err != nil {
		return false, err
	}

	e.persisted = e.table.Clone()
	log.Info().Stringer("store", store).Int("states", len(e.table)).Msg("q-table saved")
	return true, nil
}

// Replaces the table with the store's contents. A missing or unreadable store
// is not fatal, the engine starts from an empty table instead.
// Returns the number of loaded states.
func (e *Engine) Load(store Store) int {
	table := make(Table)

	snapshot, err := store.Load()
	if err == nil {
		table, err = FromSnapshot(snapshot)
	}
	if err != nil {
		log.Warn().Err(err).Stringer("store", store).Msg("could not load q-table, starting empty")
		table = make(Table)
	}

	e.table = table
	e.persisted = table.Clone()
	return len(table)
}
