package qlearn

import (
	"github.com/IlikeChooros/go-connect4/pkg/board"
	"github.com/pkg/errors"
)

var ErrBadSnapshot = errors.New("malformed snapshot")

// Action values of a single state, one per column
type Values [board.Columns]float64

// Best value among the given columns, or among all columns if none are given
func (v Values) Max(cols ...int) float64 {
	if len(cols) == 0 {
		best := v[0]
		for _, q := range v[1:] {
			best = max(best, q)
		}
		return best
	}

	best := v[cols[0]]
	for _, c := range cols[1:] {
		best = max(best, v[c])
	}
	return best
}

// Sparse state -> action values mapping, absent states read as zero
type Table map[string]Values

func (t Table) Get(key string) Values {
	return t[key]
}

// Creates a zero entry for 'key' if it's absent
func (t Table) ensure(key string) {
	if _, ok := t[key]; !ok {
		t[key] = Values{}
	}
}

func (t Table) Clone() Table {
	c := make(Table, len(t))
	for k, v := range t {
		c[k] = v
	}
	return c
}

func (t Table) Equal(other Table) bool {
	if len(t) != len(other) {
		return false
	}
	for k, v := range t {
		if ov, ok := other[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// Persisted form of the table, state key -> list of column values
type Snapshot map[string][]float64

func (t Table) Snapshot() Snapshot {
	s := make(Snapshot, len(t))
	for k, v := range t {
		s[k] = append([]float64(nil), v[:]...)
	}
	return s
}

// Rebuild a table, every entry must hold exactly board.Columns values
func FromSnapshot(s Snapshot) (Table, error) {
	t := make(Table, len(s))
	for k, vals := range s {
		if len(vals) != board.Columns {
			return nil, errors.Wrapf(ErrBadSnapshot, "state %q has %d values", k, len(vals))
		}
		var v Values
		copy(v[:], vals)
		t[k] = v
	}
	return t, nil
}
