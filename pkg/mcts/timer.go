package mcts

import (
	"time"
)

// Wall clock of a single search, with an optional budget
type moveClock struct {
	started time.Time
	budget  time.Duration
	bounded bool
}

func newMoveClock() *moveClock {
	return &moveClock{started: time.Now()}
}

// Sets the budget in milliseconds, a negative value means no budget
func (c *moveClock) SetBudget(ms int) {
	c.bounded = ms >= 0
	c.budget = time.Duration(max(ms, 0)) * time.Millisecond
}

func (c *moveClock) Bounded() bool {
	return c.bounded
}

func (c *moveClock) Restart() {
	c.started = time.Now()
}

func (c *moveClock) Expired() bool {
	return c.bounded && time.Since(c.started) >= c.budget
}

// Milliseconds since the restart, never 0 so it can divide the cycle count
func (c *moveClock) ElapsedMs() int {
	return max(int(time.Since(c.started).Milliseconds()), 1)
}
