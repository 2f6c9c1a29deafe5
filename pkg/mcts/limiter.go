package mcts

import (
	"context"
	"sync/atomic"
)

type StopReason int

const (
	StopNone      StopReason = 0
	StopInterrupt StopReason = 1  // Stopped by user, by calling .Stop() or context cancellation
	StopMovetime  StopReason = 2  // Time limit reached
	StopNodes     StopReason = 4  // Tree size limit reached
	StopDepth     StopReason = 8  // Depth limit reached
	StopCycles    StopReason = 16 // Cycle limit reached
)

func (sr StopReason) String() string {
	if sr == StopNone {
		return "None"
	}

	reasons := []struct {
		flag StopReason
		name string
	}{
		{StopInterrupt, "Interrupt"},
		{StopMovetime, "Movetime"},
		{StopNodes, "Nodes"},
		{StopDepth, "Depth"},
		{StopCycles, "Cycles"},
	}

	var result string
	for _, r := range reasons {
		if sr&r.flag == r.flag {
			if result != "" {
				result += "|"
			}
			result += r.name
		}
	}

	return result
}

type LimiterLike interface {
	SetContext(ctx context.Context)
	// Set the limits
	SetLimits(*Limits)
	// Get the limits
	Limits() *Limits
	// Get elapsed time in ms (from the last 'Reset' call)
	Elapsed() uint32
	// Set the stop signal, will cause to exit search if set to true
	SetStop(bool)
	// Get the stop signal
	Stop() bool
	// Reset the limiter's flags, called on search setup
	Reset()
	// Wheter the tree can grow
	Expand() bool
	// Wheter the search should continue, called between iterations
	Ok(size, depth, cycles uint32) bool
	// Get the reason why the search was stopped, valid after search ends
	StopReason() StopReason
	// Evaluate stop reason based on current state, and set it internally,
	// called once after the search loop ends
	EvaluateStopReason(size, depth, cycles uint32)
}

type Limiter struct {
	limits     *Limits
	clock      *moveClock
	cycles     uint32
	expand     atomic.Bool
	stop       atomic.Bool
	areSetMask StopReason
	reason     StopReason
	ctx        context.Context
}

func NewLimiter() *Limiter {
	limiter := &Limiter{
		limits: DefaultLimits(),
		clock:  newMoveClock(),
		ctx:    context.Background(),
	}

	limiter.expand.Store(true)
	return limiter
}

func (l *Limiter) Reset() {
	l.clock.SetBudget(l.limits.Movetime)
	l.clock.Restart()
	l.stop.Store(false)
	l.expand.Store(true)
	l.reason = StopNone

	// Neither cycles nor movetime set, fall back to a fixed number of iterations
	l.cycles = l.limits.Cycles
	if !l.limits.Bounded() {
		l.cycles = FallbackCycles
	}

	// Pre-calculate 'are set' limit mask, see 'OkMask' method for more explanation
	l.areSetMask = StopNone
	if l.clock.Bounded() {
		l.areSetMask |= StopMovetime
	}
	if l.limits.Nodes != DefaultNodeLimit {
		l.areSetMask |= StopNodes
	}
	if l.limits.Depth != DefaultDepthLimit {
		l.areSetMask |= StopDepth
	}
	// Fallback cycles don't count, a node limit alone still stops the search
	if l.limits.Cycles != DefaultCyclesLimit {
		l.areSetMask |= StopCycles
	}
}

func (l *Limiter) EvaluateStopReason(size, depth, cycles uint32) {
	l.reason = l.OkMask(size, depth, cycles)
}

func (l *Limiter) StopReason() StopReason {
	return l.reason
}

func (l *Limiter) SetContext(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	l.ctx = ctx
}

func (l *Limiter) SetStop(v bool) {
	l.stop.Store(v)
}

func (l *Limiter) Stop() bool {
	select {
	case <-l.ctx.Done():
		l.stop.Store(true)
	default:
	}
	return l.stop.Load()
}

func (l *Limiter) SetLimits(limits *Limits) {
	if limits == nil {
		limits = DefaultLimits()
	}
	l.limits = limits
}

func (l *Limiter) Limits() *Limits {
	return l.limits
}

func (l *Limiter) Elapsed() uint32 {
	return uint32(l.clock.ElapsedMs())
}

func (l *Limiter) Expand() bool {
	return l.expand.Load()
}

// Bit set of the limits reached so far
func (l *Limiter) LimitMask(size, depth, cycles uint32) StopReason {
	mask := StopNone
	if l.Stop() {
		mask |= StopInterrupt
	}
	if l.clock.Expired() {
		mask |= StopMovetime
	}
	if l.limits.Nodes <= size {
		mask |= StopNodes
	}
	if l.limits.Depth <= int(depth) {
		mask |= StopDepth
	}
	if l.cycles <= cycles {
		mask |= StopCycles
	}
	return mask
}

func (l *Limiter) OkMask(size, depth, cycles uint32) StopReason {
	limitMask := l.LimitMask(size, depth, cycles)

	// (time/cycles or both) AND node limit ->
	// if the tree is full, disable expanding and wait for the other limitation/s
	if l.areSetMask&StopNodes == StopNodes && l.areSetMask&(StopMovetime|StopCycles) != 0 {
		if limitMask&StopNodes == StopNodes {
			l.expand.Store(false)
			limitMask ^= StopNodes
		}
	}

	return limitMask
}

func (l *Limiter) Ok(size, depth, cycles uint32) bool {
	return l.OkMask(size, depth, cycles) == StopNone
}
