package mcts

import (
	"context"
	"testing"
	"time"
)

func TestLimiterSingleLimits(t *testing.T) {
	limiter := LimiterLike(NewLimiter())
	limiter.Reset()

	// Nothing set, falls back to a fixed number of cycles
	if !limiter.Ok(1000000, 1000, FallbackCycles-1) || !limiter.Expand() {
		t.Error("Default limiter should run until fallback cycles, expand=", limiter.Expand())
	}
	if limiter.Ok(1, 1, FallbackCycles) {
		t.Errorf("Default limiter should stop after %d cycles", FallbackCycles)
	}

	limiter.SetLimits(DefaultLimits().SetNodes(100))
	limiter.Reset()
	if ok := limiter.Ok(101, 1, 1); ok {
		t.Errorf("<Nodes=%d: ok=%v, want=%v", 101, ok, !ok)
	}

	if ok := limiter.Ok(99, 1, 1); !ok {
		t.Errorf(">Nodes=%d: ok=%v, want=%v", 99, ok, !ok)
	}

	// Cycles limit only, no fallback
	limiter.SetLimits(DefaultLimits().SetCycles(5000))
	limiter.Reset()
	if ok := limiter.Ok(1, 1, 4999); !ok {
		t.Errorf(">Cycles: ok=%v, want=%v", ok, !ok)
	}
	if ok := limiter.Ok(1, 1, 5000); ok {
		t.Errorf("<Cycles: ok=%v, want=%v", ok, !ok)
	}

	limiter.SetLimits(DefaultLimits().SetDepth(10))
	limiter.Reset()
	if ok := limiter.Ok(1, 10, 1); ok {
		t.Errorf("<Depth: ok=%v, want=%v", ok, !ok)
	}
	if ok := limiter.Ok(1, 2, FallbackCycles); ok {
		t.Errorf("Depth alone should fall back to %d cycles", FallbackCycles)
	}

	limiter.SetLimits(DefaultLimits().SetNodes(100))
	limiter.Reset()
	if ok := limiter.Ok(5, 2, FallbackCycles); ok || !limiter.Expand() {
		t.Errorf("Nodes alone should fall back to %d cycles, ok=%v expand=%v", FallbackCycles, ok, limiter.Expand())
	}

	limiter.SetLimits(DefaultLimits().SetMovetime(100))
	limiter.Reset()
	if ok := limiter.Ok(1, 1, FallbackCycles*10); !ok {
		t.Errorf("Movetime alone should not fall back to cycles: ok=%v", ok)
	}
	time.Sleep(time.Millisecond * 101)

	if ok := limiter.Ok(1, 1, 1); ok {
		t.Errorf("<Movetime: ok=%v, want=%v", ok, !ok)
	}

	limiter.Reset()
	if ok := limiter.Ok(1, 1, 1); !ok {
		t.Errorf(">Movetime: ok=%v, want=%v", ok, !ok)
	}
}

func TestLimiterCombos(t *testing.T) {
	limiter := LimiterLike(NewLimiter())

	// Cycles + node limit, if the tree is full, wait for 'cycles' and disable expanding
	limiter.SetLimits(DefaultLimits().SetCycles(100).SetNodes(10))
	limiter.Reset()

	if !(limiter.Ok(10, 1, 99) && !limiter.Expand()) {
		t.Error(">Cycles+Nodes failed: ok=", limiter.Ok(10, 1, 99), "expand=", limiter.Expand())
	}
	if !(!limiter.Ok(10, 1, 100) && !limiter.Expand()) {
		t.Error("<Cycles+Nodes failed: ok=", limiter.Ok(10, 1, 100), "expand=", limiter.Expand())
	}

	// Time + node limit
	limiter.SetLimits(DefaultLimits().SetMovetime(100).SetNodes(10))
	limiter.Reset()

	if !(limiter.Ok(10, 1, 1) && !limiter.Expand()) {
		t.Error(">Time+Nodes failed: ok=", limiter.Ok(10, 1, 1), "expand=", limiter.Expand())
	}

	time.Sleep(time.Millisecond * 101)
	if !(!limiter.Ok(10, 1, 1) && !limiter.Expand()) {
		t.Error("<Time+Nodes failed: ok=", limiter.Ok(10, 1, 1), "expand=", limiter.Expand())
	}
}

func TestLimiterInterrupt(t *testing.T) {
	limiter := NewLimiter()
	ctx, cancel := context.WithCancel(context.Background())
	limiter.SetContext(ctx)
	limiter.Reset()

	if !limiter.Ok(1, 1, 1) {
		t.Fatal("limiter should be ok before cancel")
	}

	cancel()
	if limiter.Ok(1, 1, 1) {
		t.Fatal("limiter should stop after context cancellation")
	}

	limiter.EvaluateStopReason(1, 1, 1)
	if limiter.StopReason() != StopInterrupt {
		t.Errorf("stop reason = %v, want %v", limiter.StopReason(), StopInterrupt)
	}
}

func TestStopReasonString(t *testing.T) {
	cases := map[StopReason]string{
		StopNone:                  "None",
		StopCycles:                "Cycles",
		StopMovetime | StopCycles: "Movetime|Cycles",
		StopInterrupt | StopNodes: "Interrupt|Nodes",
		StopDepth | StopInterrupt: "Interrupt|Depth",
	}
	for reason, want := range cases {
		if got := reason.String(); got != want {
			t.Errorf("StopReason(%d).String() = %q, want %q", reason, got, want)
		}
	}
}

func TestMoveClock(t *testing.T) {
	clock := newMoveClock()
	clock.SetBudget(-1)
	if clock.Bounded() || clock.Expired() {
		t.Fatal("clock without a budget should never expire")
	}

	clock.SetBudget(0)
	clock.Restart()
	if !clock.Bounded() || !clock.Expired() {
		t.Error("zero budget should expire immediately")
	}
	if clock.ElapsedMs() < 1 {
		t.Errorf("elapsed = %d, want at least 1", clock.ElapsedMs())
	}

	clock.SetBudget(50)
	clock.Restart()
	if clock.Expired() {
		t.Error("50ms budget expired right after restart")
	}
	time.Sleep(60 * time.Millisecond)
	if !clock.Expired() {
		t.Error("50ms budget should expire after 60ms")
	}
}

func TestLimitsBounded(t *testing.T) {
	cases := map[string]struct {
		limits *Limits
		want   bool
	}{
		"default":  {DefaultLimits(), false},
		"depth":    {DefaultLimits().SetDepth(4), false},
		"nodes":    {DefaultLimits().SetNodes(50), false},
		"cycles":   {DefaultLimits().SetCycles(10), true},
		"movetime": {DefaultLimits().SetMovetime(10), true},
	}
	for name, c := range cases {
		if got := c.limits.Bounded(); got != c.want {
			t.Errorf("%s: Bounded() = %v, want %v", name, got, c.want)
		}
	}
}
