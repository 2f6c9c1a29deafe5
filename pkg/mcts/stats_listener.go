package mcts

type ListenerTreeStats struct {
	Maxdepth   int
	Cycles     int
	TimeMs     int
	Cps        uint32
	Size       uint32
	BestMove   int
	WinRate    float64
	StopReason StopReason
}

// Convert tree statistics to 'ListenerTreeStats' struct
func toListenerStats(mcts *MCTS) ListenerTreeStats {
	stats := ListenerTreeStats{
		Maxdepth:   mcts.MaxDepth(),
		Cycles:     mcts.Cycles(),
		TimeMs:     int(mcts.Limiter.Elapsed()),
		Cps:        mcts.Cps(),
		Size:       mcts.Size(),
		BestMove:   -1,
		StopReason: mcts.Limiter.StopReason(),
	}

	if best := mcts.BestChild(mcts.bestChildPolicy); best != nil {
		stats.BestMove = best.Move
		stats.WinRate = best.WinRate()
	}
	return stats
}

// Listener function callback, will recieve current tree statistics, like
// max depth of tree, number of iterations so far
type ListenerFunc func(ListenerTreeStats)

type StatsListener struct {
	// called when 'max depth' increases
	onDepth ListenerFunc

	// called every N full iterations
	onCycle ListenerFunc
	nCycles int // call 'onCycle' every N cycles

	// called when the search stops (either by limiter or 'stop' signal)
	onStop ListenerFunc
}

func NewStatsListener() StatsListener {
	return StatsListener{nCycles: 1}
}

// Attach new on max depth change callback
func (listener *StatsListener) OnDepth(onDepth ListenerFunc) *StatsListener {
	listener.onDepth = onDepth
	return listener
}

// Attach new on iteration callback, use SetCycleInterval to call it less often
func (listener *StatsListener) OnCycle(onCycle ListenerFunc) *StatsListener {
	listener.onCycle = onCycle
	return listener
}

func (listener *StatsListener) SetCycleInterval(n int) *StatsListener {
	if n < 1 {
		n = 1
	}
	listener.nCycles = n
	return listener
}

// Attach 'on search end' callback, makes 'StopReason' available in the stats
func (listener *StatsListener) OnStop(onStop ListenerFunc) *StatsListener {
	listener.onStop = onStop
	return listener
}

func (listener *StatsListener) invokeCycle(mcts *MCTS) {
	if listener.onCycle != nil && mcts.Cycles()%listener.nCycles == 0 {
		listener.onCycle(toListenerStats(mcts))
	}
}
