package bench

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/IlikeChooros/go-connect4/pkg/agent"
	"github.com/IlikeChooros/go-connect4/pkg/board"
	"github.com/rs/zerolog/log"
)

/*
Arena benchmark subpackage, plays a series of games between two agents
and counts the results. The starting side is picked at random for every game.
*/

type VersusArena struct {
	VersusArenaStats
	Player1  AgentFactory
	Player2  AgentFactory
	NGames   uint
	NThreads uint
	Position *board.Board // starting position, empty board if nil

	p1Name  string
	p2Name  string
	wg      sync.WaitGroup
	done    chan struct{}
	ctx     context.Context
	seed    int64
	mu      sync.Mutex
	records []*GameRecord
	err     error
}

func NewVersusArena(player1, player2 AgentFactory) *VersusArena {
	return &VersusArena{
		Player1:  player1,
		Player2:  player2,
		NGames:   100,
		NThreads: 2,
		p1Name:   player1().Name(),
		p2Name:   player2().Name(),
		ctx:      context.Background(),
		seed:     time.Now().UnixNano(),
	}
}

func (va *VersusArena) WithContext(ctx context.Context) *VersusArena {
	va.ctx = ctx
	return va
}

// Seed of the 'who starts' coin flips, worker i uses seed+i
func (va *VersusArena) WithSeed(seed int64) *VersusArena {
	va.seed = seed
	return va
}

func (va *VersusArena) Setup(nGames uint, nThreads uint) {
	va.NGames = nGames
	va.NThreads = max(nThreads, 1)
}

// Blocks until all games are played and the summary was delivered
func (va *VersusArena) Wait() {
	if va.done != nil {
		<-va.done
	}
}

func (va *VersusArena) Start(listener ListenerLike) {
	if listener == nil {
		listener = NopListener{}
	}

	// Start equally distributed work between worker threads
	va.done = make(chan struct{})
	va.NThreads = max(va.NThreads, 1)
	listener.OnStart()

	nGames := va.NGames / va.NThreads
	rest := va.NGames % va.NThreads
	for i := range va.NThreads {
		delta := 0
		if rest > 0 {
			delta = 1
			rest--
		}
		va.wg.Add(1)

		// Every worker plays with its own agents
		l := listener.Clone()
		l.SetRow(int(i) + statsRowStart)
		go va.worker(int(i), int(nGames)+delta, l, va.Player1(), va.Player2())
	}

	go func() {
		va.wg.Wait()
		listener.Summary(va.Summary())
		listener.OnEnd()
		close(va.done)
	}()
}

// Results so far
func (va *VersusArena) Summary() VersusSummaryInfo {
	return VersusSummaryInfo{
		TotalGames:       va.Total(),
		P1Wins:           va.P1Wins(),
		P2Wins:           va.P2Wins(),
		FirstToMoveWins:  va.FirstToMoveWins(),
		SecondToMoveWins: va.SecondToMoveWins(),
		Draws:            va.Draws(),
		Workers:          int(va.NThreads),
		P1Name:           va.p1Name,
		P2Name:           va.p2Name,
	}
}

// Records of all finished games, valid after Wait
func (va *VersusArena) Records() []*GameRecord {
	va.mu.Lock()
	defer va.mu.Unlock()
	return append([]*GameRecord(nil), va.records...)
}

// First error returned by a game (for example an illegal move), such games are not counted
func (va *VersusArena) Err() error {
	va.mu.Lock()
	defer va.mu.Unlock()
	return va.err
}

func (va *VersusArena) worker(id, nGames int, listener ListenerLike, p1, p2 agent.Agent) {
	defer va.wg.Done()

	r := rand.New(rand.NewSource(va.seed + int64(id)))
	local := VersusArenaStats{}
	info := VersusWorkerInfo{
		WorkerID: id,
		NGames:   nGames,
		P1Name:   va.p1Name,
		P2Name:   va.p2Name,
	}
	opts := &GameOptions{Start: va.Position}

	for i := range nGames {
		p1First := r.Int()%2 == 0
		first, second := p2, p1
		if p1First {
			first, second = p1, p2
		}

		info.FinishedGames = i
		info.Moves = info.Moves[:0]
		opts.OnMove = func(ev MoveEvent) {
			info.Moves = append(info.Moves, ev.Move)
			info.GameMoveNum = ev.Ply
			info.Board = ev.Board
			listener.OnMoveMade(info)
		}

		listener.OnGameStart()
		record, err := PlayGame(va.ctx, first, second, opts)
		if va.ctx.Err() != nil {
			break
		}
		if err != nil {
			log.Error().Err(err).Int("worker", id).Msg("arena game aborted")
			va.setErr(err)
			continue
		}

		outcome := computeOutcome(record.Outcome, record.FirstMover())
		result := toAgentResult(outcome, p1First)
		va.add(result, outcome)
		local.add(result, outcome)
		va.addRecord(record)

		info.FinishedGames = i + 1
		info.P1Wins = local.P1Wins()
		info.P2Wins = local.P2Wins()
		info.Draws = local.Draws()
		info.FirstToMoveWins = local.FirstToMoveWins()
		info.SecondToMoveWins = local.SecondToMoveWins()
		listener.OnFinishedGame(info)
	}

	listener.OnFinishedWork(info)
}

func (va *VersusArena) addRecord(record *GameRecord) {
	va.mu.Lock()
	defer va.mu.Unlock()
	va.records = append(va.records, record)
}

func (va *VersusArena) setErr(err error) {
	va.mu.Lock()
	defer va.mu.Unlock()
	if va.err == nil {
		va.err = err
	}
}
