package bench

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog/log"
)

// First terminal row used by the per-worker progress lines
const statsRowStart = 1

const (
	colorP1   = "#ff5f5f"
	colorP2   = "#ffd75f"
	colorDraw = "#8a8a8a"
)

// Receives arena events, each worker gets its own clone
type ListenerLike interface {
	OnStart()
	OnGameStart()
	OnMoveMade(info VersusWorkerInfo)
	OnFinishedGame(info VersusWorkerInfo)
	OnFinishedWork(info VersusWorkerInfo)
	Summary(info VersusSummaryInfo)
	OnEnd()
	Clone() ListenerLike
	SetRow(row int)
}

// Ignores every event
type NopListener struct{}

func (NopListener) OnStart()                        {}
func (NopListener) OnGameStart()                    {}
func (NopListener) OnMoveMade(VersusWorkerInfo)     {}
func (NopListener) OnFinishedGame(VersusWorkerInfo) {}
func (NopListener) OnFinishedWork(VersusWorkerInfo) {}
func (NopListener) Summary(VersusSummaryInfo)       {}
func (NopListener) OnEnd()                          {}
func (n NopListener) Clone() ListenerLike           { return n }
func (NopListener) SetRow(int)                      {}

// Prints one colored progress line per worker and the final summary below them
type DefaultListener struct {
	out *termenv.Output
	mu  *sync.Mutex
	row int
}

func NewDefaultListener(w io.Writer, opts ...termenv.OutputOption) *DefaultListener {
	if w == nil {
		w = os.Stdout
	}
	return &DefaultListener{
		out: termenv.NewOutput(w, opts...),
		mu:  &sync.Mutex{},
	}
}

func (d *DefaultListener) Clone() ListenerLike {
	// Clones share the output and its lock
	return &DefaultListener{out: d.out, mu: d.mu, row: d.row}
}

func (d *DefaultListener) SetRow(row int) {
	d.row = row
}

func (d *DefaultListener) OnStart() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.out.ClearScreen()
	d.out.HideCursor()
}

func (d *DefaultListener) OnGameStart() {}

func (d *DefaultListener) OnMoveMade(info VersusWorkerInfo) {
	d.print(info)
}

func (d *DefaultListener) OnFinishedGame(info VersusWorkerInfo) {
	d.print(info)
}

func (d *DefaultListener) OnFinishedWork(info VersusWorkerInfo) {
	d.print(info)
}

func (d *DefaultListener) Summary(info VersusSummaryInfo) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.out.MoveCursor(statsRowStart+info.Workers+1, 1)
	fmt.Fprintf(d.out, "%d games, %d workers\n", info.TotalGames, info.Workers)
	fmt.Fprintf(d.out, "%s: %s\n", info.P1Name, d.colored(fmt.Sprintf("%d wins", info.P1Wins), colorP1))
	fmt.Fprintf(d.out, "%s: %s\n", info.P2Name, d.colored(fmt.Sprintf("%d wins", info.P2Wins), colorP2))
	fmt.Fprintf(d.out, "draws: %s\n", d.colored(fmt.Sprint(info.Draws), colorDraw))
	fmt.Fprintf(d.out, "first to move won %d, second to move won %d\n", info.FirstToMoveWins, info.SecondToMoveWins)
}

func (d *DefaultListener) OnEnd() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.out.ShowCursor()
}

func (d *DefaultListener) colored(s, color string) string {
	return d.out.String(s).Foreground(d.out.Color(color)).String()
}

func (d *DefaultListener) print(info VersusWorkerInfo) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.out.MoveCursor(d.row, 1)
	d.out.ClearLine()
	fmt.Fprintf(d.out, "worker %d: game %d/%d move %2d | %s %s %s",
		info.WorkerID, info.FinishedGames, info.NGames, info.GameMoveNum,
		d.colored(fmt.Sprintf("%s %d", info.P1Name, info.P1Wins), colorP1),
		d.colored(fmt.Sprintf("%s %d", info.P2Name, info.P2Wins), colorP2),
		d.colored(fmt.Sprintf("draws %d", info.Draws), colorDraw),
	)
}

// Logs finished games and the summary through zerolog
type LogListener struct {
	NopListener
}

func (l LogListener) Clone() ListenerLike {
	return l
}

func (LogListener) OnFinishedGame(info VersusWorkerInfo) {
	log.Info().
		Int("worker", info.WorkerID).
		Int("game", info.FinishedGames).
		Int("plies", info.GameMoveNum).
		Ints("moves", info.Moves).
		Int("p1_wins", info.P1Wins).
		Int("p2_wins", info.P2Wins).
		Int("draws", info.Draws).
		Msg("arena game finished")
}

func (LogListener) Summary(info VersusSummaryInfo) {
	log.Info().Interface("summary", info).Msg("arena finished")
}
