package minimax

import (
	"bytes"
	"fmt"
	"math/rand"
	"testing"

	"github.com/IlikeChooros/go-connect4/pkg/agent"
	"github.com/IlikeChooros/go-connect4/pkg/board"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
)

func mustBoard(t *testing.T, notation string) board.Board {
	t.Helper()
	b, err := board.FromNotation(notation)
	require.NoError(t, err)
	return b
}

// Plays 'plies' random moves from the empty board, stops early on terminal positions
func randomPosition(r *rand.Rand, plies int) board.Board {
	b := board.New()
	for i := 0; i < plies; i++ {
		moves := b.LegalMoves()
		next, _ := b.Apply(moves[r.Intn(len(moves))], b.Turn())
		if next.Outcome().Terminal() {
			break
		}
		b = next
	}
	return b
}

func TestEmptyBoardPrefersCenter(t *testing.T) {
	move, err := New(1).BestMove(board.New(), board.PlayerA)
	require.NoError(t, err)
	require.Equal(t, board.CenterColumn, move)
}

func TestTakesImmediateWin(t *testing.T) {
	b := mustBoard(t, "......./......./......./......./ooo..../xxx....")
	for _, depth := range []int{1, 3, DefaultDepth} {
		move, err := New(depth).BestMove(b, board.PlayerA)
		require.NoError(t, err)
		require.Equal(t, 3, move, "depth %d", depth)
	}
}

func TestBlocksOpponentThreat(t *testing.T) {
	// B threatens to complete the bottom row at column 2
	b := mustBoard(t, "......./......./......./......./x....../x..ooox")
	engine := New(3)
	move, err := engine.ChooseMove(b, b.LegalMoves())
	require.NoError(t, err)
	require.Equal(t, board.PlayerA, b.Turn())
	require.Equal(t, 2, move)

	// Playing the answer must not let B win right away
	next, err := b.Apply(move, board.PlayerA)
	require.NoError(t, err)
	for _, reply := range next.LegalMoves() {
		after, _ := next.Apply(reply, board.PlayerB)
		require.NotEqual(t, board.Outcome{Status: board.Win, Winner: board.PlayerB}, after.Outcome(),
			"move %d leaves a win at %d", move, reply)
	}
}

func TestDeterministic(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		b := randomPosition(r, 8+r.Intn(10))
		first, err := New(4).ChooseMove(b, b.LegalMoves())
		require.NoError(t, err)
		second, err := New(4).ChooseMove(b, b.LegalMoves())
		require.NoError(t, err)
		require.Equal(t, first, second, "position %s", b.Notation())
	}
}

func TestPruningEquivalence(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 30; i++ {
		b := randomPosition(r, r.Intn(20))
		depth := 1 + i%4

		t.Run(fmt.Sprintf("%s-d%d", b.Notation(), depth), func(t *testing.T) {
			pruned := New(depth)
			full := New(depth).SetPruning(false)

			m1, err := pruned.BestMove(b, b.Turn())
			require.NoError(t, err)
			m2, err := full.BestMove(b, b.Turn())
			require.NoError(t, err)

			require.Equal(t, m2, m1)
			require.LessOrEqual(t, pruned.Nodes(), full.Nodes())
		})
	}
}

func TestChooseMoveRespectsLegal(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	engine := New(3)
	for i := 0; i < 30; i++ {
		b := randomPosition(r, r.Intn(30))
		legal := b.LegalMoves()
		if len(legal) == 0 {
			continue
		}
		move, err := engine.ChooseMove(b, legal)
		require.NoError(t, err)
		require.True(t, agent.Contains(legal, move))
	}

	// Restricted legal set, the center is not offered
	move, err := New(1).ChooseMove(board.New(), []int{0, 6})
	require.NoError(t, err)
	require.Contains(t, []int{0, 6}, move)
}

func TestNoLegalMove(t *testing.T) {
	_, err := New(2).ChooseMove(board.New(), nil)
	require.ErrorIs(t, err, agent.ErrNoLegalMove)
}

func TestEvaluate(t *testing.T) {
	b := mustBoard(t, "......./......./......./......./......./...x...")
	require.Equal(t, CenterScore, Evaluate(&b, board.PlayerA, 1))
	require.Equal(t, 0, Evaluate(&b, board.PlayerB, 1))

	// Two A pieces side by side, the center bonus and the two-align windows
	b = mustBoard(t, "......./......./......./......./......./..xx...")
	// windows on the bottom row containing columns 2 and 3 with 2 empty cells: [0-3], [1-4], [2-5]
	require.Equal(t, CenterScore+3*2*(10-1), Evaluate(&b, board.PlayerA, 1))

	win := mustBoard(t, "......./......./......./......./ooo..../xxxx...")
	require.Equal(t, WinScore, Evaluate(&win, board.PlayerA, 2))
	require.Equal(t, LossScore, Evaluate(&win, board.PlayerB, 2))
}

func TestDecisionLogQuietByDefault(t *testing.T) {
	old := log.Logger
	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)
	defer func() { log.Logger = old }()

	_, err := New(2).BestMove(board.New(), board.PlayerA)
	require.NoError(t, err)
	require.Empty(t, buf.String())

	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)
	_, err = New(2).BestMove(board.New(), board.PlayerA)
	require.NoError(t, err)
	require.Contains(t, buf.String(), `"level":"debug"`)
}
