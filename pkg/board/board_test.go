package board

import (
	"fmt"
	"io"
	"math/rand"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"
)

func mustBoard(t *testing.T, notation string) Board {
	t.Helper()
	b, err := FromNotation(notation)
	require.NoError(t, err)
	return b
}

func TestWindowsCount(t *testing.T) {
	seen := make(map[Window]bool, NumWindows)
	for _, w := range Windows {
		require.False(t, seen[w], "window %v repeated", w)
		seen[w] = true
		for _, sq := range w {
			require.True(t, sq.Row >= 0 && sq.Row < Rows && sq.Col >= 0 && sq.Col < Columns, "square %v out of board", sq)
		}
	}
	require.Len(t, seen, NumWindows)
}

func TestApplyGravity(t *testing.T) {
	b := New()
	next, err := b.Apply(3, PlayerA)
	require.NoError(t, err)
	require.Equal(t, PlayerA, next[Rows-1][3])
	require.Equal(t, Empty, b[Rows-1][3], "original board must stay unchanged")

	next, err = next.Apply(3, PlayerB)
	require.NoError(t, err)
	require.Equal(t, PlayerB, next[Rows-2][3])
}

func TestApplyFullColumn(t *testing.T) {
	b := New()
	var err error
	player := PlayerA
	for range Rows {
		b, err = b.Apply(0, player)
		require.NoError(t, err)
		player = player.Opponent()
	}

	require.False(t, b.IsLegal(0))
	require.NotContains(t, b.LegalMoves(), 0)

	_, err = b.Apply(0, player)
	require.ErrorIs(t, err, ErrInvalidMove)

	_, err = b.Apply(Columns, player)
	require.ErrorIs(t, err, ErrInvalidMove)

	_, err = b.Apply(1, Empty)
	require.ErrorIs(t, err, ErrInvalidMove)
}

func TestOutcomeWins(t *testing.T) {
	cases := []struct {
		name     string
		notation string
		winner   Cell
	}{
		{"horizontal", "......./......./......./......./......./oooxxxx", PlayerA},
		{"vertical", "......./......./..o..../..o..../..o.x../..o.xx.", PlayerB},
		{"rising", "......./......./...x.../..xo.../.xoo.../xooxx..", PlayerA},
		{"falling", "......./......./o....../xo...../xxo..../xxxo...", PlayerB},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			outcome := mustBoard(t, c.notation).Outcome()
			require.Equal(t, Outcome{Status: Win, Winner: c.winner}, outcome)
			require.True(t, outcome.Terminal())
		})
	}
}

func TestOutcomeDraw(t *testing.T) {
	// Full board without four in a row
	b := mustBoard(t, "xxoxxox/ooxooxo/xxoxxox/ooxooxo/xxoxxox/ooxooxo")
	require.Empty(t, b.LegalMoves())
	require.Equal(t, Outcome{Status: Draw}, b.Outcome())
}

func TestOutcomeInProgress(t *testing.T) {
	require.Equal(t, InProgress, New().Outcome().Status)
	b := mustBoard(t, "......./......./......./......./......./xxx.ooo")
	require.False(t, b.Outcome().Terminal())
}

func TestTurn(t *testing.T) {
	b := New()
	require.Equal(t, PlayerA, b.Turn())
	b, _ = b.Apply(0, PlayerA)
	require.Equal(t, PlayerB, b.Turn())
	b, _ = b.Apply(0, PlayerB)
	require.Equal(t, PlayerA, b.Turn())
}

func TestNotationRoundTrip(t *testing.T) {
	notation := "......./......./......./...o.../..xx.../.oxxo.."
	b := mustBoard(t, notation)
	require.Equal(t, notation, b.Notation())
	require.Equal(t, StartingPosition, New().Notation())
}

func TestNotationErrors(t *testing.T) {
	for _, notation := range []string{
		"",
		"......./.......",
		"......./......./......./......./......./......",
		"......./......./......./......./......./...z...",
		"......./......./......./...x.../......./.......",
	} {
		_, err := FromNotation(notation)
		require.ErrorIs(t, err, ErrInvalidNotation, "notation %q", notation)
	}
}

// Random playouts always end with a terminal outcome and keep gravity
func TestRandomPlayouts(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		t.Run(fmt.Sprintf("Playout-%d", i), func(t *testing.T) {
			b := New()
			player := PlayerA
			for plies := 0; !b.Outcome().Terminal(); plies++ {
				if plies > Rows*Columns {
					t.Fatal("game did not terminate")
				}
				moves := b.LegalMoves()
				if len(moves) == 0 {
					t.Fatal("no legal moves on a non-terminal board")
				}
				next, err := b.Apply(moves[r.Intn(len(moves))], player)
				if err != nil {
					t.Fatal(err)
				}
				b = next
				player = player.Opponent()
			}

			if _, err := FromNotation(b.Notation()); err != nil {
				t.Fatalf("gravity broken: %v", err)
			}
		})
	}
}

func TestRender(t *testing.T) {
	out := termenv.NewOutput(io.Discard, termenv.WithProfile(termenv.Ascii))
	b := mustBoard(t, "......./......./......./......./......./...xo..")
	rendered := b.Render(out)

	lines := strings.Split(strings.TrimRight(rendered, "\n"), "\n")
	require.Len(t, lines, Rows+1)
	require.Equal(t, "| | | |x|o| | |", lines[Rows-1])
}
