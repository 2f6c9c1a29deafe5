package record

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/IlikeChooros/go-connect4/pkg/agent"
	"github.com/IlikeChooros/go-connect4/pkg/bench"
	"github.com/IlikeChooros/go-connect4/pkg/board"
	"github.com/IlikeChooros/go-connect4/pkg/minimax"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func playGames(t *testing.T, n int) []*bench.GameRecord {
	t.Helper()
	games := make([]*bench.GameRecord, 0, n)
	for i := 0; i < n; i++ {
		first, second := agent.Agent(minimax.New(2)), agent.Agent(agent.NewRandom(int64(i)))
		if i%2 == 1 {
			first, second = second, first
		}
		g, err := bench.PlayGame(context.Background(), first, second, nil)
		require.NoError(t, err)
		games = append(games, g)
	}
	return games
}

func TestFromGame(t *testing.T) {
	start, err := board.FromNotation("......./......./......./......./ooo..../xxx....")
	require.NoError(t, err)

	g := &bench.GameRecord{
		ID:        uuid.New(),
		Start:     start,
		Moves:     []int{3},
		Outcome:   board.Outcome{Status: board.Win, Winner: board.PlayerA},
		First:     "minimax",
		Second:    "random",
		StartedAt: time.UnixMilli(1700000000000),
		Duration:  1500 * time.Millisecond,
	}

	row := FromGame(g)
	require.Equal(t, g.ID.String(), row.GameID)
	require.Equal(t, ResultFirst, row.Result)
	require.Equal(t, "minimax", row.Winner)
	require.Equal(t, []int32{3}, row.Moves)
	require.EqualValues(t, 1, row.Plies)
	require.EqualValues(t, 1700000000000, row.StartedAtMs)
	require.EqualValues(t, 1500, row.DurationMs)

	final, err := row.Board()
	require.NoError(t, err)
	require.Equal(t, g.Outcome, final.Outcome())

	g.Outcome = board.Outcome{Status: board.Win, Winner: board.PlayerB}
	require.Equal(t, ResultSecond, FromGame(g).Result)
	require.Equal(t, "random", FromGame(g).Winner)
	g.Outcome = board.Outcome{Status: board.Draw}
	require.Equal(t, ResultDraw, FromGame(g).Result)
	require.Empty(t, FromGame(g).Winner)
	g.Outcome = board.Outcome{}
	require.Equal(t, ResultUnfinished, FromGame(g).Result)
}

func TestWriteReadGames(t *testing.T) {
	games := playGames(t, 6)
	rows := FromGames(games)
	path := filepath.Join(t.TempDir(), "out", "games.parquet")

	require.NoError(t, WriteGames(path, rows))
	_, err := os.Stat(path + ".tmp")
	require.True(t, os.IsNotExist(err))

	read, err := ReadGames(path)
	require.NoError(t, err)
	require.Len(t, read, len(rows))

	for i, row := range read {
		require.Equal(t, rows[i].GameID, row.GameID)
		require.Equal(t, rows[i].First, row.First)
		require.Equal(t, rows[i].Second, row.Second)
		require.Equal(t, rows[i].Moves, row.Moves)
		require.Equal(t, rows[i].Result, row.Result)
		require.Equal(t, rows[i].Winner, row.Winner)
		require.Equal(t, rows[i].Plies, row.Plies)
		require.Equal(t, rows[i].StartedAtMs, row.StartedAtMs)

		final, err := row.Board()
		require.NoError(t, err)
		require.Equal(t, games[i].Final, final)
	}
}

func TestReadGamesMissing(t *testing.T) {
	_, err := ReadGames(filepath.Join(t.TempDir(), "missing.parquet"))
	require.Error(t, err)
}

func testCurve() *bench.TrainingCurve {
	return &bench.TrainingCurve{
		Learner:  "qlearn",
		Opponent: "random",
		Points: []bench.TrainingPoint{
			{Episode: 100, Wins: 40, Draws: 0, Losses: 60, States: 900, WinRate: 0.4, LossRate: 0.6},
			{Episode: 200, Wins: 55, Draws: 1, Losses: 44, States: 1700, WinRate: 0.55, DrawRate: 0.01, LossRate: 0.44},
		},
	}
}

func TestRenderCurve(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderCurve(&buf, testCurve()))

	html := buf.String()
	require.Contains(t, html, "qlearn vs random")
	require.Contains(t, html, "win rate")
	require.Contains(t, html, "loss rate")
	require.Contains(t, html, "known states")
}

func TestWriteCurveHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "charts", "training.html")
	require.NoError(t, WriteCurveHTML(path, testCurve()))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(raw), "draw rate")
}
