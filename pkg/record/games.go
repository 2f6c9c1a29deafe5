package record

import (
	"io"
	"os"
	"path/filepath"

	"github.com/IlikeChooros/go-connect4/pkg/bench"
	"github.com/IlikeChooros/go-connect4/pkg/board"
	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
	"github.com/pkg/errors"
)

const gamesSchema = "connect4_game_v1"

const (
	ResultFirst      = "first"
	ResultSecond     = "second"
	ResultDraw       = "draw"
	ResultUnfinished = "unfinished"
)

// One finished game per row, moves are column indices in play order
type GameRow struct {
	GameID      string  `parquet:"game_id"`
	First       string  `parquet:"first,dict"`
	Second      string  `parquet:"second,dict"`
	Start       string  `parquet:"start,dict"` // board notation
	Moves       []int32 `parquet:"moves"`
	Result      string  `parquet:"result,dict"`
	Winner      string  `parquet:"winner,dict"`
	Plies       int32   `parquet:"plies"`
	StartedAtMs int64   `parquet:"started_at_ms"`
	DurationMs  int64   `parquet:"duration_ms"`
}

func FromGame(g *bench.GameRecord) GameRow {
	moves := make([]int32, len(g.Moves))
	for i, m := range g.Moves {
		moves[i] = int32(m)
	}

	result := ResultUnfinished
	switch {
	case g.Outcome.Status == board.Draw:
		result = ResultDraw
	case g.Outcome.Status == board.Win && g.Outcome.Winner == g.FirstMover():
		result = ResultFirst
	case g.Outcome.Status == board.Win:
		result = ResultSecond
	}

	return GameRow{
		GameID:      g.ID.String(),
		First:       g.First,
		Second:      g.Second,
		Start:       g.Start.Notation(),
		Moves:       moves,
		Result:      result,
		Winner:      g.WinnerName(),
		Plies:       int32(len(g.Moves)),
		StartedAtMs: g.StartedAt.UnixMilli(),
		DurationMs:  g.Duration.Milliseconds(),
	}
}

func FromGames(games []*bench.GameRecord) []GameRow {
	rows := make([]GameRow, 0, len(games))
	for _, g := range games {
		rows = append(rows, FromGame(g))
	}
	return rows
}

// Final position of the game, replayed from the start notation
func (r GameRow) Board() (board.Board, error) {
	b, err := board.FromNotation(r.Start)
	if err != nil {
		return b, err
	}
	for _, m := range r.Moves {
		if b, err = b.Apply(int(m), b.Turn()); err != nil {
			return b, errors.Wrapf(err, "game %s", r.GameID)
		}
	}
	return b, nil
}

func WriteGames(outPath string, rows []GameRow) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return errors.Wrap(err, "create output dir")
	}

	// Write to a temp file and rename atomically.
	tmpPath := outPath + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", gamesSchema),
	); err != nil {
		_ = os.Remove(tmpPath)
		return errors.Wrap(err, "write parquet")
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		_ = os.Remove(tmpPath)
		return errors.Wrap(err, "rename parquet")
	}
	return nil
}

func ReadGames(path string) ([]GameRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, errors.Wrap(err, "open parquet")
	}

	reader := parquet.NewGenericReader[GameRow](pf)
	defer reader.Close()

	rows := make([]GameRow, 0, int(reader.NumRows()))
	buf := make([]GameRow, 256)
	for {
		n, err := reader.Read(buf)
		if n > 0 {
			rows = append(rows, buf[:n]...)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "read parquet")
		}
	}
	return rows, nil
}
