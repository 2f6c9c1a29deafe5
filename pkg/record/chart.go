package record

import (
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/IlikeChooros/go-connect4/pkg/bench"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/pkg/errors"
)

// Writes an HTML page with the learner's win/draw/loss rates and the table size per block
func RenderCurve(w io.Writer, curve *bench.TrainingCurve) error {
	episodes := make([]string, 0, len(curve.Points))
	wins := make([]opts.LineData, 0, len(curve.Points))
	draws := make([]opts.LineData, 0, len(curve.Points))
	losses := make([]opts.LineData, 0, len(curve.Points))
	states := make([]opts.LineData, 0, len(curve.Points))

	for _, p := range curve.Points {
		episodes = append(episodes, strconv.Itoa(p.Episode))
		wins = append(wins, opts.LineData{Value: p.WinRate})
		draws = append(draws, opts.LineData{Value: p.DrawRate})
		losses = append(losses, opts.LineData{Value: p.LossRate})
		states = append(states, opts.LineData{Value: p.States})
	}

	rates := charts.NewLine()
	rates.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    curve.Learner + " vs " + curve.Opponent,
			Subtitle: "results per training block",
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: "shine",
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "episode"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "rate"}),
	)
	rates.SetXAxis(episodes).
		AddSeries("win rate", wins).
		AddSeries("draw rate", draws).
		AddSeries("loss rate", losses)

	size := charts.NewLine()
	size.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: "known states",
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: "shine",
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "episode"}),
	)
	size.SetXAxis(episodes).AddSeries("states", states)

	page := components.NewPage()
	page.AddCharts(rates, size)
	return page.Render(w)
}

func WriteCurveHTML(path string, curve *bench.TrainingCurve) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create chart dir")
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create chart file")
	}
	defer f.Close()

	if err := RenderCurve(f, curve); err != nil {
		return errors.Wrap(err, "render chart")
	}
	return f.Close()
}
