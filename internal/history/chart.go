package history

import (
	"fmt"
	"io"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/kepler-data/koi.report/internal/rundb"
)

// RenderChart writes an HTML line chart of the four metrics across runs,
// oldest to newest, to w.
func RenderChart(w io.Writer, runs []*rundb.EvaluationRun) error {
	if len(runs) == 0 {
		return fmt.Errorf("no evaluation runs to chart")
	}

	// Runs come newest-first from the store; chart left-to-right in time.
	ordered := make([]*rundb.EvaluationRun, len(runs))
	for i, run := range runs {
		ordered[len(runs)-1-i] = run
	}

	xAxis := make([]string, len(ordered))
	accuracy := make([]opts.LineData, len(ordered))
	precision := make([]opts.LineData, len(ordered))
	recall := make([]opts.LineData, len(ordered))
	f1 := make([]opts.LineData, len(ordered))
	for i, run := range ordered {
		xAxis[i] = time.Unix(0, run.CreatedAt).UTC().Format("01-02 15:04")
		accuracy[i] = opts.LineData{Value: run.Accuracy}
		precision[i] = opts.LineData{Value: run.Precision}
		recall[i] = opts.LineData{Value: run.Recall}
		f1[i] = opts.LineData{Value: run.F1Score}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "KOI Classification Metrics"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "KOI Classification Metrics",
			Subtitle: fmt.Sprintf("%d evaluation runs", len(ordered)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Min: 0, Max: 1}),
	)

	line.SetXAxis(xAxis).
		AddSeries("accuracy", accuracy).
		AddSeries("precision", precision).
		AddSeries("recall", recall).
		AddSeries("f1_score", f1)

	return line.Render(w)
}
