// Package history reports on past evaluation runs recorded in the
// run-history database.
package history

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/kepler-data/koi.report/internal/rundb"
)

// MetricSummary holds the mean and sample standard deviation of one metric
// across a set of runs.
type MetricSummary struct {
	Name   string
	Mean   float64
	StdDev float64
}

// Summarize computes per-metric summary statistics over the given runs.
// StdDev is 0 when fewer than two runs are present.
func Summarize(runs []*rundb.EvaluationRun) []MetricSummary {
	if len(runs) == 0 {
		return nil
	}

	series := map[string][]float64{
		"accuracy":  make([]float64, 0, len(runs)),
		"precision": make([]float64, 0, len(runs)),
		"recall":    make([]float64, 0, len(runs)),
		"f1_score":  make([]float64, 0, len(runs)),
	}
	for _, run := range runs {
		series["accuracy"] = append(series["accuracy"], run.Accuracy)
		series["precision"] = append(series["precision"], run.Precision)
		series["recall"] = append(series["recall"], run.Recall)
		series["f1_score"] = append(series["f1_score"], run.F1Score)
	}

	summaries := make([]MetricSummary, 0, 4)
	for _, name := range []string{"accuracy", "precision", "recall", "f1_score"} {
		xs := series[name]
		s := MetricSummary{Name: name, Mean: stat.Mean(xs, nil)}
		if len(xs) > 1 {
			s.StdDev = stat.StdDev(xs, nil)
		}
		summaries = append(summaries, s)
	}

	return summaries
}

// WriteTable prints runs as an aligned text table, newest first.
func WriteTable(w io.Writer, runs []*rundb.EvaluationRun) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CREATED\tTRUTH\tPRED\tROWS\tACCURACY\tPRECISION\tRECALL\tF1")
	for _, run := range runs {
		created := time.Unix(0, run.CreatedAt).UTC().Format("2006-01-02 15:04:05")
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%.4f\t%.4f\t%.4f\t%.4f\n",
			created, run.TruthFile, run.PredFile, run.RowsEvaluated,
			run.Accuracy, run.Precision, run.Recall, run.F1Score)
	}
	tw.Flush()
}

// WriteSummary prints the per-metric mean and standard deviation.
func WriteSummary(w io.Writer, summaries []MetricSummary) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "METRIC\tMEAN\tSTDDEV")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%.4f\t%.4f\n", s.Name, s.Mean, s.StdDev)
	}
	tw.Flush()
}
