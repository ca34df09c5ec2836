// Command koi-stats scores KOI disposition predictions against the NASA
// cumulative catalog and writes the resulting classification metrics to a
// JSON report.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/kepler-data/koi.report/internal/catalog"
	"github.com/kepler-data/koi.report/internal/evaluate"
	"github.com/kepler-data/koi.report/internal/fsutil"
	"github.com/kepler-data/koi.report/internal/rundb"
	"github.com/kepler-data/koi.report/internal/version"
)

var (
	truthFile   = flag.String("true", "cumulative_2025.10.01_20.20.34.csv", "Ground-truth catalog CSV")
	predFile    = flag.String("pred", "results.csv", "Prediction catalog CSV")
	outFile     = flag.String("out", evaluate.DefaultMetricsFile, "Metrics output file")
	dbPath      = flag.String("db", "", "Optional run-history database (recorded best-effort)")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	fs := fsutil.OSFileSystem{}

	truth, err := catalog.Load(fs, *truthFile, catalog.ColumnDisposition)
	if err != nil {
		log.Fatalf("failed to load ground-truth catalog: %v", err)
	}
	pred, err := catalog.Load(fs, *predFile, catalog.ColumnDispositionPred)
	if err != nil {
		log.Fatalf("failed to load prediction catalog: %v", err)
	}

	pairs := evaluate.Join(truth, pred)

	if missing := evaluate.MissingLabels(pairs); missing > 0 {
		fmt.Printf("Warning: %d rows have missing labels and will be excluded from metrics.\n", missing)
	}

	metrics, counts := evaluate.Compute(pairs)

	if err := evaluate.WriteMetrics(fs, *outFile, metrics); err != nil {
		log.Fatalf("failed to write metrics: %v", err)
	}

	fmt.Printf("Metrics saved to %s\n", *outFile)
	fmt.Printf("Evaluation performed on %d rows.\n", counts.Evaluated())

	if *dbPath != "" {
		recordRun(*dbPath, pairs, metrics, counts)
	}
}

// recordRun appends the run to the history database. Failures are logged
// but never fail the run; the metrics file is the primary artifact.
func recordRun(path string, pairs []evaluate.Pair, metrics evaluate.Metrics, counts evaluate.Counts) {
	db, err := rundb.Open(path)
	if err != nil {
		log.Printf("WARNING: could not open run history %s: %v", path, err)
		return
	}
	defer db.Close()

	run := &rundb.EvaluationRun{
		TruthFile:     *truthFile,
		PredFile:      *predFile,
		RowsJoined:    len(pairs),
		RowsEvaluated: counts.Evaluated(),
		LabelsMissing: evaluate.MissingLabels(pairs),
		Accuracy:      metrics.Accuracy,
		Precision:     metrics.Precision,
		Recall:        metrics.Recall,
		F1Score:       metrics.F1Score,
	}
	if err := db.InsertEvaluation(run); err != nil {
		log.Printf("WARNING: could not record run history: %v", err)
	}
}
