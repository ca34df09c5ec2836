// Command koi-history inspects the run-history database: it lists recent
// evaluation runs, summarises metric trends, and can render an HTML chart.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/kepler-data/koi.report/internal/history"
	"github.com/kepler-data/koi.report/internal/rundb"
	"github.com/kepler-data/koi.report/internal/version"
)

var (
	dbPath      = flag.String("db", "koi_runs.db", "Run-history database")
	limit       = flag.Int("limit", 20, "Number of recent runs to show (0 for all)")
	chartFile   = flag.String("chart", "", "Render an HTML metrics chart to this file")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	db, err := rundb.Open(*dbPath)
	if err != nil {
		log.Fatalf("failed to open run history: %v", err)
	}
	defer db.Close()

	runs, err := db.ListEvaluations(*limit)
	if err != nil {
		log.Fatalf("failed to list evaluation runs: %v", err)
	}
	if len(runs) == 0 {
		fmt.Println("No evaluation runs recorded.")
		return
	}

	history.WriteTable(os.Stdout, runs)
	fmt.Println()
	history.WriteSummary(os.Stdout, history.Summarize(runs))

	if stamp, err := db.LatestStamp(); err == nil && stamp != nil {
		fmt.Printf("\nLatest dataset stamp: %d planets at %s (%s)\n",
			stamp.TotalPlanets, stamp.LastUpdated, stamp.SourceFile)
	}

	if *chartFile != "" {
		f, err := os.Create(*chartFile)
		if err != nil {
			log.Fatalf("failed to create chart file: %v", err)
		}
		defer f.Close()

		if err := history.RenderChart(f, runs); err != nil {
			log.Fatalf("failed to render chart: %v", err)
		}
		fmt.Printf("Chart saved to %s\n", *chartFile)
	}
}
