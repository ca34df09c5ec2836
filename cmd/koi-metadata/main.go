// Command koi-metadata refreshes data_metadata.json after a new koiData.json
// has been generated: it counts the planets in the dataset and stamps the
// metadata with the current time. Exits 0 on success, 1 on failure.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/kepler-data/koi.report/internal/metadata"
	"github.com/kepler-data/koi.report/internal/rundb"
	"github.com/kepler-data/koi.report/internal/version"
)

var (
	sourceFile  = flag.String("source", metadata.DefaultSourceFile, "KOI dataset JSON array")
	outFile     = flag.String("out", metadata.DefaultOutputFile, "Metadata output file")
	dbPath      = flag.String("db", "", "Optional run-history database (recorded best-effort)")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	fmt.Println("🚀 Updating data metadata...")

	stamper := metadata.NewStamper(os.Stdout)
	record, err := stamper.Run(*sourceFile, *outFile)
	if err != nil {
		os.Exit(1)
	}

	if *dbPath != "" {
		recordStamp(*dbPath, record)
	}
}

// recordStamp appends the stamp to the history database. Failures are
// logged but never change the exit status.
func recordStamp(path string, record *metadata.Record) {
	db, err := rundb.Open(path)
	if err != nil {
		log.Printf("WARNING: could not open run history %s: %v", path, err)
		return
	}
	defer db.Close()

	stamp := &rundb.Stamp{
		SourceFile:   *sourceFile,
		TotalPlanets: record.TotalPlanets,
		LastUpdated:  record.LastUpdated,
	}
	if err := db.InsertStamp(stamp); err != nil {
		log.Printf("WARNING: could not record stamp history: %v", err)
	}
}
