// Package metadata stamps a small metadata record describing the current
// KOI dataset: how many planets it holds and when it was last refreshed.
package metadata

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/kepler-data/koi.report/internal/fsutil"
	"github.com/kepler-data/koi.report/internal/timeutil"
)

// Default file names, matching the data files the viewer serves.
const (
	DefaultSourceFile = "koiData.json"
	DefaultOutputFile = "data_metadata.json"
)

// Fixed descriptive fields of the metadata record.
const (
	dataSource      = "NASA Kepler Mission Archive"
	updateFrequency = "Weekly"
	dataVersion     = "1.0"
	generatedBy     = "Kepler Data Processing Pipeline"
)

// Record is the metadata document written alongside the dataset.
type Record struct {
	LastUpdated     string `json:"lastUpdated"`
	DataSource      string `json:"dataSource"`
	TotalPlanets    int    `json:"totalPlanets"`
	UpdateFrequency string `json:"updateFrequency"`
	DataVersion     string `json:"dataVersion"`
	GeneratedBy     string `json:"generatedBy"`
}

// Stamper builds and writes metadata records. FS and Clock are injectable
// so tests can control the filesystem and the timestamp.
type Stamper struct {
	FS    fsutil.FileSystem
	Clock timeutil.Clock
	Out   io.Writer
}

// NewStamper creates a Stamper backed by the real filesystem and clock,
// writing status lines to out.
func NewStamper(out io.Writer) *Stamper {
	return &Stamper{
		FS:    fsutil.OSFileSystem{},
		Clock: timeutil.RealClock{},
		Out:   out,
	}
}

// Run counts the planets in sourcePath and writes a fresh metadata record
// to outPath. A missing source file is tolerated (count 0, warning); a
// source file that exists but is not a valid JSON array aborts the run.
// Any returned error means the metadata file was not updated.
func (s *Stamper) Run(sourcePath, outPath string) (*Record, error) {
	count, err := s.countPlanets(sourcePath)
	if err != nil {
		fmt.Fprintf(s.Out, "❌ Error: could not parse %s: %v\n", sourcePath, err)
		return nil, err
	}

	record := &Record{
		LastUpdated:     FormatTimestamp(s.Clock.Now()),
		DataSource:      dataSource,
		TotalPlanets:    count,
		UpdateFrequency: updateFrequency,
		DataVersion:     dataVersion,
		GeneratedBy:     generatedBy,
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		fmt.Fprintf(s.Out, "❌ Error writing %s: %v\n", outPath, err)
		return nil, err
	}

	if err := s.FS.WriteFile(outPath, data, 0644); err != nil {
		fmt.Fprintf(s.Out, "❌ Error writing %s: %v\n", outPath, err)
		return nil, err
	}

	fmt.Fprintf(s.Out, "✅ Successfully updated %s\n", outPath)
	fmt.Fprintf(s.Out, "   Last Updated: %s\n", record.LastUpdated)
	fmt.Fprintf(s.Out, "   Total Planets: %d\n", record.TotalPlanets)

	return record, nil
}

// countPlanets returns the number of elements in the top-level JSON array
// at sourcePath. A missing file yields 0 with a warning; a corrupt file is
// an error.
func (s *Stamper) countPlanets(sourcePath string) (int, error) {
	data, err := s.FS.ReadFile(sourcePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(s.Out, "⚠️  Warning: %s not found, using 0 as planet count\n", sourcePath)
			return 0, nil
		}
		return 0, err
	}

	// Element shape is never inspected; only the array length matters.
	var planets []json.RawMessage
	if err := json.Unmarshal(data, &planets); err != nil {
		return 0, err
	}

	fmt.Fprintf(s.Out, "✅ Found %d planets in %s\n", len(planets), sourcePath)
	return len(planets), nil
}

// FormatTimestamp renders t as an ISO-8601 UTC instant with microsecond
// precision and a trailing Z.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000000") + "Z"
}
