// Package catalog loads KOI catalog tables from CSV exports of the NASA
// Exoplanet Archive. Archive exports prefix the data with a block of
// comment lines starting with '#'; those are skipped before parsing.
package catalog

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/kepler-data/koi.report/internal/fsutil"
)

// Column names shared by the truth and prediction catalogs.
const (
	ColumnKepid           = "kepid"
	ColumnDisposition     = "koi_disposition"
	ColumnDispositionPred = "koi_disposition_pred"
)

// Row is a single catalog entry: the KOI identifier and its disposition
// label. Kepid is kept as the raw (trimmed) text of the identifier cell;
// rows join on exact text equality.
type Row struct {
	Kepid       string
	Disposition string
}

// Catalog holds the rows of one loaded catalog file.
type Catalog struct {
	Path              string
	DispositionColumn string
	Rows              []Row
}

// Load reads a catalog CSV from fs, keeping the kepid column and the named
// disposition column. Lines whose first non-blank character is '#' are
// treated as comments and skipped. A missing file, unparseable CSV, or
// absent required column is a returned error.
func Load(fs fsutil.FileSystem, path, dispositionColumn string) (*Catalog, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	records, err := parseCSV(data)
	if err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("parse catalog %s: no header row", path)
	}

	header := records[0]
	kepidIdx := columnIndex(header, ColumnKepid)
	if kepidIdx < 0 {
		return nil, fmt.Errorf("catalog %s: missing required column %q", path, ColumnKepid)
	}
	dispIdx := columnIndex(header, dispositionColumn)
	if dispIdx < 0 {
		return nil, fmt.Errorf("catalog %s: missing required column %q", path, dispositionColumn)
	}

	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		rows = append(rows, Row{
			Kepid:       strings.TrimSpace(record[kepidIdx]),
			Disposition: strings.TrimSpace(record[dispIdx]),
		})
	}

	return &Catalog{
		Path:              path,
		DispositionColumn: dispositionColumn,
		Rows:              rows,
	}, nil
}

// parseCSV strips comment lines and parses the remainder. csv.Reader
// enforces a consistent field count against the header, so a ragged row
// surfaces as a parse error rather than a silent misalignment.
func parseCSV(data []byte) ([][]string, error) {
	var filtered bytes.Buffer
	for _, line := range bytes.Split(data, []byte("\n")) {
		trimmed := bytes.TrimLeft(line, " \t")
		if len(trimmed) > 0 && trimmed[0] == '#' {
			continue
		}
		filtered.Write(line)
		filtered.WriteByte('\n')
	}

	reader := csv.NewReader(&filtered)
	return reader.ReadAll()
}

func columnIndex(header []string, name string) int {
	for i, h := range header {
		if strings.TrimSpace(h) == name {
			return i
		}
	}
	return -1
}
