// Package evaluate joins a truth catalog against a prediction catalog and
// scores the predictions as a binary classification problem.
package evaluate

import (
	"github.com/kepler-data/koi.report/internal/catalog"
)

// Binary classes for the two scored dispositions. Any other label is
// undefined and excludes the pair from metric computation.
const (
	ClassFalsePositive = 0
	ClassConfirmed     = 1
)

var dispositionBinary = map[string]int{
	"FALSE POSITIVE": ClassFalsePositive,
	"CONFIRMED":      ClassConfirmed,
}

// MapDisposition converts a disposition label to its binary class.
// ok is false for labels outside the two-value scheme.
func MapDisposition(label string) (class int, ok bool) {
	class, ok = dispositionBinary[label]
	return class, ok
}

// Pair is one joined evaluation row: a kepid present in both catalogs with
// its true and predicted labels and their binary mappings.
type Pair struct {
	Kepid     string
	TrueLabel string
	PredLabel string
	YTrue     int
	YPred     int
	TrueOK    bool
	PredOK    bool
}

// Defined reports whether both binary values are defined.
func (p Pair) Defined() bool {
	return p.TrueOK && p.PredOK
}

// Join inner-joins the truth catalog against the prediction catalog on
// kepid. Identifiers present on only one side are dropped; duplicate
// identifiers on either side produce the cross product of matches.
// Output order follows the truth catalog.
func Join(truth, pred *catalog.Catalog) []Pair {
	predByKepid := make(map[string][]catalog.Row, len(pred.Rows))
	for _, row := range pred.Rows {
		predByKepid[row.Kepid] = append(predByKepid[row.Kepid], row)
	}

	var pairs []Pair
	for _, trueRow := range truth.Rows {
		for _, predRow := range predByKepid[trueRow.Kepid] {
			pair := Pair{
				Kepid:     trueRow.Kepid,
				TrueLabel: trueRow.Disposition,
				PredLabel: predRow.Disposition,
			}
			pair.YTrue, pair.TrueOK = MapDisposition(trueRow.Disposition)
			pair.YPred, pair.PredOK = MapDisposition(predRow.Disposition)
			pairs = append(pairs, pair)
		}
	}

	return pairs
}

// MissingLabels counts undefined binary values across both columns of the
// joined pairs. A pair with unrecognised labels on both sides counts twice,
// matching an independent per-column tally.
func MissingLabels(pairs []Pair) int {
	missing := 0
	for _, p := range pairs {
		if !p.TrueOK {
			missing++
		}
		if !p.PredOK {
			missing++
		}
	}
	return missing
}
