package evaluate

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/kepler-data/koi.report/internal/fsutil"
)

// DefaultMetricsFile is the fixed output filename for the metrics report.
const DefaultMetricsFile = "metrics.json"

// Metrics holds the four classification scores, each in [0, 1].
type Metrics struct {
	Accuracy  float64 `json:"accuracy"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1Score   float64 `json:"f1_score"`
}

// Counts is the confusion matrix over the evaluated pairs, with CONFIRMED
// as the positive class.
type Counts struct {
	TruePositives  int
	TrueNegatives  int
	FalsePositives int
	FalseNegatives int
}

// Evaluated returns the total number of scored pairs.
func (c Counts) Evaluated() int {
	return c.TruePositives + c.TrueNegatives + c.FalsePositives + c.FalseNegatives
}

// Compute scores the fully-defined pairs. Pairs with an undefined binary
// value on either side are skipped. Ratios with a zero denominator are
// reported as 0 with a logged warning rather than an error, matching the
// usual classification-library convention.
func Compute(pairs []Pair) (Metrics, Counts) {
	var c Counts
	for _, p := range pairs {
		if !p.Defined() {
			continue
		}
		switch {
		case p.YTrue == ClassConfirmed && p.YPred == ClassConfirmed:
			c.TruePositives++
		case p.YTrue == ClassFalsePositive && p.YPred == ClassConfirmed:
			c.FalsePositives++
		case p.YTrue == ClassConfirmed && p.YPred == ClassFalsePositive:
			c.FalseNegatives++
		default:
			c.TrueNegatives++
		}
	}

	var m Metrics
	total := c.Evaluated()
	if total > 0 {
		m.Accuracy = float64(c.TruePositives+c.TrueNegatives) / float64(total)
	} else {
		log.Printf("WARNING: no rows with defined labels; all metrics set to 0")
		return m, c
	}

	if c.TruePositives+c.FalsePositives > 0 {
		m.Precision = float64(c.TruePositives) / float64(c.TruePositives+c.FalsePositives)
	} else {
		log.Printf("WARNING: no predicted positives; precision set to 0")
	}

	if c.TruePositives+c.FalseNegatives > 0 {
		m.Recall = float64(c.TruePositives) / float64(c.TruePositives+c.FalseNegatives)
	} else {
		log.Printf("WARNING: no true positives in ground truth; recall set to 0")
	}

	if m.Precision+m.Recall > 0 {
		m.F1Score = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	} else {
		log.Printf("WARNING: precision and recall both 0; f1_score set to 0")
	}

	return m, c
}

// WriteMetrics serialises the metrics as a four-key JSON object with
// 4-space indentation, overwriting any existing file at path.
func WriteMetrics(fs fsutil.FileSystem, path string, m Metrics) error {
	data, err := json.MarshalIndent(m, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal metrics: %w", err)
	}
	if err := fs.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write metrics %s: %w", path, err)
	}
	return nil
}
