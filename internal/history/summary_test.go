package history

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kepler-data/koi.report/internal/rundb"
)

func testRuns() []*rundb.EvaluationRun {
	return []*rundb.EvaluationRun{
		{
			RunID: "b", CreatedAt: 2e9, TruthFile: "cumulative.csv", PredFile: "results.csv",
			RowsEvaluated: 10, Accuracy: 1.0, Precision: 1.0, Recall: 1.0, F1Score: 1.0,
		},
		{
			RunID: "a", CreatedAt: 1e9, TruthFile: "cumulative.csv", PredFile: "results.csv",
			RowsEvaluated: 10, Accuracy: 0.5, Precision: 0.5, Recall: 0.5, F1Score: 0.5,
		},
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, Summarize(nil))
	})

	t.Run("mean and sample stddev per metric", func(t *testing.T) {
		t.Parallel()
		summaries := Summarize(testRuns())
		require.Len(t, summaries, 4)

		names := make([]string, len(summaries))
		for i, s := range summaries {
			names[i] = s.Name
			assert.InDelta(t, 0.75, s.Mean, 1e-9)
			// Sample stddev of {1.0, 0.5}.
			assert.InDelta(t, 0.35355339, s.StdDev, 1e-6)
		}
		assert.Equal(t, []string{"accuracy", "precision", "recall", "f1_score"}, names)
	})

	t.Run("single run has zero stddev", func(t *testing.T) {
		t.Parallel()
		summaries := Summarize(testRuns()[:1])
		require.Len(t, summaries, 4)
		for _, s := range summaries {
			assert.Equal(t, 0.0, s.StdDev)
		}
	})
}

func TestWriteTable(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	WriteTable(&buf, testRuns())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "ACCURACY")
	assert.Contains(t, lines[1], "1.0000")
	assert.Contains(t, lines[2], "0.5000")
}

func TestWriteSummary(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	WriteSummary(&buf, Summarize(testRuns()))

	out := buf.String()
	assert.Contains(t, out, "METRIC")
	assert.Contains(t, out, "f1_score")
	assert.Contains(t, out, "0.7500")
}

func TestRenderChart(t *testing.T) {
	t.Parallel()

	t.Run("renders an HTML page with all four series", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		require.NoError(t, RenderChart(&buf, testRuns()))

		out := buf.String()
		assert.Contains(t, out, "<html>")
		assert.Contains(t, out, "accuracy")
		assert.Contains(t, out, "precision")
		assert.Contains(t, out, "recall")
		assert.Contains(t, out, "f1_score")
	})

	t.Run("errors on empty input", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		assert.Error(t, RenderChart(&buf, nil))
	})
}
