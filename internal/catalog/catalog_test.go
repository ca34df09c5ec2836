package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kepler-data/koi.report/internal/fsutil"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("skips comment lines and trims fields", func(t *testing.T) {
		t.Parallel()
		fs := fsutil.NewMemoryFileSystem()
		require.NoError(t, fs.WriteFile("cumulative.csv", []byte(
			"# This file was produced by the NASA Exoplanet Archive\n"+
				"# COLUMN kepid: KepID\n"+
				"kepid,kepoi_name,koi_disposition\n"+
				"10797460,K00752.01,CONFIRMED\n"+
				"10811496,K00753.01, FALSE POSITIVE\n"), 0644))

		cat, err := Load(fs, "cumulative.csv", ColumnDisposition)
		require.NoError(t, err)

		want := []Row{
			{Kepid: "10797460", Disposition: "CONFIRMED"},
			{Kepid: "10811496", Disposition: "FALSE POSITIVE"},
		}
		if diff := cmp.Diff(want, cat.Rows); diff != "" {
			t.Errorf("rows mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("selects the named disposition column", func(t *testing.T) {
		t.Parallel()
		fs := fsutil.NewMemoryFileSystem()
		require.NoError(t, fs.WriteFile("results.csv", []byte(
			"kepid,koi_disposition_pred\n"+
				"10797460,CONFIRMED\n"), 0644))

		cat, err := Load(fs, "results.csv", ColumnDispositionPred)
		require.NoError(t, err)
		require.Len(t, cat.Rows, 1)
		assert.Equal(t, "CONFIRMED", cat.Rows[0].Disposition)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		t.Parallel()
		fs := fsutil.NewMemoryFileSystem()

		_, err := Load(fs, "nope.csv", ColumnDisposition)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "nope.csv")
	})

	t.Run("missing required column is an error", func(t *testing.T) {
		t.Parallel()
		fs := fsutil.NewMemoryFileSystem()
		require.NoError(t, fs.WriteFile("bad.csv", []byte(
			"kepid,kepoi_name\n10797460,K00752.01\n"), 0644))

		_, err := Load(fs, "bad.csv", ColumnDisposition)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "koi_disposition")
	})

	t.Run("ragged row is a parse error", func(t *testing.T) {
		t.Parallel()
		fs := fsutil.NewMemoryFileSystem()
		require.NoError(t, fs.WriteFile("ragged.csv", []byte(
			"kepid,koi_disposition\n10797460,CONFIRMED,extra\n"), 0644))

		_, err := Load(fs, "ragged.csv", ColumnDisposition)
		require.Error(t, err)
	})

	t.Run("empty file is an error", func(t *testing.T) {
		t.Parallel()
		fs := fsutil.NewMemoryFileSystem()
		require.NoError(t, fs.WriteFile("empty.csv", []byte("# only comments\n"), 0644))

		_, err := Load(fs, "empty.csv", ColumnDisposition)
		require.Error(t, err)
	})
}
