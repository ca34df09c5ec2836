package rundb

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// EvaluationRun is one persisted metrics computation: which files were
// compared, how many rows survived the join and the label drop, and the
// four resulting scores.
type EvaluationRun struct {
	RunID         string  `json:"run_id"`
	CreatedAt     int64   `json:"created_at_ns"`
	TruthFile     string  `json:"truth_file"`
	PredFile      string  `json:"pred_file"`
	RowsJoined    int     `json:"rows_joined"`
	RowsEvaluated int     `json:"rows_evaluated"`
	LabelsMissing int     `json:"labels_missing"`
	Accuracy      float64 `json:"accuracy"`
	Precision     float64 `json:"precision"`
	Recall        float64 `json:"recall"`
	F1Score       float64 `json:"f1_score"`
}

// Stamp is one persisted metadata-stamper run.
type Stamp struct {
	StampID      string `json:"stamp_id"`
	CreatedAt    int64  `json:"created_at_ns"`
	SourceFile   string `json:"source_file"`
	TotalPlanets int    `json:"total_planets"`
	LastUpdated  string `json:"last_updated"`
}

// InsertEvaluation persists a new evaluation run. If RunID is empty, a
// UUID is generated. If CreatedAt is zero, the current time is used.
func (db *DB) InsertEvaluation(run *EvaluationRun) error {
	if run.RunID == "" {
		run.RunID = uuid.New().String()
	}
	if run.CreatedAt == 0 {
		run.CreatedAt = time.Now().UnixNano()
	}

	return retryOnBusy(func() error {
		_, err := db.Exec(`
			INSERT INTO evaluation_runs (
				run_id, created_at_ns, truth_file, pred_file,
				rows_joined, rows_evaluated, labels_missing,
				accuracy, precision, recall, f1_score
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.RunID, run.CreatedAt, run.TruthFile, run.PredFile,
			run.RowsJoined, run.RowsEvaluated, run.LabelsMissing,
			run.Accuracy, run.Precision, run.Recall, run.F1Score,
		)
		return err
	})
}

// InsertStamp persists a new metadata stamp record.
func (db *DB) InsertStamp(stamp *Stamp) error {
	if stamp.StampID == "" {
		stamp.StampID = uuid.New().String()
	}
	if stamp.CreatedAt == 0 {
		stamp.CreatedAt = time.Now().UnixNano()
	}

	return retryOnBusy(func() error {
		_, err := db.Exec(`
			INSERT INTO metadata_stamps (
				stamp_id, created_at_ns, source_file, total_planets, last_updated
			) VALUES (?, ?, ?, ?, ?)`,
			stamp.StampID, stamp.CreatedAt, stamp.SourceFile,
			stamp.TotalPlanets, stamp.LastUpdated,
		)
		return err
	})
}

// ListEvaluations returns up to limit evaluation runs, newest first.
// A limit <= 0 returns all runs.
func (db *DB) ListEvaluations(limit int) ([]*EvaluationRun, error) {
	query := `
		SELECT run_id, created_at_ns, truth_file, pred_file,
		       rows_joined, rows_evaluated, labels_missing,
		       accuracy, precision, recall, f1_score
		FROM evaluation_runs
		ORDER BY created_at_ns DESC`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list evaluation runs: %w", err)
	}
	defer rows.Close()

	var runs []*EvaluationRun
	for rows.Next() {
		var run EvaluationRun
		if err := rows.Scan(
			&run.RunID, &run.CreatedAt, &run.TruthFile, &run.PredFile,
			&run.RowsJoined, &run.RowsEvaluated, &run.LabelsMissing,
			&run.Accuracy, &run.Precision, &run.Recall, &run.F1Score,
		); err != nil {
			return nil, fmt.Errorf("scan evaluation run: %w", err)
		}
		runs = append(runs, &run)
	}

	return runs, rows.Err()
}

// LatestStamp returns the most recent metadata stamp, or nil if none exist.
func (db *DB) LatestStamp() (*Stamp, error) {
	var stamp Stamp
	err := db.QueryRow(`
		SELECT stamp_id, created_at_ns, source_file, total_planets, last_updated
		FROM metadata_stamps
		ORDER BY created_at_ns DESC
		LIMIT 1`,
	).Scan(&stamp.StampID, &stamp.CreatedAt, &stamp.SourceFile,
		&stamp.TotalPlanets, &stamp.LastUpdated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest stamp: %w", err)
	}
	return &stamp, nil
}

// retryOnBusy retries fn a few times when SQLite reports the database as
// busy or locked. Other errors are returned immediately.
func retryOnBusy(fn func() error) error {
	const maxAttempts = 5

	var err error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		err = fn()
		if err == nil || !isBusyErr(err) {
			return err
		}
		time.Sleep(time.Duration(attempt+1) * 10 * time.Millisecond)
	}
	return err
}

func isBusyErr(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "SQLITE_BUSY")
}
