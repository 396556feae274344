package storage

import (
	"database/sql"
)

// StartImportRun records the start of an import and returns the run ID
func (s *Storage) StartImportRun(accountID, userID, sourceLabel string) (int64, error) {
	query := `
		INSERT INTO import_runs (account_id, user_id, source_label, status)
		VALUES (?, ?, ?, 'running')
	`

	result, err := s.db.Exec(query, accountID, userID, sourceLabel)
	if err != nil {
		return 0, err
	}

	return result.LastInsertId()
}

// RecordStagingCounts stores conflict-detection counts and moves the run
// to 'staged'
func (s *Storage) RecordStagingCounts(runID int64, counts StagingCounts) error {
	query := `
		UPDATE import_runs
		SET rows_in = ?,
		    staged = ?,
		    batch_conflicts = ?,
		    database_conflicts = ?,
		    reversal_conflicts = ?,
		    rule_skipped = ?,
		    status = 'staged'
		WHERE id = ?
	`

	_, err := s.db.Exec(query,
		counts.RowsIn,
		counts.Staged,
		counts.BatchConflicts,
		counts.DatabaseConflicts,
		counts.ReversalConflicts,
		counts.RuleSkipped,
		runID,
	)
	return err
}

// CompleteImportRun records the merge outcome and closes the run
func (s *Storage) CompleteImportRun(runID int64, merged, duplicates int, errored bool) error {
	query := `
		UPDATE import_runs
		SET completed_at = CURRENT_TIMESTAMP,
		    merged = ?,
		    duplicates = ?,
		    status = CASE WHEN ? THEN 'failed' ELSE 'completed' END
		WHERE id = ?
	`

	_, err := s.db.Exec(query, merged, duplicates, errored, runID)
	return err
}

const importRunColumns = `
	id, account_id, user_id, source_label, started_at, completed_at,
	rows_in, staged, batch_conflicts, database_conflicts,
	reversal_conflicts, rule_skipped, merged, duplicates, status`

// ListImportRuns returns recent import runs, newest first
func (s *Storage) ListImportRuns(limit int) ([]ImportRun, error) {
	if limit == 0 {
		limit = 20
	}

	query := "SELECT" + importRunColumns +
		" FROM import_runs ORDER BY started_at DESC, id DESC LIMIT ?"

	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var runs []ImportRun
	for rows.Next() {
		run, err := scanImportRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}

	return runs, rows.Err()
}

// GetImportRun retrieves an import run by ID; nil if absent
func (s *Storage) GetImportRun(runID int64) (*ImportRun, error) {
	row := s.db.QueryRow("SELECT"+importRunColumns+" FROM import_runs WHERE id = ?", runID)

	run, err := scanImportRun(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

func scanImportRun(row scanner) (*ImportRun, error) {
	var run ImportRun
	var sourceLabel, completedAt sql.NullString

	err := row.Scan(
		&run.ID,
		&run.AccountID,
		&run.UserID,
		&sourceLabel,
		&run.StartedAt,
		&completedAt,
		&run.RowsIn,
		&run.Staged,
		&run.BatchConflicts,
		&run.DatabaseConflicts,
		&run.ReversalConflicts,
		&run.RuleSkipped,
		&run.Merged,
		&run.Duplicates,
		&run.Status,
	)
	if err != nil {
		return nil, err
	}

	run.SourceLabel = sourceLabel.String
	run.CompletedAt = completedAt.String
	return &run, nil
}
