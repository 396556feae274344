// Package service coordinates the import pipeline with persistent storage.
// Handlers and CLI commands talk to this layer, never to the database or
// the pipeline directly.
package service

import (
	"fmt"
	"log/slog"

	"github.com/ledgerpipe/ledgerpipe/internal/domain/ledger"
	"github.com/ledgerpipe/ledgerpipe/internal/domain/merge"
	"github.com/ledgerpipe/ledgerpipe/internal/domain/normalize"
	"github.com/ledgerpipe/ledgerpipe/internal/domain/reconcile"
	"github.com/ledgerpipe/ledgerpipe/internal/domain/staging"
	"github.com/ledgerpipe/ledgerpipe/internal/infrastructure/storage"
	"github.com/ledgerpipe/ledgerpipe/internal/pipeline"
)

// ImportService runs statement imports against the stored ledger.
//
// Staging and commit are separate stateless calls: Stage returns the
// annotated batch for the user to verify, Commit receives back the
// confirmed transactions and merges them. Both recompute against the
// current database snapshot, so a stale client cannot sneak a duplicate
// past the merge.
type ImportService struct {
	repo     storage.Repository
	importer *pipeline.Importer
	logger   *slog.Logger
}

// NewImportService creates the service. A nil logger falls back to the
// default.
func NewImportService(repo storage.Repository, logger *slog.Logger) *ImportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ImportService{
		repo:     repo,
		importer: pipeline.NewImporter(logger),
		logger:   logger,
	}
}

// StageParams carries one statement upload.
type StageParams struct {
	AccountID       string
	UserID          string
	SourceLabel     string
	Currency        string
	AccountCategory ledger.AccountCategory
	Headers         []string
	Rows            []map[string]string
}

// StageResult is the staged batch plus its audit run id.
type StageResult struct {
	RunID   int64
	Records []staging.Record
	Counts  storage.StagingCounts
}

// Stage normalizes and classifies a statement against the stored rules
// and ledger, records an audit run, and returns the batch for user
// verification.
func (s *ImportService) Stage(params StageParams) (*StageResult, error) {
	ruleSet, err := s.repo.ListRules(params.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules: %w", err)
	}

	types, err := s.repo.ListTransactionTypes()
	if err != nil {
		return nil, fmt.Errorf("failed to load transaction types: %w", err)
	}

	snapshot, err := s.ledgerSnapshot(params.UserID, params.AccountID)
	if err != nil {
		return nil, err
	}

	runID, err := s.repo.StartImportRun(params.AccountID, params.UserID, params.SourceLabel)
	if err != nil {
		return nil, fmt.Errorf("failed to start import run: %w", err)
	}

	batch, err := s.importer.Stage(pipeline.StageRequest{
		Input: normalize.Input{
			Headers:         params.Headers,
			Rows:            params.Rows,
			AccountID:       params.AccountID,
			AccountCategory: params.AccountCategory,
			Types:           types,
			SourceLabel:     params.SourceLabel,
			UserID:          params.UserID,
			Currency:        params.Currency,
		},
		Rules:    ruleSet,
		Snapshot: snapshot,
	})
	if err != nil {
		_ = s.repo.CompleteImportRun(runID, 0, 0, true)
		return nil, err
	}

	counts := tallyCounts(len(params.Rows), batch.Records)
	if err := s.repo.RecordStagingCounts(runID, counts); err != nil {
		return nil, fmt.Errorf("failed to record staging counts: %w", err)
	}

	return &StageResult{
		RunID:   runID,
		Records: batch.Records,
		Counts:  counts,
	}, nil
}

// CommitParams carries the user-confirmed subset of a staged batch.
type CommitParams struct {
	RunID     int64
	AccountID string
	UserID    string
	Confirmed []ledger.Transaction
}

// CommitResult reports the merge outcome.
type CommitResult struct {
	Added      []ledger.Transaction
	Duplicates []merge.DuplicatePair
}

// Commit merges the confirmed transactions into the stored ledger and
// closes the audit run.
func (s *ImportService) Commit(params CommitParams) (*CommitResult, error) {
	snapshot, err := s.ledgerSnapshot(params.UserID, params.AccountID)
	if err != nil {
		return nil, err
	}

	result := s.importer.Commit(snapshot, params.Confirmed)

	if err := s.repo.SaveTransactions(result.Added); err != nil {
		if params.RunID != 0 {
			_ = s.repo.CompleteImportRun(params.RunID, 0, 0, true)
		}
		return nil, fmt.Errorf("failed to save merged transactions: %w", err)
	}

	if params.RunID != 0 {
		if err := s.repo.CompleteImportRun(params.RunID, len(result.Added), len(result.Duplicates), false); err != nil {
			return nil, fmt.Errorf("failed to complete import run: %w", err)
		}
	}

	return &CommitResult{
		Added:      result.Added,
		Duplicates: result.Duplicates,
	}, nil
}

// ReconcileParams carries a pasted statement to check against the ledger.
type ReconcileParams struct {
	AccountID string
	UserID    string
	Currency  string
	Text      string
	DateFrom  string
	DateTo    string
	Config    reconcile.Config
}

// Reconcile matches a pasted statement against the stored ledger view.
func (s *ImportService) Reconcile(params ReconcileParams) (reconcile.Result, error) {
	view, err := s.repo.ListTransactions(storage.TransactionFilters{
		UserID:    params.UserID,
		AccountID: params.AccountID,
		DateFrom:  params.DateFrom,
		DateTo:    params.DateTo,
		Limit:     -1,
	})
	if err != nil {
		return reconcile.Result{}, fmt.Errorf("failed to load ledger view: %w", err)
	}

	return s.importer.Reconcile(
		params.Text,
		params.AccountID, params.UserID, params.Currency,
		view.Transactions,
		params.Config,
	)
}

// ledgerSnapshot loads the full ledger for one account for conflict
// detection and merge.
func (s *ImportService) ledgerSnapshot(userID, accountID string) ([]ledger.Transaction, error) {
	result, err := s.repo.ListTransactions(storage.TransactionFilters{
		UserID:    userID,
		AccountID: accountID,
		Limit:     -1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger snapshot: %w", err)
	}
	return result.Transactions, nil
}

func tallyCounts(rowsIn int, records []staging.Record) storage.StagingCounts {
	counts := storage.StagingCounts{
		RowsIn: rowsIn,
		Staged: len(records),
	}
	for _, rec := range records {
		switch rec.Conflict {
		case staging.ConflictBatch:
			counts.BatchConflicts++
		case staging.ConflictDatabase:
			counts.DatabaseConflicts++
		case staging.ConflictReversal:
			counts.ReversalConflicts++
		}
		if rec.SkippedByRule {
			counts.RuleSkipped++
		}
	}
	return counts
}
