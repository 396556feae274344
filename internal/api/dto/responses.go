package dto

import (
	"github.com/ledgerpipe/ledgerpipe/internal/domain/ledger"
	"github.com/ledgerpipe/ledgerpipe/internal/domain/merge"
	"github.com/ledgerpipe/ledgerpipe/internal/domain/reconcile"
	"github.com/ledgerpipe/ledgerpipe/internal/domain/rules"
	"github.com/ledgerpipe/ledgerpipe/internal/domain/staging"
	"github.com/ledgerpipe/ledgerpipe/internal/infrastructure/storage"
)

// StageImportResponse is the staged batch the verification UI renders.
type StageImportResponse struct {
	RunID   int64            `json:"run_id"`
	Records []staging.Record `json:"records"`
	Counts  StagingCounts    `json:"counts"`
}

// StagingCounts summarizes one staging pass.
type StagingCounts struct {
	RowsIn            int `json:"rows_in"`
	Staged            int `json:"staged"`
	BatchConflicts    int `json:"batch_conflicts"`
	DatabaseConflicts int `json:"database_conflicts"`
	ReversalConflicts int `json:"reversal_conflicts"`
	RuleSkipped       int `json:"rule_skipped"`
}

// FromStorageCounts converts the storage counts to the API shape.
func FromStorageCounts(c storage.StagingCounts) StagingCounts {
	return StagingCounts{
		RowsIn:            c.RowsIn,
		Staged:            c.Staged,
		BatchConflicts:    c.BatchConflicts,
		DatabaseConflicts: c.DatabaseConflicts,
		ReversalConflicts: c.ReversalConflicts,
		RuleSkipped:       c.RuleSkipped,
	}
}

// CommitImportResponse reports the merge outcome.
type CommitImportResponse struct {
	Added      []ledger.Transaction  `json:"added"`
	Duplicates []merge.DuplicatePair `json:"duplicates"`
}

// ReconcileResponse is the advisory match report.
type ReconcileResponse struct {
	Matched            []reconcile.Pair     `json:"matched"`
	MissingInApp       []ledger.Transaction `json:"missing_in_app"`
	MissingInStatement []ledger.Transaction `json:"missing_in_statement"`
}

// FromReconcileResult converts a matcher result to the API shape.
func FromReconcileResult(r reconcile.Result) ReconcileResponse {
	return ReconcileResponse{
		Matched:            r.Matched,
		MissingInApp:       r.MissingInApp,
		MissingInStatement: r.MissingInStatement,
	}
}

// TransactionListResponse is a paginated ledger page.
type TransactionListResponse struct {
	Transactions []ledger.Transaction `json:"transactions"`
	TotalCount   int                  `json:"total_count"`
	Limit        int                  `json:"limit"`
	Offset       int                  `json:"offset"`
}

// RuleListResponse is the user's rule set in evaluation order.
type RuleListResponse struct {
	Rules []rules.Rule `json:"rules"`
	Count int          `json:"count"`
}

// ImportRunListResponse lists recent import runs.
type ImportRunListResponse struct {
	Runs  []storage.ImportRun `json:"runs"`
	Count int                 `json:"count"`
}

// AccountListResponse lists a user's accounts.
type AccountListResponse struct {
	Accounts []storage.Account `json:"accounts"`
	Count    int               `json:"count"`
}

// TransactionTypeListResponse lists all transaction types.
type TransactionTypeListResponse struct {
	Types []ledger.TransactionType `json:"types"`
	Count int                      `json:"count"`
}

// HealthResponse is the load balancer health probe body.
type HealthResponse struct {
	Status string `json:"status"`
}
