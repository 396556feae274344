package storage

import (
	"github.com/ledgerpipe/ledgerpipe/internal/domain/ledger"
)

// ImportRun is the audit record for one statement import.
type ImportRun struct {
	ID          int64  `json:"id"`
	AccountID   string `json:"account_id"`
	UserID      string `json:"user_id"`
	SourceLabel string `json:"source_label"`
	StartedAt   string `json:"started_at"`
	CompletedAt string `json:"completed_at,omitempty"`

	RowsIn            int `json:"rows_in"`
	Staged            int `json:"staged"`
	BatchConflicts    int `json:"batch_conflicts"`
	DatabaseConflicts int `json:"database_conflicts"`
	ReversalConflicts int `json:"reversal_conflicts"`
	RuleSkipped       int `json:"rule_skipped"`
	Merged            int `json:"merged"`
	Duplicates        int `json:"duplicates"`

	Status string `json:"status"`
}

// StagingCounts carries the per-stage counts recorded after conflict
// detection, before the user has confirmed anything.
type StagingCounts struct {
	RowsIn            int
	Staged            int
	BatchConflicts    int
	DatabaseConflicts int
	ReversalConflicts int
	RuleSkipped       int
}

// Account is a stored ledger account.
type Account struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Currency string `json:"currency"`
}

// TransactionFilters defines filters for listing ledger transactions
type TransactionFilters struct {
	UserID    string // Filter by user (empty = all)
	AccountID string // Filter by account (empty = all)
	DateFrom  string // Inclusive YYYY-MM-DD lower bound (empty = open)
	DateTo    string // Inclusive YYYY-MM-DD upper bound (empty = open)
	Limit     int    // Max results (0 = default 100, negative = no limit)
	Offset    int    // Pagination offset
}

// TransactionListResult contains paginated transaction results
type TransactionListResult struct {
	Transactions []ledger.Transaction `json:"transactions"`
	TotalCount   int                  `json:"total_count"`
	Limit        int                  `json:"limit"`
	Offset       int                  `json:"offset"`
}
