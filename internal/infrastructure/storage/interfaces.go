package storage

import (
	"github.com/ledgerpipe/ledgerpipe/internal/domain/ledger"
	"github.com/ledgerpipe/ledgerpipe/internal/domain/rules"
)

// Repository defines the complete storage interface.
// This interface allows swapping implementations (SQLite, PostgreSQL, etc.)
// and makes testing with mocks straightforward.
type Repository interface {
	TransactionRepository
	RuleRepository
	ImportRunRepository
	LookupRepository
	Close() error
}

// TransactionRepository handles the persisted ledger.
type TransactionRepository interface {
	// SaveTransactions upserts a batch of merged transactions in one
	// database transaction
	SaveTransactions(txs []ledger.Transaction) error

	// ListTransactions returns transactions matching the given filters
	// with pagination, newest date first
	ListTransactions(filters TransactionFilters) (*TransactionListResult, error)

	// GetTransaction retrieves a transaction by id; nil if absent
	GetTransaction(id string) (*ledger.Transaction, error)

	// DeleteTransaction removes a transaction by id
	DeleteTransaction(id string) error
}

// RuleRepository handles the stored classification rule set.
type RuleRepository interface {
	// SaveRule upserts a rule at the given position in the user's
	// evaluation order
	SaveRule(userID string, rule rules.Rule, position int) error

	// ListRules returns the user's rules in evaluation order
	ListRules(userID string) ([]rules.Rule, error)

	// DeleteRule removes a rule by id
	DeleteRule(id string) error
}

// ImportRunRepository tracks the audit trail of statement imports.
type ImportRunRepository interface {
	// StartImportRun records the start of an import and returns the run ID
	StartImportRun(accountID, userID, sourceLabel string) (int64, error)

	// RecordStagingCounts stores conflict-detection counts and moves the
	// run to 'staged'
	RecordStagingCounts(runID int64, counts StagingCounts) error

	// CompleteImportRun records the merge outcome and closes the run
	CompleteImportRun(runID int64, merged, duplicates int, errored bool) error

	// ListImportRuns returns recent import runs, newest first
	ListImportRuns(limit int) ([]ImportRun, error)

	// GetImportRun retrieves an import run by ID; nil if absent
	GetImportRun(runID int64) (*ImportRun, error)
}

// LookupRepository handles the accounts and transaction types the
// pipeline resolves against.
type LookupRepository interface {
	// SaveAccount upserts an account
	SaveAccount(account Account) error

	// ListAccounts returns a user's accounts
	ListAccounts(userID string) ([]Account, error)

	// SaveTransactionType upserts a transaction type
	SaveTransactionType(t ledger.TransactionType) error

	// ListTransactionTypes returns all transaction types
	ListTransactionTypes() ([]ledger.TransactionType, error)
}
