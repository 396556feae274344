package storage

import (
	"sort"
	"strings"

	"github.com/ledgerpipe/ledgerpipe/internal/domain/ledger"
	"github.com/ledgerpipe/ledgerpipe/internal/domain/rules"
)

// MockRepository is an in-memory implementation of Repository for testing.
// It stores all data in maps and slices, making tests fast and isolated.
type MockRepository struct {
	transactions map[string]ledger.Transaction
	ruleSet      map[string]mockRule
	importRuns   map[int64]*ImportRun
	accounts     map[string]Account
	types        map[string]ledger.TransactionType
	nextRunID    int64

	// Hooks for test assertions
	SaveTransactionsCalled bool
	LastSavedBatch         []ledger.Transaction
	SaveRuleCalled         bool
	StartImportRunCalled   bool
	CompleteRunCalled      bool
	LastStagingCounts      StagingCounts

	// Error injection for testing error paths
	SaveTransactionsErr error
	ListTransactionsErr error
	SaveRuleErr         error
	ListRulesErr        error
	StartImportRunErr   error
	ListAccountsErr     error
}

type mockRule struct {
	userID   string
	position int
	rule     rules.Rule
}

// NewMockRepository creates a new mock repository for testing
func NewMockRepository() *MockRepository {
	return &MockRepository{
		transactions: make(map[string]ledger.Transaction),
		ruleSet:      make(map[string]mockRule),
		importRuns:   make(map[int64]*ImportRun),
		accounts:     make(map[string]Account),
		types:        make(map[string]ledger.TransactionType),
		nextRunID:    1,
	}
}

// Compile-time check that MockRepository implements Repository
var _ Repository = (*MockRepository)(nil)

// Close does nothing for mock
func (m *MockRepository) Close() error {
	return nil
}

// SaveTransactions stores the batch in the in-memory map
func (m *MockRepository) SaveTransactions(txs []ledger.Transaction) error {
	m.SaveTransactionsCalled = true
	m.LastSavedBatch = txs
	if m.SaveTransactionsErr != nil {
		return m.SaveTransactionsErr
	}
	for _, tx := range txs {
		m.transactions[tx.ID] = tx
	}
	return nil
}

// ListTransactions returns transactions matching the filters, newest first
func (m *MockRepository) ListTransactions(filters TransactionFilters) (*TransactionListResult, error) {
	if m.ListTransactionsErr != nil {
		return nil, m.ListTransactionsErr
	}

	var matching []ledger.Transaction
	for _, tx := range m.transactions {
		if filters.UserID != "" && tx.UserID != filters.UserID {
			continue
		}
		if filters.AccountID != "" && tx.AccountID != filters.AccountID {
			continue
		}
		if filters.DateFrom != "" && tx.Date < filters.DateFrom {
			continue
		}
		if filters.DateTo != "" && tx.Date > filters.DateTo {
			continue
		}
		matching = append(matching, tx)
	}

	sort.Slice(matching, func(i, j int) bool {
		if matching[i].Date != matching[j].Date {
			return matching[i].Date > matching[j].Date
		}
		return matching[i].ID < matching[j].ID
	})

	limit := filters.Limit
	if limit == 0 {
		limit = 100
	}
	if limit < 0 {
		limit = len(matching)
	}

	total := len(matching)
	start := filters.Offset
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return &TransactionListResult{
		Transactions: matching[start:end],
		TotalCount:   total,
		Limit:        limit,
		Offset:       filters.Offset,
	}, nil
}

// GetTransaction retrieves a transaction by id; nil if absent
func (m *MockRepository) GetTransaction(id string) (*ledger.Transaction, error) {
	tx, ok := m.transactions[id]
	if !ok {
		return nil, nil
	}
	return &tx, nil
}

// DeleteTransaction removes a transaction by id
func (m *MockRepository) DeleteTransaction(id string) error {
	delete(m.transactions, id)
	return nil
}

// SaveRule upserts a rule at the given position
func (m *MockRepository) SaveRule(userID string, rule rules.Rule, position int) error {
	m.SaveRuleCalled = true
	if m.SaveRuleErr != nil {
		return m.SaveRuleErr
	}
	m.ruleSet[rule.ID] = mockRule{userID: userID, position: position, rule: rule}
	return nil
}

// ListRules returns the user's rules in evaluation order
func (m *MockRepository) ListRules(userID string) ([]rules.Rule, error) {
	if m.ListRulesErr != nil {
		return nil, m.ListRulesErr
	}

	var stored []mockRule
	for _, r := range m.ruleSet {
		if r.userID == userID {
			stored = append(stored, r)
		}
	}
	sort.Slice(stored, func(i, j int) bool {
		if stored[i].position != stored[j].position {
			return stored[i].position < stored[j].position
		}
		return strings.Compare(stored[i].rule.ID, stored[j].rule.ID) < 0
	})

	result := make([]rules.Rule, 0, len(stored))
	for _, r := range stored {
		result = append(result, r.rule)
	}
	return result, nil
}

// DeleteRule removes a rule by id
func (m *MockRepository) DeleteRule(id string) error {
	delete(m.ruleSet, id)
	return nil
}

// StartImportRun creates a new import run and returns its ID
func (m *MockRepository) StartImportRun(accountID, userID, sourceLabel string) (int64, error) {
	m.StartImportRunCalled = true
	if m.StartImportRunErr != nil {
		return 0, m.StartImportRunErr
	}

	id := m.nextRunID
	m.nextRunID++

	m.importRuns[id] = &ImportRun{
		ID:          id,
		AccountID:   accountID,
		UserID:      userID,
		SourceLabel: sourceLabel,
		Status:      "running",
	}
	return id, nil
}

// RecordStagingCounts stores conflict-detection counts and moves the run
// to 'staged'
func (m *MockRepository) RecordStagingCounts(runID int64, counts StagingCounts) error {
	m.LastStagingCounts = counts

	run, ok := m.importRuns[runID]
	if !ok {
		return nil
	}

	run.RowsIn = counts.RowsIn
	run.Staged = counts.Staged
	run.BatchConflicts = counts.BatchConflicts
	run.DatabaseConflicts = counts.DatabaseConflicts
	run.ReversalConflicts = counts.ReversalConflicts
	run.RuleSkipped = counts.RuleSkipped
	run.Status = "staged"
	return nil
}

// CompleteImportRun records the merge outcome and closes the run
func (m *MockRepository) CompleteImportRun(runID int64, merged, duplicates int, errored bool) error {
	m.CompleteRunCalled = true

	run, ok := m.importRuns[runID]
	if !ok {
		return nil
	}

	run.Merged = merged
	run.Duplicates = duplicates
	if errored {
		run.Status = "failed"
	} else {
		run.Status = "completed"
	}
	return nil
}

// ListImportRuns returns recent import runs, newest first
func (m *MockRepository) ListImportRuns(limit int) ([]ImportRun, error) {
	if limit == 0 {
		limit = 20
	}

	var runs []ImportRun
	for _, r := range m.importRuns {
		runs = append(runs, *r)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].ID > runs[j].ID })

	if len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

// GetImportRun retrieves an import run by ID; nil if absent
func (m *MockRepository) GetImportRun(runID int64) (*ImportRun, error) {
	run, ok := m.importRuns[runID]
	if !ok {
		return nil, nil
	}
	copied := *run
	return &copied, nil
}

// SaveAccount upserts an account
func (m *MockRepository) SaveAccount(account Account) error {
	m.accounts[account.ID] = account
	return nil
}

// ListAccounts returns a user's accounts
func (m *MockRepository) ListAccounts(userID string) ([]Account, error) {
	if m.ListAccountsErr != nil {
		return nil, m.ListAccountsErr
	}

	var accounts []Account
	for _, a := range m.accounts {
		if a.UserID == userID {
			accounts = append(accounts, a)
		}
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Name < accounts[j].Name })
	return accounts, nil
}

// SaveTransactionType upserts a transaction type
func (m *MockRepository) SaveTransactionType(t ledger.TransactionType) error {
	m.types[t.ID] = t
	return nil
}

// ListTransactionTypes returns all transaction types
func (m *MockRepository) ListTransactionTypes() ([]ledger.TransactionType, error) {
	var types []ledger.TransactionType
	for _, t := range m.types {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i].Name < types[j].Name })
	return types, nil
}

// Helper methods for test setup

// AddTransaction adds a transaction directly (for test setup)
func (m *MockRepository) AddTransaction(tx ledger.Transaction) {
	m.transactions[tx.ID] = tx
}

// AllTransactions returns all stored transactions (for assertions)
func (m *MockRepository) AllTransactions() []ledger.Transaction {
	result := make([]ledger.Transaction, 0, len(m.transactions))
	for _, tx := range m.transactions {
		result = append(result, tx)
	}
	return result
}

// Reset clears all data and flags (for reuse between tests)
func (m *MockRepository) Reset() {
	m.transactions = make(map[string]ledger.Transaction)
	m.ruleSet = make(map[string]mockRule)
	m.importRuns = make(map[int64]*ImportRun)
	m.accounts = make(map[string]Account)
	m.types = make(map[string]ledger.TransactionType)
	m.nextRunID = 1
	m.SaveTransactionsCalled = false
	m.LastSavedBatch = nil
	m.SaveRuleCalled = false
	m.StartImportRunCalled = false
	m.CompleteRunCalled = false
	m.LastStagingCounts = StagingCounts{}
	m.SaveTransactionsErr = nil
	m.ListTransactionsErr = nil
	m.SaveRuleErr = nil
	m.ListRulesErr = nil
	m.StartImportRunErr = nil
	m.ListAccountsErr = nil
}
