package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerpipe/ledgerpipe/internal/domain/ledger"
	"github.com/ledgerpipe/ledgerpipe/internal/domain/rules"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := NewStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleTransaction(id, date string, amount float64) ledger.Transaction {
	return ledger.Transaction{
		ID:             id,
		Date:           date,
		Amount:         amount,
		Direction:      ledger.Debit,
		Description:    "Whole Foods #123",
		RawDescription: "POS DEBIT - WHOLE FOODS #123",
		TypeID:         "type-expense",
		CashFlow:       ledger.CashOutflow,
		Liability:      ledger.LiabilityNone,
		Currency:       "USD",
		AccountID:      "acct-1",
		UserID:         "user-1",
		SourceLabel:    "chase-march.csv",
		OriginalRow:    map[string]string{"Date": "03/15/24", "Debit": "45.99"},
	}
}

func TestSaveAndGetTransaction(t *testing.T) {
	s := newTestStorage(t)

	balance := 1200.50
	tx := sampleTransaction("tx-1", "2024-03-15", 45.99)
	tx.Balance = &balance
	tx.Memo = "weekly groceries"

	require.NoError(t, s.SaveTransactions([]ledger.Transaction{tx}))

	got, err := s.GetTransaction("tx-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, tx.Date, got.Date)
	assert.Equal(t, tx.Amount, got.Amount)
	assert.Equal(t, ledger.Debit, got.Direction)
	assert.Equal(t, "Whole Foods #123", got.Description)
	assert.Equal(t, "POS DEBIT - WHOLE FOODS #123", got.RawDescription)
	assert.Equal(t, ledger.CashOutflow, got.CashFlow)
	assert.Equal(t, "weekly groceries", got.Memo)
	require.NotNil(t, got.Balance)
	assert.Equal(t, 1200.50, *got.Balance)
	assert.Equal(t, tx.OriginalRow, got.OriginalRow)
}

func TestGetTransaction_Missing(t *testing.T) {
	s := newTestStorage(t)

	got, err := s.GetTransaction("nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSaveTransactions_ReplaysAreIdempotent(t *testing.T) {
	s := newTestStorage(t)

	batch := []ledger.Transaction{
		sampleTransaction("tx-1", "2024-03-15", 45.99),
		sampleTransaction("tx-2", "2024-03-16", 30.00),
	}

	require.NoError(t, s.SaveTransactions(batch))
	require.NoError(t, s.SaveTransactions(batch))

	result, err := s.ListTransactions(TransactionFilters{UserID: "user-1"})
	require.NoError(t, err)
	assert.Equal(t, 2, result.TotalCount)
}

func TestListTransactions_FiltersAndOrder(t *testing.T) {
	s := newTestStorage(t)

	a := sampleTransaction("tx-a", "2024-03-10", 10.00)
	b := sampleTransaction("tx-b", "2024-03-20", 20.00)
	c := sampleTransaction("tx-c", "2024-03-15", 30.00)
	c.AccountID = "acct-2"

	require.NoError(t, s.SaveTransactions([]ledger.Transaction{a, b, c}))

	result, err := s.ListTransactions(TransactionFilters{UserID: "user-1"})
	require.NoError(t, err)
	require.Len(t, result.Transactions, 3)
	// newest first
	assert.Equal(t, "tx-b", result.Transactions[0].ID)
	assert.Equal(t, "tx-c", result.Transactions[1].ID)
	assert.Equal(t, "tx-a", result.Transactions[2].ID)

	result, err = s.ListTransactions(TransactionFilters{AccountID: "acct-2"})
	require.NoError(t, err)
	require.Len(t, result.Transactions, 1)
	assert.Equal(t, "tx-c", result.Transactions[0].ID)

	result, err = s.ListTransactions(TransactionFilters{DateFrom: "2024-03-12", DateTo: "2024-03-18"})
	require.NoError(t, err)
	require.Len(t, result.Transactions, 1)
	assert.Equal(t, "tx-c", result.Transactions[0].ID)
}

func TestListTransactions_Pagination(t *testing.T) {
	s := newTestStorage(t)

	batch := []ledger.Transaction{
		sampleTransaction("tx-1", "2024-03-10", 1),
		sampleTransaction("tx-2", "2024-03-11", 2),
		sampleTransaction("tx-3", "2024-03-12", 3),
	}
	require.NoError(t, s.SaveTransactions(batch))

	result, err := s.ListTransactions(TransactionFilters{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, result.Transactions, 2)
	assert.Equal(t, 3, result.TotalCount)

	result, err = s.ListTransactions(TransactionFilters{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Len(t, result.Transactions, 1)
}

func TestDeleteTransaction(t *testing.T) {
	s := newTestStorage(t)

	require.NoError(t, s.SaveTransactions([]ledger.Transaction{sampleTransaction("tx-1", "2024-03-15", 45.99)}))
	require.NoError(t, s.DeleteTransaction("tx-1"))

	got, err := s.GetTransaction("tx-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRules_RoundTripAndOrder(t *testing.T) {
	s := newTestStorage(t)

	groceries := rules.Rule{
		ID:   "rule-groceries",
		Name: "Groceries",
		Conditions: []rules.Condition{
			{ID: "c1", Field: "description", Operator: rules.OpContains, Value: "whole foods", NextLogic: rules.And},
			{ID: "c2", Field: "amount", Operator: rules.OpLessThan, Value: "200"},
		},
		SetCategoryID: "cat-groceries",
	}
	transfers := rules.Rule{
		ID:         "rule-transfers",
		Name:       "Skip transfers",
		Conditions: []rules.Condition{{ID: "c3", Field: "description", Operator: rules.OpContains, Value: "transfer"}},
		SkipImport: true,
	}

	// stored out of order; position controls evaluation order
	require.NoError(t, s.SaveRule("user-1", transfers, 1))
	require.NoError(t, s.SaveRule("user-1", groceries, 0))

	got, err := s.ListRules("user-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "rule-groceries", got[0].ID)
	assert.Equal(t, "rule-transfers", got[1].ID)
	require.Len(t, got[0].Conditions, 2)
	assert.Equal(t, rules.And, got[0].Conditions[0].NextLogic)
	assert.True(t, got[1].SkipImport)
}

func TestRules_ScopedToUser(t *testing.T) {
	s := newTestStorage(t)

	mine := rules.Rule{ID: "rule-mine", Conditions: []rules.Condition{{Field: "amount", Operator: rules.OpGreaterThan, Value: "1"}}}
	theirs := rules.Rule{ID: "rule-theirs", Conditions: []rules.Condition{{Field: "amount", Operator: rules.OpGreaterThan, Value: "1"}}}

	require.NoError(t, s.SaveRule("user-1", mine, 0))
	require.NoError(t, s.SaveRule("user-2", theirs, 0))

	got, err := s.ListRules("user-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "rule-mine", got[0].ID)
}

func TestDeleteRule(t *testing.T) {
	s := newTestStorage(t)

	rule := rules.Rule{ID: "rule-1", Conditions: []rules.Condition{{Field: "amount", Operator: rules.OpGreaterThan, Value: "1"}}}
	require.NoError(t, s.SaveRule("user-1", rule, 0))
	require.NoError(t, s.DeleteRule("rule-1"))

	got, err := s.ListRules("user-1")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestImportRuns_Lifecycle(t *testing.T) {
	s := newTestStorage(t)

	runID, err := s.StartImportRun("acct-1", "user-1", "chase-march.csv")
	require.NoError(t, err)
	require.Greater(t, runID, int64(0))

	run, err := s.GetImportRun(runID)
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Equal(t, "running", run.Status)
	assert.Equal(t, "chase-march.csv", run.SourceLabel)

	err = s.RecordStagingCounts(runID, StagingCounts{
		RowsIn:            10,
		Staged:            9,
		DatabaseConflicts: 2,
		RuleSkipped:       1,
	})
	require.NoError(t, err)

	run, err = s.GetImportRun(runID)
	require.NoError(t, err)
	assert.Equal(t, "staged", run.Status)
	assert.Equal(t, 9, run.Staged)
	assert.Equal(t, 2, run.DatabaseConflicts)

	require.NoError(t, s.CompleteImportRun(runID, 6, 2, false))

	run, err = s.GetImportRun(runID)
	require.NoError(t, err)
	assert.Equal(t, "completed", run.Status)
	assert.Equal(t, 6, run.Merged)
	assert.Equal(t, 2, run.Duplicates)
	assert.NotEmpty(t, run.CompletedAt)
}

func TestImportRuns_FailedStatus(t *testing.T) {
	s := newTestStorage(t)

	runID, err := s.StartImportRun("acct-1", "user-1", "bad.csv")
	require.NoError(t, err)

	require.NoError(t, s.CompleteImportRun(runID, 0, 0, true))

	run, err := s.GetImportRun(runID)
	require.NoError(t, err)
	assert.Equal(t, "failed", run.Status)
}

func TestListImportRuns_NewestFirst(t *testing.T) {
	s := newTestStorage(t)

	first, err := s.StartImportRun("acct-1", "user-1", "a.csv")
	require.NoError(t, err)
	second, err := s.StartImportRun("acct-1", "user-1", "b.csv")
	require.NoError(t, err)

	runs, err := s.ListImportRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second, runs[0].ID)
	assert.Equal(t, first, runs[1].ID)
}

func TestLookups_RoundTrip(t *testing.T) {
	s := newTestStorage(t)

	require.NoError(t, s.SaveAccount(Account{
		ID: "acct-1", UserID: "user-1", Name: "Everyday Checking",
		Category: "checking", Currency: "USD",
	}))
	require.NoError(t, s.SaveTransactionType(ledger.TransactionType{
		ID: "type-expense", Name: "Expense", Effect: ledger.EffectExpense,
	}))

	accounts, err := s.ListAccounts("user-1")
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "Everyday Checking", accounts[0].Name)

	types, err := s.ListTransactionTypes()
	require.NoError(t, err)
	require.Len(t, types, 1)
	assert.Equal(t, ledger.EffectExpense, types[0].Effect)
}
