package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/ledgerpipe/ledgerpipe/internal/domain/ledger"
	"github.com/ledgerpipe/ledgerpipe/internal/infrastructure/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// perform runs one request against a router and returns the recorder.
func perform(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

// sampleLedgerTx builds a stored debit transaction for test setup.
func sampleLedgerTx(id, date string, amount float64, desc string) ledger.Transaction {
	return ledger.Transaction{
		ID:          id,
		Date:        date,
		Amount:      amount,
		Direction:   ledger.Debit,
		Description: desc,
		TypeID:      "type-expense",
		Currency:    "USD",
		AccountID:   "acct-1",
		UserID:      "user-1",
	}
}

// seededRepo returns a mock repository with the default transaction types.
func seededRepo(t *testing.T) *storage.MockRepository {
	t.Helper()
	repo := storage.NewMockRepository()
	require.NoError(t, repo.SaveTransactionType(ledger.TransactionType{
		ID: "type-expense", Name: "Expense", Effect: ledger.EffectExpense,
	}))
	require.NoError(t, repo.SaveTransactionType(ledger.TransactionType{
		ID: "type-income", Name: "Income", Effect: ledger.EffectIncome,
	}))
	return repo
}
