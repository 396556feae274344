package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerpipe/ledgerpipe/internal/api"
	"github.com/ledgerpipe/ledgerpipe/internal/api/dto"
	"github.com/ledgerpipe/ledgerpipe/internal/domain/ledger"
	"github.com/ledgerpipe/ledgerpipe/internal/infrastructure/config"
	"github.com/ledgerpipe/ledgerpipe/internal/infrastructure/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T) (*api.Server, *storage.MockRepository) {
	t.Helper()

	repo := storage.NewMockRepository()
	require.NoError(t, repo.SaveTransactionType(ledger.TransactionType{
		ID: "type-expense", Name: "Expense", Effect: ledger.EffectExpense,
	}))
	require.NoError(t, repo.SaveTransactionType(ledger.TransactionType{
		ID: "type-income", Name: "Income", Effect: ledger.EffectIncome,
	}))

	cfg := config.LoadOrEnvWithPath("does-not-exist.yaml")
	return api.NewServer(cfg, repo, nil), repo
}

func do(t *testing.T, server *api.Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var data []byte
	if body != nil {
		var err error
		data, err = json.Marshal(body)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	server, _ := newTestServer(t)

	rec := do(t, server, http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

// Full import flow over HTTP: stage, confirm, commit, then re-stage the
// same statement and watch every record come back as a database conflict.
func TestImportFlow_EndToEnd(t *testing.T) {
	server, repo := newTestServer(t)

	stageReq := dto.StageImportRequest{
		AccountID:       "acct-1",
		UserID:          "user-1",
		AccountCategory: "checking",
		SourceLabel:     "chase-march.csv",
		Headers:         []string{"Date", "Description", "Debit", "Credit"},
		Rows: []map[string]string{
			{"Date": "03/15/24", "Description": "POS DEBIT - WHOLE FOODS #123", "Debit": "45.99"},
			{"Date": "03/16/24", "Description": "SHELL GAS", "Debit": "30.00"},
		},
	}

	rec := do(t, server, http.MethodPost, "/api/imports/stage", stageReq)
	require.Equal(t, http.StatusOK, rec.Code)

	var staged dto.StageImportResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&staged))
	require.Len(t, staged.Records, 2)

	commitReq := dto.CommitImportRequest{
		RunID:     staged.RunID,
		AccountID: "acct-1",
		UserID:    "user-1",
	}
	for _, r := range staged.Records {
		if !r.Ignore {
			commitReq.Confirmed = append(commitReq.Confirmed, r.Transaction)
		}
	}

	rec = do(t, server, http.MethodPost, "/api/imports/commit", commitReq)
	require.Equal(t, http.StatusOK, rec.Code)

	var committed dto.CommitImportResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&committed))
	assert.Len(t, committed.Added, 2)

	// ledger now serves the merged transactions
	rec = do(t, server, http.MethodGet, "/api/transactions?user_id=user-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var listed dto.TransactionListResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&listed))
	assert.Equal(t, 2, listed.TotalCount)

	// replaying the same statement flags every record as a database dup
	rec = do(t, server, http.MethodPost, "/api/imports/stage", stageReq)
	require.Equal(t, http.StatusOK, rec.Code)

	var restaged dto.StageImportResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&restaged))
	assert.Equal(t, 2, restaged.Counts.DatabaseConflicts)
	for _, r := range restaged.Records {
		assert.True(t, r.Ignore)
	}

	// audit trail recorded both runs
	runs, err := repo.ListImportRuns(10)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}
