package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerpipe/ledgerpipe/internal/domain/ledger"
)

var checkingTypes = []ledger.TransactionType{
	{ID: "type-income", Name: "Income", Effect: ledger.EffectIncome},
	{ID: "type-expense", Name: "Expense", Effect: ledger.EffectExpense},
	{ID: "type-transfer", Name: "Transfer", Effect: ledger.EffectTransfer},
}

func checkingInput(rows []map[string]string) Input {
	return Input{
		Headers:         []string{"Date", "Description", "Debit", "Credit"},
		Rows:            rows,
		AccountID:       "acct-1",
		AccountCategory: ledger.AccountChecking,
		Types:           checkingTypes,
		SourceLabel:     "test-bank.csv",
		UserID:          "user-1",
		Currency:        "USD",
	}
}

func TestNormalize_CheckingDebitRow(t *testing.T) {
	// Arrange
	in := checkingInput([]map[string]string{
		{"Date": "03/15/24", "Description": "POS DEBIT - WHOLE FOODS #123", "Debit": "45.99"},
	})

	// Act
	txs, err := Normalize(in)

	// Assert
	require.NoError(t, err)
	require.Len(t, txs, 1)

	tx := txs[0]
	assert.Equal(t, "2024-03-15", tx.Date)
	assert.Equal(t, 45.99, tx.Amount)
	assert.Equal(t, ledger.Debit, tx.Direction)
	assert.Equal(t, "Whole Foods #123", tx.Description)
	assert.Equal(t, "POS DEBIT - WHOLE FOODS #123", tx.RawDescription)
	assert.Equal(t, ledger.CashOutflow, tx.CashFlow)
	assert.Equal(t, ledger.LiabilityNone, tx.Liability)
	assert.Equal(t, "type-expense", tx.TypeID)
	assert.Equal(t, "acct-1", tx.AccountID)
	assert.Equal(t, "user-1", tx.UserID)
	assert.NotNil(t, tx.OriginalRow)
}

func TestNormalize_CreditCardPayment(t *testing.T) {
	in := Input{
		Headers:         []string{"Date", "Description", "Debit", "Credit"},
		Rows:            []map[string]string{{"Date": "2024-03-20", "Description": "PAYMENT - THANK YOU", "Credit": "200.00"}},
		AccountID:       "card-1",
		AccountCategory: ledger.AccountCreditCard,
		Types:           checkingTypes,
		UserID:          "user-1",
		Currency:        "USD",
	}

	txs, err := Normalize(in)

	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, ledger.Credit, txs[0].Direction)
	assert.Equal(t, ledger.LiabilityDecrease, txs[0].Liability)
	assert.Equal(t, ledger.CashOutflow, txs[0].CashFlow)
	assert.True(t, txs[0].IsPayment)
}

func TestNormalize_CreditCardPurchaseIncreasesLiability(t *testing.T) {
	in := Input{
		Headers:         []string{"Date", "Description", "Amount"},
		Rows:            []map[string]string{{"Date": "2024-03-21", "Description": "NETFLIX.COM", "Amount": "-15.49"}},
		AccountID:       "card-1",
		AccountCategory: ledger.AccountCreditCard,
		Types:           checkingTypes,
		UserID:          "user-1",
	}

	txs, err := Normalize(in)

	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, ledger.Debit, txs[0].Direction)
	assert.Equal(t, ledger.LiabilityIncrease, txs[0].Liability)
	assert.Equal(t, ledger.CashNone, txs[0].CashFlow)
}

func TestNormalize_SignedAmountColumn(t *testing.T) {
	in := Input{
		Headers:         []string{"Date", "Description", "Amount"},
		AccountCategory: ledger.AccountChecking,
		Types:           checkingTypes,
		Rows: []map[string]string{
			{"Date": "2024-01-05", "Description": "PAYROLL", "Amount": "1,250.00"},
			{"Date": "2024-01-06", "Description": "COFFEE", "Amount": "(4.50)"},
			{"Date": "2024-01-07", "Description": "GAS", "Amount": "-30.00"},
		},
	}

	txs, err := Normalize(in)

	require.NoError(t, err)
	require.Len(t, txs, 3)
	assert.Equal(t, ledger.Credit, txs[0].Direction)
	assert.Equal(t, 1250.00, txs[0].Amount)
	assert.Equal(t, ledger.Debit, txs[1].Direction)
	assert.Equal(t, 4.50, txs[1].Amount)
	assert.Equal(t, ledger.Debit, txs[2].Direction)
}

func TestNormalize_DropsBadRows(t *testing.T) {
	in := checkingInput([]map[string]string{
		{"Date": "not a date", "Description": "BAD DATE", "Debit": "10.00"},
		{"Date": "2024-02-01", "Description": "ZERO", "Debit": "0.00"},
		{"Date": "2024-02-02", "Description": "KEPT", "Debit": "12.00"},
	})

	txs, err := Normalize(in)

	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "Kept", txs[0].Description)
}

func TestNormalize_SkipsPendingRows(t *testing.T) {
	in := Input{
		Headers:         []string{"Date", "Description", "Amount", "Status"},
		AccountCategory: ledger.AccountChecking,
		Types:           checkingTypes,
		Rows: []map[string]string{
			{"Date": "2024-02-01", "Description": "PENDING CHARGE", "Amount": "-5.00", "Status": "Pending"},
			{"Date": "2024-02-02", "Description": "POSTED CHARGE", "Amount": "-6.00", "Status": "Posted"},
		},
	}

	txs, err := Normalize(in)

	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "Posted Charge", txs[0].Description)
}

func TestNormalize_ErrorOnZeroUsableRows(t *testing.T) {
	in := checkingInput([]map[string]string{
		{"Date": "???", "Description": "JUNK", "Debit": "1.00"},
	})

	_, err := Normalize(in)

	assert.ErrorIs(t, err, ErrNoUsableRows)
}

func TestNormalize_Deterministic(t *testing.T) {
	in := checkingInput([]map[string]string{
		{"Date": "03/15/24", "Description": "POS DEBIT - WHOLE FOODS #123", "Debit": "45.99"},
		{"Date": "03/16/24", "Description": "TRANSFER TO SAVINGS", "Debit": "100.00"},
	})

	first, err := Normalize(in)
	require.NoError(t, err)
	second, err := Normalize(in)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestNormalize_InternalTransferFlag(t *testing.T) {
	in := checkingInput([]map[string]string{
		{"Date": "2024-03-01", "Description": "ONLINE TRANSFER TO SAVINGS", "Debit": "500.00"},
	})

	txs, err := Normalize(in)

	require.NoError(t, err)
	assert.True(t, txs[0].IsInternalTransfer)
	assert.False(t, txs[0].IsPayment)
}

func TestNormalize_BalanceAndMemoColumns(t *testing.T) {
	in := Input{
		Headers:         []string{"Date", "Description", "Amount", "Balance", "Memo"},
		AccountCategory: ledger.AccountSavings,
		Types:           checkingTypes,
		Rows: []map[string]string{
			{"Date": "2024-04-01", "Description": "INTEREST", "Amount": "1.23", "Balance": "1,001.23", "Memo": "APY 4.5%"},
		},
	}

	txs, err := Normalize(in)

	require.NoError(t, err)
	require.NotNil(t, txs[0].Balance)
	assert.Equal(t, 1001.23, *txs[0].Balance)
	assert.Equal(t, "APY 4.5%", txs[0].Memo)
	assert.Equal(t, ledger.CashInflow, txs[0].CashFlow)
}

func TestParseDate_Forms(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"iso", "2024-03-15", "2024-03-15", true},
		{"slash mdy four digit year", "3/5/2024", "2024-03-05", true},
		{"dash mdy two digit year", "3-5-24", "2024-03-05", true},
		{"two digit year past century", "3/5/99", "1999-03-05", true},
		{"boundary year 70 is 2070", "1/1/70", "2070-01-01", true},
		{"boundary year 71 is 1971", "1/1/71", "1971-01-01", true},
		{"spreadsheet serial", "45366", "2024-03-15", true},
		{"written month", "Mar 15, 2024", "2024-03-15", true},
		{"too short", "3/5", "", false},
		{"junk", "tomorrow", "", false},
		{"serial out of range", "123456", "", false},
		{"stray small number", "42", "", false},
		{"serial with decimal part", "45366.0", "2024-03-15", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseDate(tc.in)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestCleanDescription(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"POS DEBIT - WHOLE FOODS #123", "WHOLE FOODS #123"},
		{"RECURRING PAYMENT - NETFLIX.COM", "NETFLIX.COM"},
		{"  SPOTIFY   USA  ", "SPOTIFY USA"},
		{`"TRADER JOES"`, "TRADER JOES"},
		{"ACME UTILITIES REF #99281", "ACME UTILITIES"},
		{"COFFEE SHOP.", "COFFEE SHOP"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, CleanDescription(tc.in), "input %q", tc.in)
	}
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Whole Foods #123", TitleCase("WHOLE FOODS #123"))
	assert.Equal(t, "Netflix.com", TitleCase("NETFLIX.COM"))
	assert.Equal(t, "#99 Store", TitleCase("#99 STORE"))
}
