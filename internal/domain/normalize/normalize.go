// Package normalize turns raw tabular statement rows into canonical
// transactions.
//
// The normalizer is deliberately forgiving: any row it cannot make sense of
// (bad date, zero amount) is skipped and the batch continues. The only
// batch-level failure is a statement that yields no usable rows at all.
package normalize

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ledgerpipe/ledgerpipe/internal/domain/ledger"
)

// ErrNoUsableRows is returned when every row of a statement was dropped.
var ErrNoUsableRows = errors.New("statement contained no usable rows")

// Input is the normalizer's contract with whatever parsed the source file.
type Input struct {
	Headers         []string
	Rows            []map[string]string
	AccountID       string
	AccountCategory ledger.AccountCategory
	Types           []ledger.TransactionType
	SourceLabel     string
	UserID          string
	Currency        string
}

// Normalize converts every usable row into a canonical transaction.
// Per-row failures are silent skips; only zero surviving rows is an error.
func Normalize(in Input) ([]ledger.Transaction, error) {
	cols := detectColumns(in.Headers)

	out := make([]ledger.Transaction, 0, len(in.Rows))
	for _, row := range in.Rows {
		tx, ok := normalizeRow(row, cols, in)
		if !ok {
			continue
		}
		out = append(out, tx)
	}

	if len(out) == 0 {
		return nil, ErrNoUsableRows
	}
	return out, nil
}

// normalizeRow builds one canonical transaction. The bool result is false
// when the row should be dropped.
func normalizeRow(row map[string]string, cols columns, in Input) (ledger.Transaction, bool) {
	if status, ok := cols.cell(row, fieldStatus); ok && isPending(status) {
		return ledger.Transaction{}, false
	}

	dateCell, ok := cols.cell(row, fieldDate)
	if !ok {
		return ledger.Transaction{}, false
	}
	date, ok := ParseDate(dateCell)
	if !ok {
		return ledger.Transaction{}, false
	}

	amount, direction, ok := resolveAmount(row, cols)
	if !ok {
		return ledger.Transaction{}, false
	}

	raw, _ := cols.cell(row, fieldDescription)
	cleaned := CleanDescription(raw)

	tx := ledger.Transaction{
		Date:           date,
		Amount:         amount.InexactFloat64(),
		Direction:      direction,
		Description:    TitleCase(cleaned),
		RawDescription: raw,
		Currency:       in.Currency,
		AccountID:      in.AccountID,
		UserID:         in.UserID,
		SourceLabel:    in.SourceLabel,
		OriginalRow:    row,
	}

	if memo, ok := cols.cell(row, fieldMemo); ok {
		tx.Memo = memo
	}
	if balCell, ok := cols.cell(row, fieldBalance); ok {
		if bal, ok := parseAmountCell(balCell); ok {
			f := bal.InexactFloat64()
			tx.Balance = &f
		}
	}

	deriveSemantics(&tx, in.AccountCategory)
	applyHeuristicFlags(&tx)
	tx.TypeID = defaultTypeID(direction, in.Types)

	return tx, true
}

// resolveAmount supports the two statement shapes: separate debit/credit
// columns, or a single signed amount column. A magnitude of exactly zero
// drops the row.
func resolveAmount(row map[string]string, cols columns) (decimal.Decimal, ledger.Direction, bool) {
	debitCell, hasDebit := cols.cell(row, fieldDebit)
	creditCell, hasCredit := cols.cell(row, fieldCredit)

	if hasDebit || hasCredit {
		if d, ok := parseAmountCell(debitCell); ok && !d.IsZero() {
			return d.Abs(), ledger.Debit, true
		}
		if c, ok := parseAmountCell(creditCell); ok && !c.IsZero() {
			return c.Abs(), ledger.Credit, true
		}
		return decimal.Zero, "", false
	}

	amountCell, ok := cols.cell(row, fieldAmount)
	if !ok {
		return decimal.Zero, "", false
	}
	amt, ok := parseAmountCell(amountCell)
	if !ok || amt.IsZero() {
		return decimal.Zero, "", false
	}
	if amt.IsNegative() {
		return amt.Abs(), ledger.Debit, true
	}
	return amt, ledger.Credit, true
}

// deriveSemantics fills cash-flow and liability effects from the
// (account category, direction) pair.
//
// Credit cards invert the intuition: a debit is new spending (more debt, no
// cash moves yet) and a credit is a payment (less debt, cash leaves a bank
// account somewhere).
func deriveSemantics(tx *ledger.Transaction, category ledger.AccountCategory) {
	if category == ledger.AccountCreditCard {
		if tx.Direction == ledger.Debit {
			tx.CashFlow = ledger.CashNone
			tx.Liability = ledger.LiabilityIncrease
		} else {
			tx.CashFlow = ledger.CashOutflow
			tx.Liability = ledger.LiabilityDecrease
		}
		return
	}

	tx.Liability = ledger.LiabilityNone
	if tx.Direction == ledger.Debit {
		tx.CashFlow = ledger.CashOutflow
	} else {
		tx.CashFlow = ledger.CashInflow
	}
}

// applyHeuristicFlags sets is_payment / is_internal_transfer from
// case-insensitive keyword membership in the cleaned description.
func applyHeuristicFlags(tx *ledger.Transaction) {
	desc := strings.ToLower(tx.Description)
	tx.IsPayment = containsAny(desc, paymentKeywords)
	tx.IsInternalTransfer = containsAny(desc, transferKeywords)
}

// defaultTypeID picks a starting type from the direction: credits default to
// the first income type, debits to the first expense type. The rule engine
// may override this later.
func defaultTypeID(direction ledger.Direction, types []ledger.TransactionType) string {
	want := ledger.EffectExpense
	if direction == ledger.Credit {
		want = ledger.EffectIncome
	}
	for _, t := range types {
		if t.Effect == want {
			return t.ID
		}
	}
	return ""
}
