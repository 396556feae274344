// Package ledger defines the canonical transaction shape shared by every
// pipeline stage. A Transaction is produced by the normalizer (or any other
// producer that fills the same fields), mutated in place by the rule engine
// while staged, and becomes immutable once merged.
package ledger

// Direction carries the polarity of a transaction. Amount is always a
// non-negative magnitude; sign lives here, never in Amount.
type Direction string

const (
	Debit  Direction = "debit"
	Credit Direction = "credit"
)

// AccountCategory is the kind of account a statement belongs to.
type AccountCategory string

const (
	AccountChecking   AccountCategory = "checking"
	AccountSavings    AccountCategory = "savings"
	AccountCreditCard AccountCategory = "credit_card"
)

// IsAsset reports whether the account holds cash (checking/savings) as
// opposed to a liability account.
func (c AccountCategory) IsAsset() bool {
	return c == AccountChecking || c == AccountSavings
}

// BalanceEffect describes what a transaction type does to the user's
// overall position.
type BalanceEffect string

const (
	EffectIncome   BalanceEffect = "income"
	EffectExpense  BalanceEffect = "expense"
	EffectTransfer BalanceEffect = "transfer"
)

// CashFlow is the derived cash effect of a transaction.
type CashFlow string

const (
	CashInflow  CashFlow = "inflow"
	CashOutflow CashFlow = "outflow"
	CashNone    CashFlow = "none"
)

// LiabilityEffect is the derived effect on outstanding debt.
type LiabilityEffect string

const (
	LiabilityIncrease LiabilityEffect = "increase"
	LiabilityDecrease LiabilityEffect = "decrease"
	LiabilityNone     LiabilityEffect = "none"
)

// TransactionType is an externally supplied type (id + balance effect).
type TransactionType struct {
	ID     string        `json:"id"`
	Name   string        `json:"name"`
	Effect BalanceEffect `json:"effect"`
}

// Transaction is the canonical record every stage operates on.
type Transaction struct {
	ID             string    `json:"id,omitempty"`
	Date           string    `json:"date"` // YYYY-MM-DD
	Amount         float64   `json:"amount"`
	Direction      Direction `json:"direction"`
	Description    string    `json:"description"`
	RawDescription string    `json:"raw_description"`

	CategoryID string `json:"category_id,omitempty"`
	PayeeID    string `json:"payee_id,omitempty"`
	TypeID     string `json:"type_id,omitempty"`

	CashFlow  CashFlow        `json:"cash_flow"`
	Liability LiabilityEffect `json:"liability"`

	IsPayment          bool `json:"is_payment"`
	IsInternalTransfer bool `json:"is_internal_transfer"`

	Memo     string   `json:"memo,omitempty"`
	Balance  *float64 `json:"balance,omitempty"`
	Currency string   `json:"currency"`

	AccountID string `json:"account_id"`
	UserID    string `json:"user_id"`

	SourceLabel   string `json:"source_label,omitempty"`
	AppliedRuleID string `json:"applied_rule_id,omitempty"`

	// OriginalRow echoes the parsed source row for audit; nil for
	// transactions that did not come from a tabular import.
	OriginalRow map[string]string `json:"original_row,omitempty"`
}

// Lookup maps category/payee/type ids to display names. It is supplied by
// the surrounding application; the pipeline only reads it.
type Lookup map[string]string

// Name returns the display name for an id, falling back to the id itself.
func (l Lookup) Name(id string) string {
	if name, ok := l[id]; ok {
		return name
	}
	return id
}
