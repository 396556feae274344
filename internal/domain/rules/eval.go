package rules

import (
	"strconv"
	"strings"

	"github.com/ledgerpipe/ledgerpipe/internal/domain/ledger"
	"github.com/ledgerpipe/ledgerpipe/internal/domain/normalize"
)

// fieldValue is a tagged variant so each operator is type-checked at the
// boundary instead of coerced ad hoc.
type fieldValue struct {
	kind valueKind
	str  string
	num  float64
	date string // YYYY-MM-DD
}

type valueKind int

const (
	kindString valueKind = iota
	kindNumber
	kindDate
)

// resolveField maps a condition's field reference onto the transaction.
// Unknown fields return false and the condition evaluates false.
func resolveField(name string, tx ledger.Transaction) (fieldValue, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "description":
		return fieldValue{kind: kindString, str: tx.Description}, true
	case "raw_description", "rawdescription":
		return fieldValue{kind: kindString, str: tx.RawDescription}, true
	case "memo":
		return fieldValue{kind: kindString, str: tx.Memo}, true
	case "direction":
		return fieldValue{kind: kindString, str: string(tx.Direction)}, true
	case "category", "category_id":
		return fieldValue{kind: kindString, str: tx.CategoryID}, true
	case "payee", "payee_id":
		return fieldValue{kind: kindString, str: tx.PayeeID}, true
	case "type", "type_id":
		return fieldValue{kind: kindString, str: tx.TypeID}, true
	case "account", "account_id":
		return fieldValue{kind: kindString, str: tx.AccountID}, true
	case "amount":
		return fieldValue{kind: kindNumber, num: tx.Amount}, true
	case "balance":
		if tx.Balance == nil {
			return fieldValue{}, false
		}
		return fieldValue{kind: kindNumber, num: *tx.Balance}, true
	case "date":
		return fieldValue{kind: kindDate, date: tx.Date}, true
	default:
		return fieldValue{}, false
	}
}

// evalCondition evaluates one condition. Any mismatch (unknown field,
// unparseable value, operator that does not apply to the field's type)
// is false, never an error.
func evalCondition(c Condition, tx ledger.Transaction) bool {
	fv, ok := resolveField(c.Field, tx)
	if !ok {
		return false
	}

	switch fv.kind {
	case kindString:
		return evalString(fv.str, c.Operator, c.Value)
	case kindNumber:
		want, err := strconv.ParseFloat(strings.TrimSpace(c.Value), 64)
		if err != nil {
			return false
		}
		return evalNumber(fv.num, c.Operator, want)
	case kindDate:
		want, ok := normalize.ParseDate(c.Value)
		if !ok {
			return false
		}
		return evalDate(fv.date, c.Operator, want)
	}
	return false
}

// String comparisons are case-insensitive; users type "NETFLIX" and expect
// it to hit "Netflix.com".
func evalString(have string, op Operator, want string) bool {
	h := strings.ToLower(strings.TrimSpace(have))
	w := strings.ToLower(strings.TrimSpace(want))

	switch op {
	case OpEquals:
		return h == w
	case OpNotEquals:
		return h != w
	case OpContains:
		return strings.Contains(h, w)
	case OpNotContains:
		return !strings.Contains(h, w)
	case OpStartsWith:
		return strings.HasPrefix(h, w)
	case OpEndsWith:
		return strings.HasSuffix(h, w)
	default:
		return false
	}
}

func evalNumber(have float64, op Operator, want float64) bool {
	switch op {
	case OpEquals:
		return have == want
	case OpNotEquals:
		return have != want
	case OpGreaterThan:
		return have > want
	case OpLessThan:
		return have < want
	case OpGreaterOrEqual:
		return have >= want
	case OpLessOrEqual:
		return have <= want
	default:
		return false
	}
}

// Dates are both YYYY-MM-DD here, so ordinal operators reduce to string
// comparison.
func evalDate(have string, op Operator, want string) bool {
	switch op {
	case OpEquals:
		return have == want
	case OpNotEquals:
		return have != want
	case OpGreaterThan:
		return have > want
	case OpLessThan:
		return have < want
	case OpGreaterOrEqual:
		return have >= want
	case OpLessOrEqual:
		return have <= want
	default:
		return false
	}
}
