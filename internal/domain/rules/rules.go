// Package rules evaluates a user-authored, priority-ordered rule set
// against canonical transactions and applies the first matching rule's
// actions.
//
// Evaluation never fails: an unknown field, an operator applied to the
// wrong type, or an unparseable comparison value simply makes that
// condition false, so a malformed rule fails to match instead of aborting
// the batch.
package rules

import (
	"github.com/ledgerpipe/ledgerpipe/internal/domain/ledger"
)

// Connector joins a condition to the NEXT condition in the same rule.
type Connector string

const (
	And Connector = "AND"
	Or  Connector = "OR"
)

// Operator compares a transaction field with a condition value.
type Operator string

const (
	OpEquals         Operator = "equals"
	OpNotEquals      Operator = "not_equals"
	OpContains       Operator = "contains"
	OpNotContains    Operator = "not_contains"
	OpStartsWith     Operator = "starts_with"
	OpEndsWith       Operator = "ends_with"
	OpGreaterThan    Operator = "greater_than"
	OpLessThan       Operator = "less_than"
	OpGreaterOrEqual Operator = "greater_or_equal"
	OpLessOrEqual    Operator = "less_or_equal"
)

// Condition is one field comparison. NextLogic links it to the following
// condition; it is ignored on the last condition of a rule.
type Condition struct {
	ID        string    `json:"id"`
	Field     string    `json:"field"`
	Operator  Operator  `json:"operator"`
	Value     string    `json:"value"`
	NextLogic Connector `json:"next_logic,omitempty"`
}

// Rule is an ordered condition chain plus the mutations it applies.
type Rule struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Scope      string      `json:"scope,omitempty"`
	Conditions []Condition `json:"conditions"`

	SetCategoryID        string `json:"set_category_id,omitempty"`
	SetPayeeID           string `json:"set_payee_id,omitempty"`
	SetTransactionTypeID string `json:"set_transaction_type_id,omitempty"`
	SetDescription       string `json:"set_description,omitempty"`
	SkipImport           bool   `json:"skip_import,omitempty"`
}

// Matches evaluates the condition chain strictly left-to-right using each
// condition's own connector to the next one. There is no operator
// precedence and no grouping: `A OR B AND C` is ((A OR B) AND C) in
// textual order. A rule with no conditions matches nothing.
func (r Rule) Matches(tx ledger.Transaction) bool {
	if len(r.Conditions) == 0 {
		return false
	}

	result := evalCondition(r.Conditions[0], tx)
	for i := 1; i < len(r.Conditions); i++ {
		next := evalCondition(r.Conditions[i], tx)
		if r.Conditions[i-1].NextLogic == Or {
			result = result || next
		} else {
			result = result && next
		}
	}
	return result
}

// Engine holds the stored-order rule set.
type Engine struct {
	rules []Rule
}

// NewEngine creates an engine over a rule snapshot. Order is significant:
// earlier rules win.
func NewEngine(rules []Rule) *Engine {
	return &Engine{rules: rules}
}

// Apply finds the first matching rule, applies its actions to the
// transaction in place, and records the applied rule id. The skip result
// tells the caller to default the record to ignored at staging.
//
// A transaction matching no rule keeps whatever classification it already
// carries.
func (e *Engine) Apply(tx *ledger.Transaction) (applied *Rule, skip bool) {
	for i := range e.rules {
		rule := &e.rules[i]
		if !rule.Matches(*tx) {
			continue
		}

		if rule.SetCategoryID != "" {
			tx.CategoryID = rule.SetCategoryID
		}
		if rule.SetPayeeID != "" {
			tx.PayeeID = rule.SetPayeeID
		}
		if rule.SetTransactionTypeID != "" {
			tx.TypeID = rule.SetTransactionTypeID
		}
		if rule.SetDescription != "" {
			tx.Description = rule.SetDescription
		}
		tx.AppliedRuleID = rule.ID

		return rule, rule.SkipImport
	}
	return nil, false
}
