package storage

import (
	"encoding/json"
	"fmt"

	"github.com/ledgerpipe/ledgerpipe/internal/domain/rules"
)

// SaveRule upserts a rule at the given position in the user's evaluation
// order. Conditions round-trip through a JSON column.
func (s *Storage) SaveRule(userID string, rule rules.Rule, position int) error {
	conditionsJSON, err := json.Marshal(rule.Conditions)
	if err != nil {
		return fmt.Errorf("failed to encode conditions for rule %s: %w", rule.ID, err)
	}

	query := `
	INSERT OR REPLACE INTO classification_rules
	(id, user_id, name, scope, position, conditions_json,
	 set_category_id, set_payee_id, set_transaction_type_id,
	 set_description, skip_import)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = s.db.Exec(query,
		rule.ID,
		userID,
		rule.Name,
		rule.Scope,
		position,
		string(conditionsJSON),
		rule.SetCategoryID,
		rule.SetPayeeID,
		rule.SetTransactionTypeID,
		rule.SetDescription,
		rule.SkipImport,
	)
	return err
}

// ListRules returns the user's rules in evaluation order
func (s *Storage) ListRules(userID string) ([]rules.Rule, error) {
	query := `
	SELECT id, name, scope, conditions_json,
	       set_category_id, set_payee_id, set_transaction_type_id,
	       set_description, skip_import
	FROM classification_rules
	WHERE user_id = ?
	ORDER BY position, created_at
	`

	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var result []rules.Rule
	for rows.Next() {
		var rule rules.Rule
		var conditionsJSON string
		err := rows.Scan(
			&rule.ID,
			&rule.Name,
			&rule.Scope,
			&conditionsJSON,
			&rule.SetCategoryID,
			&rule.SetPayeeID,
			&rule.SetTransactionTypeID,
			&rule.SetDescription,
			&rule.SkipImport,
		)
		if err != nil {
			return nil, err
		}

		if err := json.Unmarshal([]byte(conditionsJSON), &rule.Conditions); err != nil {
			return nil, fmt.Errorf("failed to decode conditions for rule %s: %w", rule.ID, err)
		}

		result = append(result, rule)
	}

	return result, rows.Err()
}

// DeleteRule removes a rule by id
func (s *Storage) DeleteRule(id string) error {
	_, err := s.db.Exec("DELETE FROM classification_rules WHERE id = ?", id)
	return err
}
