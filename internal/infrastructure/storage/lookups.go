package storage

import (
	"github.com/ledgerpipe/ledgerpipe/internal/domain/ledger"
)

// SaveAccount upserts an account
func (s *Storage) SaveAccount(account Account) error {
	query := `
	INSERT OR REPLACE INTO accounts (id, user_id, name, category, currency)
	VALUES (?, ?, ?, ?, ?)
	`

	_, err := s.db.Exec(query,
		account.ID,
		account.UserID,
		account.Name,
		account.Category,
		account.Currency,
	)
	return err
}

// ListAccounts returns a user's accounts
func (s *Storage) ListAccounts(userID string) ([]Account, error) {
	query := `
	SELECT id, user_id, name, category, currency
	FROM accounts
	WHERE user_id = ?
	ORDER BY name
	`

	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var accounts []Account
	for rows.Next() {
		var a Account
		if err := rows.Scan(&a.ID, &a.UserID, &a.Name, &a.Category, &a.Currency); err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}

	return accounts, rows.Err()
}

// SaveTransactionType upserts a transaction type
func (s *Storage) SaveTransactionType(t ledger.TransactionType) error {
	query := `
	INSERT OR REPLACE INTO transaction_types (id, name, effect)
	VALUES (?, ?, ?)
	`

	_, err := s.db.Exec(query, t.ID, t.Name, string(t.Effect))
	return err
}

// ListTransactionTypes returns all transaction types
func (s *Storage) ListTransactionTypes() ([]ledger.TransactionType, error) {
	rows, err := s.db.Query(`SELECT id, name, effect FROM transaction_types ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var types []ledger.TransactionType
	for rows.Next() {
		var t ledger.TransactionType
		var effect string
		if err := rows.Scan(&t.ID, &t.Name, &effect); err != nil {
			return nil, err
		}
		t.Effect = ledger.BalanceEffect(effect)
		types = append(types, t)
	}

	return types, rows.Err()
}
