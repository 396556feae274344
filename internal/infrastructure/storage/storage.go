// Package storage persists the ledger, the classification rule set, and
// the import audit trail in SQLite.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ledgerpipe/ledgerpipe/internal/domain/ledger"
)

// Storage provides SQLite-backed database access
type Storage struct {
	db *sql.DB
}

// Compile-time check that Storage implements Repository
var _ Repository = (*Storage)(nil)

// NewStorage creates a new storage instance with SQLite database
func NewStorage(dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable foreign key constraints (SQLite-specific)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &Storage{db: db}

	if err := s.runMigrations(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

// SaveTransactions upserts a batch of merged transactions. The id is
// content-derived, so replaying a batch rewrites identical rows.
func (s *Storage) SaveTransactions(txs []ledger.Transaction) error {
	if len(txs) == 0 {
		return nil
	}

	dbTx, err := s.db.Begin()
	if err != nil {
		return err
	}

	query := `
	INSERT OR REPLACE INTO ledger_transactions
	(id, date, amount, direction, description, raw_description,
	 category_id, payee_id, type_id, cash_flow, liability,
	 is_payment, is_internal_transfer, memo, balance, currency,
	 account_id, user_id, source_label, applied_rule_id, original_row_json)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	stmt, err := dbTx.Prepare(query)
	if err != nil {
		_ = dbTx.Rollback()
		return err
	}
	defer func() { _ = stmt.Close() }()

	for i := range txs {
		tx := &txs[i]

		var balance sql.NullFloat64
		if tx.Balance != nil {
			balance = sql.NullFloat64{Float64: *tx.Balance, Valid: true}
		}

		var originalRow string
		if tx.OriginalRow != nil {
			data, err := json.Marshal(tx.OriginalRow)
			if err != nil {
				_ = dbTx.Rollback()
				return fmt.Errorf("failed to encode original row for %s: %w", tx.ID, err)
			}
			originalRow = string(data)
		}

		_, err = stmt.Exec(
			tx.ID,
			tx.Date,
			tx.Amount,
			string(tx.Direction),
			tx.Description,
			tx.RawDescription,
			tx.CategoryID,
			tx.PayeeID,
			tx.TypeID,
			string(tx.CashFlow),
			string(tx.Liability),
			tx.IsPayment,
			tx.IsInternalTransfer,
			tx.Memo,
			balance,
			tx.Currency,
			tx.AccountID,
			tx.UserID,
			tx.SourceLabel,
			tx.AppliedRuleID,
			originalRow,
		)
		if err != nil {
			_ = dbTx.Rollback()
			return fmt.Errorf("failed to save transaction %s: %w", tx.ID, err)
		}
	}

	return dbTx.Commit()
}

const transactionColumns = `
	id, date, amount, direction, description, raw_description,
	category_id, payee_id, type_id, cash_flow, liability,
	is_payment, is_internal_transfer, memo, balance, currency,
	account_id, user_id, source_label, applied_rule_id, original_row_json`

// ListTransactions returns transactions matching the given filters with
// pagination, newest date first.
func (s *Storage) ListTransactions(filters TransactionFilters) (*TransactionListResult, error) {
	where := " WHERE 1=1"
	var args []any

	if filters.UserID != "" {
		where += " AND user_id = ?"
		args = append(args, filters.UserID)
	}
	if filters.AccountID != "" {
		where += " AND account_id = ?"
		args = append(args, filters.AccountID)
	}
	if filters.DateFrom != "" {
		where += " AND date >= ?"
		args = append(args, filters.DateFrom)
	}
	if filters.DateTo != "" {
		where += " AND date <= ?"
		args = append(args, filters.DateTo)
	}

	var total int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM ledger_transactions"+where, args...).Scan(&total); err != nil {
		return nil, err
	}

	// SQLite treats a negative LIMIT as "no limit"
	limit := filters.Limit
	if limit == 0 {
		limit = 100
	}

	query := "SELECT" + transactionColumns +
		" FROM ledger_transactions" + where +
		" ORDER BY date DESC, id LIMIT ? OFFSET ?"
	args = append(args, limit, filters.Offset)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var txs []ledger.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, *tx)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &TransactionListResult{
		Transactions: txs,
		TotalCount:   total,
		Limit:        limit,
		Offset:       filters.Offset,
	}, nil
}

// GetTransaction retrieves a transaction by id; nil if absent
func (s *Storage) GetTransaction(id string) (*ledger.Transaction, error) {
	row := s.db.QueryRow("SELECT"+transactionColumns+" FROM ledger_transactions WHERE id = ?", id)

	tx, err := scanTransaction(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// DeleteTransaction removes a transaction by id
func (s *Storage) DeleteTransaction(id string) error {
	_, err := s.db.Exec("DELETE FROM ledger_transactions WHERE id = ?", id)
	return err
}

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row scanner) (*ledger.Transaction, error) {
	var tx ledger.Transaction
	var direction, cashFlow, liability string
	var rawDescription, categoryID, payeeID, typeID sql.NullString
	var memo, currency, sourceLabel, appliedRuleID, originalRow sql.NullString
	var balance sql.NullFloat64

	err := row.Scan(
		&tx.ID,
		&tx.Date,
		&tx.Amount,
		&direction,
		&tx.Description,
		&rawDescription,
		&categoryID,
		&payeeID,
		&typeID,
		&cashFlow,
		&liability,
		&tx.IsPayment,
		&tx.IsInternalTransfer,
		&memo,
		&balance,
		&currency,
		&tx.AccountID,
		&tx.UserID,
		&sourceLabel,
		&appliedRuleID,
		&originalRow,
	)
	if err != nil {
		return nil, err
	}

	tx.Direction = ledger.Direction(direction)
	tx.CashFlow = ledger.CashFlow(cashFlow)
	tx.Liability = ledger.LiabilityEffect(liability)
	tx.RawDescription = rawDescription.String
	tx.CategoryID = categoryID.String
	tx.PayeeID = payeeID.String
	tx.TypeID = typeID.String
	tx.Memo = memo.String
	tx.Currency = currency.String
	tx.SourceLabel = sourceLabel.String
	tx.AppliedRuleID = appliedRuleID.String

	if balance.Valid {
		b := balance.Float64
		tx.Balance = &b
	}
	if originalRow.Valid && originalRow.String != "" {
		// optional audit payload, a decode failure only loses the echo
		_ = json.Unmarshal([]byte(originalRow.String), &tx.OriginalRow)
	}

	return &tx, nil
}
