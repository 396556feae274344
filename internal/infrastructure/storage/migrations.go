package storage

import (
	"database/sql"
	"fmt"
	"log"
)

// Migration represents a database schema migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.Tx) error
}

// allMigrations defines all migrations in order
var allMigrations = []Migration{
	{
		Version: 1,
		Name:    "initial_transactions",
		Up:      migration001InitialTransactions,
	},
	{
		Version: 2,
		Name:    "add_classification_rules",
		Up:      migration002AddClassificationRules,
	},
	{
		Version: 3,
		Name:    "add_import_runs",
		Up:      migration003AddImportRuns,
	},
	{
		Version: 4,
		Name:    "add_lookup_tables",
		Up:      migration004AddLookupTables,
	},
}

// runMigrations executes all pending migrations
func (s *Storage) runMigrations() error {
	if err := s.ensureMigrationsTable(); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := s.getAppliedMigrations()
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	for _, migration := range allMigrations {
		if applied[migration.Version] {
			continue
		}

		log.Printf("Running migration %d: %s", migration.Version, migration.Name)

		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", migration.Version, migration.Name, err)
		}

		_, err = tx.Exec(`
			INSERT INTO schema_migrations (version, name) VALUES (?, ?)
		`, migration.Version, migration.Name)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

// ensureMigrationsTable creates the schema_migrations table
func (s *Storage) ensureMigrationsTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`

	_, err := s.db.Exec(query)
	return err
}

// getAppliedMigrations returns a set of applied migration versions
func (s *Storage) getAppliedMigrations() (map[int]bool, error) {
	applied := make(map[int]bool)

	rows, err := s.db.Query(`SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}

	return applied, rows.Err()
}

// ================================================================
// MIGRATION FUNCTIONS
// ================================================================

// migration001InitialTransactions creates the ledger transactions table.
// The id column is the deterministic content-derived transaction id, so
// INSERT OR REPLACE keeps re-imports idempotent at the storage level too.
func migration001InitialTransactions(db *sql.Tx) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS ledger_transactions (
			id TEXT PRIMARY KEY,
			date TEXT NOT NULL,
			amount REAL NOT NULL,
			direction TEXT NOT NULL,
			description TEXT NOT NULL,
			raw_description TEXT,
			category_id TEXT,
			payee_id TEXT,
			type_id TEXT,
			cash_flow TEXT,
			liability TEXT,
			is_payment BOOLEAN DEFAULT 0,
			is_internal_transfer BOOLEAN DEFAULT 0,
			memo TEXT,
			balance REAL,
			currency TEXT,
			account_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			source_label TEXT,
			applied_rule_id TEXT,
			original_row_json TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_ledger_transactions_user
		 ON ledger_transactions(user_id)`,

		`CREATE INDEX IF NOT EXISTS idx_ledger_transactions_account
		 ON ledger_transactions(account_id)`,

		`CREATE INDEX IF NOT EXISTS idx_ledger_transactions_date
		 ON ledger_transactions(date DESC)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}

	return nil
}

// migration002AddClassificationRules creates the rules table. Conditions
// are stored as a JSON array; position carries evaluation order.
func migration002AddClassificationRules(db *sql.Tx) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS classification_rules (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			name TEXT,
			scope TEXT,
			position INTEGER NOT NULL DEFAULT 0,
			conditions_json TEXT NOT NULL DEFAULT '[]',
			set_category_id TEXT,
			set_payee_id TEXT,
			set_transaction_type_id TEXT,
			set_description TEXT,
			skip_import BOOLEAN DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_classification_rules_user
		 ON classification_rules(user_id, position)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return err
		}
	}

	return nil
}

// migration003AddImportRuns creates the import_runs audit table
func migration003AddImportRuns(db *sql.Tx) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS import_runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			account_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			source_label TEXT,
			started_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			completed_at TIMESTAMP,
			rows_in INTEGER DEFAULT 0,
			staged INTEGER DEFAULT 0,
			batch_conflicts INTEGER DEFAULT 0,
			database_conflicts INTEGER DEFAULT 0,
			reversal_conflicts INTEGER DEFAULT 0,
			rule_skipped INTEGER DEFAULT 0,
			merged INTEGER DEFAULT 0,
			duplicates INTEGER DEFAULT 0,
			status TEXT DEFAULT 'running'
		)`,

		`CREATE INDEX IF NOT EXISTS idx_import_runs_started
		 ON import_runs(started_at DESC)`,

		`CREATE INDEX IF NOT EXISTS idx_import_runs_account
		 ON import_runs(account_id)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return err
		}
	}

	return nil
}

// migration004AddLookupTables creates accounts and transaction_types
func migration004AddLookupTables(db *sql.Tx) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS accounts (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			name TEXT NOT NULL,
			category TEXT NOT NULL,
			currency TEXT DEFAULT 'USD'
		)`,

		`CREATE INDEX IF NOT EXISTS idx_accounts_user
		 ON accounts(user_id)`,

		`CREATE TABLE IF NOT EXISTS transaction_types (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			effect TEXT NOT NULL
		)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return err
		}
	}

	return nil
}
