package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_AllApplied(t *testing.T) {
	s := newTestStorage(t)

	applied, err := s.getAppliedMigrations()
	require.NoError(t, err)

	for _, m := range allMigrations {
		assert.True(t, applied[m.Version], "migration %d (%s) not applied", m.Version, m.Name)
	}
}

func TestMigrations_Rerunnable(t *testing.T) {
	// Opening the same database twice must not re-run applied migrations.
	dbPath := filepath.Join(t.TempDir(), "test.db")

	s1, err := NewStorage(dbPath)
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := NewStorage(dbPath)
	require.NoError(t, err)
	defer func() { _ = s2.Close() }()

	var count int
	err = s2.db.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, len(allMigrations), count)
}

func TestMigrations_TablesExist(t *testing.T) {
	s := newTestStorage(t)

	for _, table := range []string{
		"ledger_transactions",
		"classification_rules",
		"import_runs",
		"accounts",
		"transaction_types",
	} {
		var name string
		err := s.db.QueryRow(
			`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table,
		).Scan(&name)
		require.NoError(t, err, "table %s missing", table)
	}
}
