package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeStatement(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "statement.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadStatementFile(t *testing.T) {
	path := writeStatement(t, "Date,Description,Debit,Credit\n03/15/24,WHOLE FOODS #123,45.99,\n03/16/24,PAYROLL,,1200.00\n")

	headers, rows, err := ReadStatementFile(path)

	require.NoError(t, err)
	assert.Equal(t, []string{"Date", "Description", "Debit", "Credit"}, headers)
	require.Len(t, rows, 2)
	assert.Equal(t, "WHOLE FOODS #123", rows[0]["Description"])
	assert.Equal(t, "1200.00", rows[1]["Credit"])
}

func TestReadStatementFile_PadsShortRows(t *testing.T) {
	path := writeStatement(t, "Date,Description,Amount\n03/15/24,COFFEE\n")

	headers, rows, err := ReadStatementFile(path)

	require.NoError(t, err)
	require.Len(t, headers, 3)
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0]["Amount"])
}

func TestReadStatementFile_Empty(t *testing.T) {
	path := writeStatement(t, "")

	_, _, err := ReadStatementFile(path)

	assert.Error(t, err)
}

func TestReadStatementFile_Missing(t *testing.T) {
	_, _, err := ReadStatementFile(filepath.Join(t.TempDir(), "nope.csv"))

	assert.Error(t, err)
}
