package normalize

import "strings"

// canonical fields the normalizer looks for in a header row
type field int

const (
	fieldDate field = iota
	fieldDescription
	fieldAmount
	fieldDebit
	fieldCredit
	fieldBalance
	fieldStatus
	fieldMemo
)

// fieldSynonyms maps each canonical field to the header names banks actually
// use. Matching is case-insensitive and accepts headers that merely contain
// a synonym ("Transaction Date" matches "date").
var fieldSynonyms = map[field][]string{
	fieldDate:        {"date", "posted", "transaction date", "post date"},
	fieldDescription: {"description", "payee", "merchant", "details", "memo/description", "name"},
	fieldAmount:      {"amount", "transaction amount"},
	fieldDebit:       {"debit", "withdrawal", "withdrawals", "money out"},
	fieldCredit:      {"credit", "deposit", "deposits", "money in"},
	fieldBalance:     {"balance", "running balance"},
	fieldStatus:      {"status", "state"},
	fieldMemo:        {"memo", "notes", "note", "reference"},
}

// columns maps canonical fields to the original header names of a statement.
// Absent fields have no entry.
type columns map[field]string

// detectColumns resolves each canonical field to the first header that
// equals or contains one of its synonyms.
func detectColumns(headers []string) columns {
	cols := make(columns)
	for f, synonyms := range fieldSynonyms {
		for _, header := range headers {
			h := strings.ToLower(strings.TrimSpace(header))
			if h == "" {
				continue
			}
			if matchesAny(h, synonyms) {
				cols[f] = header
				break
			}
		}
	}

	// A header like "Debit Amount" would satisfy both the amount and debit
	// fields; when dedicated debit/credit columns exist they win and the
	// amount mapping is dropped if it points at one of them.
	if amt, ok := cols[fieldAmount]; ok {
		if cols[fieldDebit] == amt || cols[fieldCredit] == amt {
			delete(cols, fieldAmount)
		}
	}

	return cols
}

func matchesAny(header string, synonyms []string) bool {
	for _, s := range synonyms {
		if header == s || strings.Contains(header, s) {
			return true
		}
	}
	return false
}

// cell returns the trimmed cell value for a canonical field. The bool is
// false when the field is absent from the statement or the cell is empty.
func (c columns) cell(row map[string]string, f field) (string, bool) {
	header, ok := c[f]
	if !ok {
		return "", false
	}
	val := strings.TrimSpace(row[header])
	if val == "" {
		return "", false
	}
	return val, true
}

func isPending(status string) bool {
	return strings.EqualFold(strings.TrimSpace(status), "pending")
}
