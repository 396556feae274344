package normalize

import (
	"errors"
	"strings"

	"github.com/ledgerpipe/ledgerpipe/internal/domain/ledger"
)

// ErrUnparseableStatement is returned when pasted free-text contains no
// recognizable entries. The caller keeps the original input so the user can
// fix it and retry.
var ErrUnparseableStatement = errors.New("could not parse any entries from pasted statement")

// ParsePasted parses a pasted free-text statement into canonical
// transactions. Each non-empty line is expected to carry a date token and
// an amount token in any position; everything else on the line becomes the
// description. Lines without both are skipped.
func ParsePasted(text string, accountID, userID, currency string) ([]ledger.Transaction, error) {
	var out []ledger.Transaction

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if tx, ok := parsePastedLine(line); ok {
			tx.AccountID = accountID
			tx.UserID = userID
			tx.Currency = currency
			out = append(out, tx)
		}
	}

	if len(out) == 0 {
		return nil, ErrUnparseableStatement
	}
	return out, nil
}

// parsePastedLine scans tokens for the first parseable date and the last
// parseable amount; the rest of the line is the description.
func parsePastedLine(line string) (ledger.Transaction, bool) {
	tokens := strings.Fields(line)
	if len(tokens) < 2 {
		return ledger.Transaction{}, false
	}

	dateIdx, amountIdx := -1, -1
	var date string

	for i, tok := range tokens {
		if dateIdx == -1 {
			if d, ok := ParseDate(tok); ok {
				dateIdx = i
				date = d
				continue
			}
		}
	}
	for i := len(tokens) - 1; i >= 0; i-- {
		if i == dateIdx {
			continue
		}
		if _, ok := parseAmountCell(tokens[i]); ok {
			amountIdx = i
			break
		}
	}

	if dateIdx == -1 || amountIdx == -1 {
		return ledger.Transaction{}, false
	}

	amount, _ := parseAmountCell(tokens[amountIdx])
	if amount.IsZero() {
		return ledger.Transaction{}, false
	}

	var descTokens []string
	for i, tok := range tokens {
		if i == dateIdx || i == amountIdx {
			continue
		}
		descTokens = append(descTokens, tok)
	}
	raw := strings.Join(descTokens, " ")

	direction := ledger.Credit
	if amount.IsNegative() {
		direction = ledger.Debit
	}

	return ledger.Transaction{
		Date:           date,
		Amount:         amount.Abs().InexactFloat64(),
		Direction:      direction,
		Description:    TitleCase(CleanDescription(raw)),
		RawDescription: raw,
	}, true
}
