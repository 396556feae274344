// Package signature computes the deterministic fingerprints used for
// duplicate detection and persistent transaction IDs.
//
// The strict signature is a pure function of the transaction's defining
// fields; two transactions with the same composite always collide, which is
// what makes the merge stage idempotent. The loose signature deliberately
// ignores direction and description so same-day opposite entries can be
// flagged as possible reversals.
package signature

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerpipe/ledgerpipe/internal/domain/ledger"
)

// idNamespace seeds UUIDv5 generation so IDs are stable across runs and
// machines. Generated once, never changed.
var idNamespace = uuid.MustParse("9f2c1e6a-4b3d-4f57-8a21-c7d09b5e1f04")

// Strict returns the exact-duplicate key:
// (date, normalized description, magnitude, type, account, user).
func Strict(tx ledger.Transaction) string {
	return strings.Join([]string{
		tx.Date,
		normalizeDescription(tx.Description),
		formatAmount(tx.Amount),
		tx.TypeID,
		tx.AccountID,
		tx.UserID,
	}, "|")
}

// Loose returns the reversal-candidate key:
// (date, magnitude rounded to cents, account). Direction-agnostic.
func Loose(tx ledger.Transaction) string {
	cents := decimal.NewFromFloat(tx.Amount).Round(2).StringFixed(2)
	return fmt.Sprintf("%s|%s|%s", tx.Date, cents, tx.AccountID)
}

// ID derives the persistent transaction ID from the strict signature.
// UUIDv5 keeps it a deterministic, reproducible encoding of the key.
func ID(tx ledger.Transaction) string {
	return uuid.NewSHA1(idNamespace, []byte(Strict(tx))).String()
}

// normalizeDescription lowers case and collapses whitespace so cosmetic
// differences never break duplicate detection.
func normalizeDescription(desc string) string {
	return strings.ToLower(strings.Join(strings.Fields(desc), " "))
}

// formatAmount renders the magnitude with fixed precision so float
// formatting quirks cannot split a signature.
func formatAmount(amount float64) string {
	return decimal.NewFromFloat(amount).Round(2).StringFixed(2)
}
