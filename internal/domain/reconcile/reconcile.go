// Package reconcile compares a freshly parsed statement against a ledger
// view and reports what lines up.
//
// The match is greedy and order-dependent, not a globally optimal
// assignment: each statement entry claims the first not-yet-claimed ledger
// entry within tolerance. The result is advisory; nothing here touches the
// ledger.
package reconcile

import (
	"math"

	"github.com/ledgerpipe/ledgerpipe/internal/domain/ledger"
	"github.com/ledgerpipe/ledgerpipe/internal/domain/normalize"
)

// Config holds the match tolerances.
type Config struct {
	DateToleranceDays int     // default 2
	AmountTolerance   float64 // default 0.01, exclusive
}

// DefaultConfig returns the tolerances the product ships with.
func DefaultConfig() Config {
	return Config{
		DateToleranceDays: 2,
		AmountTolerance:   0.01,
	}
}

// Pair is a statement entry matched to a ledger-view entry.
type Pair struct {
	Statement ledger.Transaction `json:"statement"`
	Ledger    ledger.Transaction `json:"ledger"`
	DateDiff  int                `json:"date_diff_days"`
}

// Result partitions both sides of the comparison.
type Result struct {
	Matched            []Pair               `json:"matched"`
	MissingInApp       []ledger.Transaction `json:"missing_in_app"`
	MissingInStatement []ledger.Transaction `json:"missing_in_statement"`
}

// Match runs the greedy scan. For each statement entry the ledger view is
// scanned in its given order and the first unclaimed entry with
// |date diff| <= DateToleranceDays and |amount diff| < AmountTolerance is
// claimed. Leftover ledger entries land in MissingInStatement.
func Match(statement []ledger.Transaction, view []ledger.Transaction, cfg Config) Result {
	claimed := make([]bool, len(view))
	var result Result

	for _, entry := range statement {
		matched := false
		for i, candidate := range view {
			if claimed[i] {
				continue
			}
			days, ok := normalize.DaysBetween(entry.Date, candidate.Date)
			if !ok || days > cfg.DateToleranceDays {
				continue
			}
			if math.Abs(entry.Amount-candidate.Amount) >= cfg.AmountTolerance {
				continue
			}

			claimed[i] = true
			result.Matched = append(result.Matched, Pair{
				Statement: entry,
				Ledger:    candidate,
				DateDiff:  days,
			})
			matched = true
			break
		}
		if !matched {
			result.MissingInApp = append(result.MissingInApp, entry)
		}
	}

	for i, candidate := range view {
		if !claimed[i] {
			result.MissingInStatement = append(result.MissingInStatement, candidate)
		}
	}

	return result
}
