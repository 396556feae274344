// Package merge appends user-confirmed transactions to a ledger snapshot,
// idempotently.
//
// Staging already filtered most conflicts, but the snapshot may be stale or
// a concurrent import may have landed, so every incoming record is checked
// again against the ledger index before it is added.
package merge

import (
	"sort"

	"github.com/ledgerpipe/ledgerpipe/internal/domain/ledger"
	"github.com/ledgerpipe/ledgerpipe/internal/domain/signature"
)

// DuplicatePair couples a rejected record with the ledger record it
// collided with.
type DuplicatePair struct {
	Incoming ledger.Transaction `json:"incoming"`
	Existing ledger.Transaction `json:"existing"`
}

// Result is the merge outcome. Ledger is the new snapshot with Added
// appended, sorted by date descending.
type Result struct {
	Added      []ledger.Transaction `json:"added"`
	Duplicates []DuplicatePair      `json:"duplicates"`
	Ledger     []ledger.Transaction `json:"-"`
}

// Merge recomputes each confirmed record's strict signature and ID, routes
// collisions to Duplicates, and appends the rest. Running the same input a
// second time adds nothing.
func Merge(snapshot []ledger.Transaction, confirmed []ledger.Transaction) Result {
	index := make(map[string]ledger.Transaction, len(snapshot))
	for _, tx := range snapshot {
		index[signature.Strict(tx)] = tx
	}

	result := Result{
		Ledger: append([]ledger.Transaction(nil), snapshot...),
	}

	for _, tx := range confirmed {
		key := signature.Strict(tx)
		if existing, ok := index[key]; ok {
			result.Duplicates = append(result.Duplicates, DuplicatePair{
				Incoming: tx,
				Existing: existing,
			})
			continue
		}

		tx.ID = signature.ID(tx)
		index[key] = tx
		result.Added = append(result.Added, tx)
		result.Ledger = append(result.Ledger, tx)
	}

	sort.SliceStable(result.Ledger, func(i, j int) bool {
		return result.Ledger[i].Date > result.Ledger[j].Date
	})

	return result
}
