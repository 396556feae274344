// Package staging classifies a batch of normalized transactions against a
// ledger snapshot before the user confirms an import.
//
// Classification runs once per batch and never mutates the ledger. The
// staged batch uses an arena plus id→index map so later stages (rule
// application, merge) address records without copying or shared globals.
package staging

import (
	"github.com/ledgerpipe/ledgerpipe/internal/domain/ledger"
	"github.com/ledgerpipe/ledgerpipe/internal/domain/signature"
)

// ConflictType says why a staged transaction might not need importing.
type ConflictType string

const (
	ConflictNone ConflictType = "none"
	// ConflictBatch: the strict signature appeared earlier in this batch.
	ConflictBatch ConflictType = "batch"
	// ConflictDatabase: the strict signature is already in the ledger.
	ConflictDatabase ConflictType = "database"
	// ConflictReversal: a same-day, same-amount, opposite-direction entry
	// exists elsewhere in the batch. Advisory only.
	ConflictReversal ConflictType = "reversal"
)

// Record is a canonical transaction annotated with its conflict class.
type Record struct {
	Transaction ledger.Transaction `json:"transaction"`
	Conflict    ConflictType       `json:"conflict"`
	// Ignore defaults to true for database/batch conflicts; the user may
	// toggle it before commit.
	Ignore bool `json:"ignore"`
	// SkippedByRule marks records a skip-import rule defaulted to ignored.
	// Set by the caller that ran the rule engine, not by Stage.
	SkippedByRule bool `json:"skipped_by_rule,omitempty"`
}

// Batch is the staged arena: a flat record slice plus an id→index map.
type Batch struct {
	Records []Record
	byID    map[string]int
}

// Get returns a pointer into the arena for the given transaction ID.
func (b *Batch) Get(id string) (*Record, bool) {
	idx, ok := b.byID[id]
	if !ok {
		return nil, false
	}
	return &b.Records[idx], true
}

// Confirmed returns the transactions the user left un-ignored, ready for
// merge.
func (b *Batch) Confirmed() []ledger.Transaction {
	var out []ledger.Transaction
	for _, r := range b.Records {
		if !r.Ignore {
			out = append(out, r.Transaction)
		}
	}
	return out
}

// Stage assigns each transaction its persistent ID and conflict class
// against the supplied ledger snapshot.
//
// database and batch conflicts default to ignored; reversal is advisory and
// stays importable. Reversal applies only when neither of the other classes
// already does.
func Stage(batch []ledger.Transaction, snapshot []ledger.Transaction) *Batch {
	inLedger := make(map[string]bool, len(snapshot))
	for _, tx := range snapshot {
		inLedger[signature.Strict(tx)] = true
	}

	// loose signature → directions seen in this batch
	looseSeen := make(map[string]map[ledger.Direction]bool)
	for _, tx := range batch {
		key := signature.Loose(tx)
		if looseSeen[key] == nil {
			looseSeen[key] = make(map[ledger.Direction]bool)
		}
		looseSeen[key][tx.Direction] = true
	}

	staged := &Batch{
		Records: make([]Record, 0, len(batch)),
		byID:    make(map[string]int, len(batch)),
	}
	seenInBatch := make(map[string]bool, len(batch))

	for _, tx := range batch {
		strict := signature.Strict(tx)
		tx.ID = signature.ID(tx)

		rec := Record{Transaction: tx, Conflict: ConflictNone}

		switch {
		case inLedger[strict]:
			rec.Conflict = ConflictDatabase
			rec.Ignore = true
		case seenInBatch[strict]:
			rec.Conflict = ConflictBatch
			rec.Ignore = true
		case hasOpposite(looseSeen[signature.Loose(tx)], tx.Direction):
			rec.Conflict = ConflictReversal
		}

		seenInBatch[strict] = true
		staged.byID[tx.ID] = len(staged.Records)
		staged.Records = append(staged.Records, rec)
	}

	return staged
}

func hasOpposite(directions map[ledger.Direction]bool, d ledger.Direction) bool {
	if directions == nil {
		return false
	}
	opposite := ledger.Debit
	if d == ledger.Debit {
		opposite = ledger.Credit
	}
	return directions[opposite]
}
