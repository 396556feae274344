// Package pipeline threads the import stages together over explicit
// snapshots: normalize → classify → stage → (user confirmation) → merge.
// Each stage is a pure pass; the pipeline only sequences them and logs.
package pipeline

import (
	"log/slog"

	"github.com/ledgerpipe/ledgerpipe/internal/domain/ledger"
	"github.com/ledgerpipe/ledgerpipe/internal/domain/merge"
	"github.com/ledgerpipe/ledgerpipe/internal/domain/normalize"
	"github.com/ledgerpipe/ledgerpipe/internal/domain/reconcile"
	"github.com/ledgerpipe/ledgerpipe/internal/domain/rules"
	"github.com/ledgerpipe/ledgerpipe/internal/domain/staging"
)

// Importer runs the import pipeline. It holds no mutable state between
// calls; ledger and rule snapshots are passed in per invocation.
type Importer struct {
	logger *slog.Logger
}

// NewImporter creates an importer. A nil logger falls back to the default.
func NewImporter(logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{logger: logger}
}

// StageRequest carries everything one staging pass needs.
type StageRequest struct {
	Input    normalize.Input
	Rules    []rules.Rule
	Snapshot []ledger.Transaction
}

// Stage normalizes the raw rows, applies the rule set, and classifies
// conflicts against the ledger snapshot. The returned batch is what the
// verification UI shows the user.
func (imp *Importer) Stage(req StageRequest) (*staging.Batch, error) {
	txs, err := normalize.Normalize(req.Input)
	if err != nil {
		return nil, err
	}

	engine := rules.NewEngine(req.Rules)
	ruleSkipped := make([]bool, len(txs))
	for i := range txs {
		_, skip := engine.Apply(&txs[i])
		ruleSkipped[i] = skip
	}

	batch := staging.Stage(txs, req.Snapshot)
	for i := range batch.Records {
		if ruleSkipped[i] {
			batch.Records[i].Ignore = true
			batch.Records[i].SkippedByRule = true
		}
	}

	imp.logger.Info("staged import batch",
		"rows", len(req.Input.Rows),
		"staged", len(batch.Records),
		"dropped", len(req.Input.Rows)-len(batch.Records))

	return batch, nil
}

// Commit merges the confirmed subset into the ledger snapshot. Collisions
// are routed to duplicates, not errors.
func (imp *Importer) Commit(snapshot []ledger.Transaction, confirmed []ledger.Transaction) merge.Result {
	result := merge.Merge(snapshot, confirmed)

	imp.logger.Info("merged import batch",
		"confirmed", len(confirmed),
		"added", len(result.Added),
		"duplicates", len(result.Duplicates))

	return result
}

// Reconcile parses a pasted statement and runs the advisory matcher
// against a ledger view. The original text is never modified; on parse
// failure the caller can surface it for retry as-is.
func (imp *Importer) Reconcile(text string, accountID, userID, currency string, view []ledger.Transaction, cfg reconcile.Config) (reconcile.Result, error) {
	statement, err := normalize.ParsePasted(text, accountID, userID, currency)
	if err != nil {
		return reconcile.Result{}, err
	}

	result := reconcile.Match(statement, view, cfg)

	imp.logger.Info("reconciled statement",
		"entries", len(statement),
		"matched", len(result.Matched),
		"missing_in_app", len(result.MissingInApp),
		"missing_in_statement", len(result.MissingInStatement))

	return result, nil
}
