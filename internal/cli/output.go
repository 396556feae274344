package cli

import (
	"fmt"
	"strings"

	"github.com/ledgerpipe/ledgerpipe/internal/application/service"
	"github.com/ledgerpipe/ledgerpipe/internal/domain/ledger"
	"github.com/ledgerpipe/ledgerpipe/internal/domain/staging"
	"github.com/ledgerpipe/ledgerpipe/internal/infrastructure/storage"
)

// PrintHeader prints the application header
func PrintHeader(sourceLabel string, dryRun bool) {
	mode := "IMPORT"
	if dryRun {
		mode = "DRY-RUN"
	}
	fmt.Printf("ledgerpipe: %s (%s mode)\n", sourceLabel, mode)
}

// PrintConfiguration prints the import configuration
func PrintConfiguration(accountID, userID, category, currency string) {
	fmt.Printf("Account: %s | User: %s | Category: %s | Currency: %s\n\n",
		accountID, userID, category, currency)
}

// PrintStagedBatch prints one line per staged record with its conflict
// marker so the user can decide what to confirm.
func PrintStagedBatch(records []staging.Record) {
	for _, rec := range records {
		marker := " "
		switch {
		case rec.Conflict == staging.ConflictDatabase:
			marker = "D"
		case rec.Conflict == staging.ConflictBatch:
			marker = "B"
		case rec.Conflict == staging.ConflictReversal:
			marker = "R"
		case rec.SkippedByRule:
			marker = "S"
		}

		sign := "-"
		if rec.Transaction.Direction == ledger.Credit {
			sign = "+"
		}

		fmt.Printf("  [%s] %s  %s%9.2f  %s\n",
			marker,
			rec.Transaction.Date,
			sign,
			rec.Transaction.Amount,
			rec.Transaction.Description)
	}
}

// PrintStagingSummary prints the staging counts.
func PrintStagingSummary(counts storage.StagingCounts) {
	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("Staged: %d of %d rows", counts.Staged, counts.RowsIn)
	if conflicts := counts.BatchConflicts + counts.DatabaseConflicts; conflicts > 0 {
		fmt.Printf(" | Duplicates: %d", conflicts)
	}
	if counts.ReversalConflicts > 0 {
		fmt.Printf(" | Possible reversals: %d", counts.ReversalConflicts)
	}
	if counts.RuleSkipped > 0 {
		fmt.Printf(" | Rule-skipped: %d", counts.RuleSkipped)
	}
	fmt.Println()
}

// PrintCommitSummary prints the merge result.
func PrintCommitSummary(result *service.CommitResult, dryRun bool) {
	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("Summary: Merged=%d Duplicates=%d\n",
		len(result.Added), len(result.Duplicates))

	if len(result.Duplicates) > 0 {
		fmt.Println("\nSkipped as duplicates:")
		for _, dup := range result.Duplicates {
			fmt.Printf("  - %s %.2f %s\n",
				dup.Incoming.Date, dup.Incoming.Amount, dup.Incoming.Description)
		}
	}

	if !dryRun && len(result.Added) > 0 {
		fmt.Println("\nImport completed successfully.")
	}
}
