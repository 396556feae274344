// Package cli holds the shared pieces of the command line entrypoints:
// flag parsing, statement file reading and terminal output.
package cli

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledgerpipe/ledgerpipe/internal/application/service"
	"github.com/ledgerpipe/ledgerpipe/internal/domain/ledger"
	"github.com/ledgerpipe/ledgerpipe/internal/infrastructure/config"
	"github.com/ledgerpipe/ledgerpipe/internal/infrastructure/logging"
	"github.com/ledgerpipe/ledgerpipe/internal/infrastructure/storage"
)

// RunImport stages one statement file, shows the annotated batch and,
// unless told otherwise, merges the confirmed records into the ledger.
func RunImport(cfg *config.Config, flags *ImportFlags) error {
	if flags.File == "" || flags.AccountID == "" || flags.UserID == "" {
		return fmt.Errorf("usage: -file, -account and -user are required")
	}

	loggingCfg := cfg.Observability.Logging
	if flags.Verbose {
		loggingCfg.Level = "debug"
	}
	logger := logging.NewComponentLogger(loggingCfg, "import")

	store, err := storage.NewStorage(cfg.Storage.DatabasePath)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	headers, rows, err := ReadStatementFile(flags.File)
	if err != nil {
		return err
	}

	sourceLabel := flags.SourceLabel
	if sourceLabel == "" {
		sourceLabel = filepath.Base(flags.File)
	}
	currency := flags.Currency
	if currency == "" {
		currency = cfg.Import.Currency
	}

	PrintHeader(sourceLabel, flags.DryRun)
	PrintConfiguration(flags.AccountID, flags.UserID, flags.Category, currency)

	svc := service.NewImportService(store, logger)
	staged, err := svc.Stage(service.StageParams{
		AccountID:       flags.AccountID,
		UserID:          flags.UserID,
		SourceLabel:     sourceLabel,
		Currency:        currency,
		AccountCategory: ledger.AccountCategory(flags.Category),
		Headers:         headers,
		Rows:            rows,
	})
	if err != nil {
		return err
	}

	PrintStagedBatch(staged.Records)
	PrintStagingSummary(staged.Counts)

	if flags.DryRun {
		fmt.Println("\nDry run: nothing merged.")
		return nil
	}

	var confirmed []ledger.Transaction
	for _, rec := range staged.Records {
		if !rec.Ignore {
			confirmed = append(confirmed, rec.Transaction)
		}
	}
	if len(confirmed) == 0 {
		fmt.Println("\nNothing to merge.")
		return nil
	}

	if !flags.Yes && !confirm(fmt.Sprintf("Merge %d transactions into the ledger?", len(confirmed))) {
		fmt.Println("Aborted.")
		return nil
	}

	result, err := svc.Commit(service.CommitParams{
		RunID:     staged.RunID,
		AccountID: flags.AccountID,
		UserID:    flags.UserID,
		Confirmed: confirmed,
	})
	if err != nil {
		return err
	}

	PrintCommitSummary(result, false)
	return nil
}

// ReadStatementFile reads a CSV statement into the header row and one
// map per data row, keyed by header. Short rows are padded with empty
// cells so ragged bank exports still import.
func ReadStatementFile(path string) ([]string, []map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open statement: %w", err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	all, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read statement: %w", err)
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("statement is empty")
	}

	headers := make([]string, len(all[0]))
	for i, h := range all[0] {
		headers[i] = strings.TrimSpace(h)
	}

	rows := make([]map[string]string, 0, len(all)-1)
	for _, record := range all[1:] {
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(record) {
				row[h] = record[i]
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}

	return headers, rows, nil
}

func confirm(prompt string) bool {
	fmt.Printf("\n%s [y/N] ", prompt)
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}
