package cli

import (
	"flag"
)

// ImportFlags are the command line flags for the import command.
type ImportFlags struct {
	ConfigPath  string
	File        string
	AccountID   string
	UserID      string
	Category    string
	Currency    string
	SourceLabel string
	DryRun      bool
	Yes         bool
	Verbose     bool
}

// ParseImportFlags parses import flags from the command line.
func ParseImportFlags() *ImportFlags {
	flags := &ImportFlags{}
	flag.StringVar(&flags.ConfigPath, "config", "config.yaml", "Path to config file")
	flag.StringVar(&flags.File, "file", "", "Path to the statement CSV (required)")
	flag.StringVar(&flags.AccountID, "account", "", "Account ID to import into (required)")
	flag.StringVar(&flags.UserID, "user", "", "User ID owning the account (required)")
	flag.StringVar(&flags.Category, "category", "checking", "Account category: checking, savings or credit_card")
	flag.StringVar(&flags.Currency, "currency", "", "Currency code (defaults to config)")
	flag.StringVar(&flags.SourceLabel, "source", "", "Source label for the audit trail (defaults to the file name)")
	flag.BoolVar(&flags.DryRun, "dry-run", false, "Stage only, do not merge into the ledger")
	flag.BoolVar(&flags.Yes, "yes", false, "Merge without prompting for confirmation")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Verbose output")
	flag.Parse()
	return flags
}

// ServeFlags holds the CLI flags for the serve command.
type ServeFlags struct {
	ConfigPath string
	Port       int
	Verbose    bool
}

// ParseServeFlags parses command line flags for the serve command.
func ParseServeFlags() *ServeFlags {
	flags := &ServeFlags{}
	flag.StringVar(&flags.ConfigPath, "config", "config.yaml", "Path to config file")
	flag.IntVar(&flags.Port, "port", 0, "Port to listen on (overrides config)")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Verbose output")
	flag.Parse()
	return flags
}
