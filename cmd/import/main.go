package main

import (
	"fmt"
	"os"

	"github.com/ledgerpipe/ledgerpipe/internal/cli"
	"github.com/ledgerpipe/ledgerpipe/internal/infrastructure/config"
)

func main() {
	flags := cli.ParseImportFlags()
	cfg := config.LoadOrEnvWithPath(flags.ConfigPath)

	if err := cli.RunImport(cfg, flags); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
