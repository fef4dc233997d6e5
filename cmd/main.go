package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"relief-fund/internal/config"
)

const programName = "relief-fund"

// main is the entry point of the relief-fund service. Configuration is
// read from the environment before any subcommand runs; serve is the
// default.
func main() {
	rootCmd := &cobra.Command{
		Use:           programName,
		Short:         "Disaster relief fund backed by a shared ledger",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serveRun(cmd, args)
		},
	}

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cmd.SetContext(config.WithContext(cmd.Context(), &cfg))
		return nil
	}

	rootCmd.AddCommand(serveCommand())
	rootCmd.AddCommand(migrateCommand())
	rootCmd.AddCommand(seedCommand())
	rootCmd.AddCommand(hashPasswordCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
