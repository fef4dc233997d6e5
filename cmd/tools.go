package main

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"relief-fund/internal/adapter/auth"
	"relief-fund/internal/adapter/postgres"
	"relief-fund/internal/config"
	"relief-fund/internal/core/domain"
	"relief-fund/internal/db"
)

func migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply ledger schema migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.FromContext(cmd.Context())
			if cfg == nil {
				return errors.New("no config found in context")
			}
			return db.Migrate(cfg.Psql.Addr.String(), cfg.Log.New(os.Stderr))
		},
	}
}

func seedCommand() *cobra.Command {
	var (
		accounts []string
		balance  string
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert demo campaigns and fund donor accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.FromContext(cmd.Context())
			if cfg == nil {
				return errors.New("no config found in context")
			}
			logger := cfg.Log.New(os.Stderr)
			ctx := cmd.Context()

			pool, err := db.NewPostgresPool(ctx, cfg.Psql)
			if err != nil {
				return fmt.Errorf("database connection: %w", err)
			}
			defer pool.Close()

			ids := cfg.Ledger.AccountIDs()
			if len(accounts) > 0 {
				ids = ids[:0]
				for _, a := range accounts {
					ids = append(ids, domain.AccountID(a))
				}
			}
			if err = db.Seed(ctx, pool, cfg.Ledger.Decimals, ids, balance); err != nil {
				return fmt.Errorf("seed: %w", err)
			}

			ledger := postgres.NewLedgerRepository(pool, domain.AccountID(cfg.Ledger.Owner), cfg.Ledger.Timeout)
			for _, id := range ids {
				b, err := ledger.Balance(ctx, id)
				if err != nil {
					return err
				}
				logger.Info("account funded", slog.String("account", string(id)), slog.String("balance", b.Major(cfg.Ledger.Decimals)))
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&accounts, "account", nil, "account to fund (repeatable, defaults to LEDGER_ACCOUNTS)")
	cmd.Flags().StringVar(&balance, "balance", "100", "whole units credited to each account")
	return cmd
}

// hashPasswordCommand prints a bcrypt hash for ADMIN_PASSWORD_HASH. The
// password is read from the first argument or stdin.
func hashPasswordCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print a bcrypt hash for ADMIN_PASSWORD_HASH",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var password string
			if len(args) == 1 {
				password = args[0]
			} else {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("read password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}
			hash, err := auth.HashPassword(password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}
