package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"relief-fund/internal/adapter/auth"
	httpadapter "relief-fund/internal/adapter/http"
	"relief-fund/internal/adapter/metrics"
	"relief-fund/internal/adapter/postgres"
	"relief-fund/internal/adapter/usecase"
	"relief-fund/internal/adapter/wallet"
	"relief-fund/internal/config"
	"relief-fund/internal/core/domain"
	"relief-fund/internal/core/port"
	"relief-fund/internal/core/session"
	"relief-fund/internal/db"
)

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE:  serveRun,
	}
}

// serveRun loads the ledger, starts the HTTP server and shuts it down
// gracefully on SIGINT or SIGTERM.
func serveRun(cmd *cobra.Command, _ []string) error {
	cfg := config.FromContext(cmd.Context())
	if cfg == nil {
		return errors.New("no config found in context")
	}
	logger := cfg.Log.New(os.Stdout).With(slog.String("env", cfg.Env))
	slog.SetDefault(logger)

	if cfg.Psql.RunMigrations {
		if err := db.Migrate(cfg.Psql.Addr.String(), logger); err != nil {
			logger.Error("migration error", slog.Any("error", err))
		}
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg.Psql)
	if err != nil {
		return fmt.Errorf("database connection: %w", err)
	}
	defer pool.Close()

	minDonation, err := cfg.Ledger.MinDonationAmount()
	if err != nil {
		return err
	}
	if cfg.Ledger.Owner == "" {
		logger.Warn("LEDGER_OWNER is empty, admin mutations will be rejected by the ledger")
	}
	if cfg.Admin.PasswordHash == "" {
		logger.Warn("ADMIN_PASSWORD_HASH is empty, admin login is disabled")
	}

	ledger := postgres.NewLedgerRepository(pool, domain.AccountID(cfg.Ledger.Owner), cfg.Ledger.Timeout)
	verifier := auth.NewBcryptVerifier(cfg.Admin.Username, cfg.Admin.PasswordHash)

	var observer port.Observer = port.NopObserver{}
	opts := httpadapter.Options{Decimals: cfg.Ledger.Decimals, ClientAccounts: cfg.Ledger.ClientAccounts}
	if cfg.Ledger.ClientAccounts {
		logger.Warn("LEDGER_CLIENT_ACCOUNTS is set, callers choose their signing account")
	}
	if cfg.Metrics.Enabled {
		registry := prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		observer = metrics.NewObserver(registry)
		opts.MetricsPath = cfg.Metrics.Path
		opts.Metrics = promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})
	}

	defaults := cfg.Ledger.AccountIDs()
	validator := domain.Validator{MinDonation: minDonation}
	sessions := usecase.NewRegistry(func(accounts []domain.AccountID) *usecase.FundUseCase {
		if len(accounts) == 0 || !cfg.Ledger.ClientAccounts {
			accounts = defaults
		}
		return usecase.NewFundUseCase(usecase.Deps{
			Ledger:    ledger,
			Signer:    wallet.New(accounts...),
			Session:   session.NewAdmin(verifier),
			Validator: validator,
			Observer:  observer,
			Logger:    logger,
		})
	}, usecase.Limits{IdleTTL: cfg.Session.IdleTTL, Max: cfg.Session.Max}, logger)

	swept := make(chan struct{})
	go func() {
		defer close(swept)
		sessions.Run(ctx, cfg.Session.SweepInterval)
	}()
	defer func() {
		cancel()
		<-swept
	}()

	handler := httpadapter.NewHandler(sessions, logger, opts)
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler: handler.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", slog.Int("port", int(cfg.HTTP.Port)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err = <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, stop := context.WithTimeout(context.WithoutCancel(ctx), cfg.HTTP.ShutdownTimeout)
	defer stop()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
		return err
	}
	logger.Info("server gracefully stopped")
	return nil
}
