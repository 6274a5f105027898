package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jmwangi/pesatrack/internal/api"
	"github.com/jmwangi/pesatrack/internal/config"
	"github.com/jmwangi/pesatrack/internal/service"
	"github.com/jmwangi/pesatrack/internal/store"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	if os.Getenv("PESATRACK_DEBUG") != "" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// app wires the config, local store, API client and services together for
// one command invocation.
type app struct {
	cfg        *config.Config
	store      *store.Store
	session    *service.SessionService
	expenses   *service.ExpenseService
	budgets    *service.BudgetService
	reports    *service.ReportService
	currencies *service.CurrencyService
	exports    *service.ExportService
	passwords  *service.PasswordService
	profiles   *service.ProfileService
}

// loadApp builds the service graph and restores the persisted session.
func loadApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	st, err := store.Open(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open local state: %w", err)
	}

	client := api.NewClientWithConfig(api.ClientConfig{
		BaseURL:            cfg.APIBaseURL,
		Timeout:            cfg.HTTPTimeout,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		BurstSize:          cfg.RateLimitBurst,
		Logger:             log.Logger,
	})

	session := service.NewSessionService(client, st)
	if _, err := session.Bootstrap(ctx); err != nil {
		log.Warn().Err(err).Msg("Session bootstrap incomplete")
	}

	return &app{
		cfg:        cfg,
		store:      st,
		session:    session,
		expenses:   service.NewExpenseService(session),
		budgets:    service.NewBudgetService(session),
		reports:    service.NewReportService(session),
		currencies: service.NewCurrencyService(st),
		exports:    service.NewExportService(session),
		passwords:  service.NewPasswordService(session),
		profiles:   service.NewProfileService(session),
	}, nil
}

// Close releases the local store.
func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close local state")
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pesatrack",
		Short:         "Track expenses and budgets against a pesatrack server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newLoginCmd())
	root.AddCommand(newLogoutCmd())
	root.AddCommand(newRegisterCmd())
	root.AddCommand(newWhoamiCmd())
	root.AddCommand(newPasswdCmd())
	root.AddCommand(newExpenseCmd())
	root.AddCommand(newBudgetCmd())
	root.AddCommand(newReportCmd())
	root.AddCommand(newExportCmd())
	root.AddCommand(newCurrencyCmd())
	root.AddCommand(newProfileCmd())
	return root
}

// withApp runs a command body with app construction and teardown.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	ctx := cmd.Context()
	a, err := loadApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a)
}

// runWithApp adapts withApp for commands that take no positional arguments.
func runWithApp(fn func(ctx context.Context, a *app) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, fn)
	}
}
