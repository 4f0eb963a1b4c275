package main

import (
	"fmt"
	"log/slog"
	"os"

	"spendbook/internal/cli"
	"spendbook/internal/ledger"
	applog "spendbook/internal/log"
	"spendbook/internal/session"
	"spendbook/internal/shell"
)

func main() {
	cli.LoadEnvFile()

	cfg, err := cli.LoadConfig()
	if err != nil {
		// The configured level is unknown, so report with the defaults.
		applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentConfig).
			Fields(slog.LevelError, "Invalid configuration", applog.NewFields().
				WithOperation(applog.OpStartup).
				WithErrorType(applog.ErrorTypeConfiguration).
				WithError(err))
		os.Exit(1)
	}

	logger := cli.SetupLogger(cfg)
	ctx, cancel := cli.NotifyShutdown(logger)
	defer cancel()

	sh := shell.New(os.Stdin, os.Stdout, cfg.Currency, logger)
	s := session.New(
		ledger.New(cfg.LedgerSchema()),
		session.Config{Chart: cfg.ChartSettings(), Currency: cfg.Currency},
		sh, sh, logger,
	)

	logger.Info("Starting spendbook",
		applog.FieldOperation, applog.OpStartup,
		applog.FieldSchema, cfg.LedgerSchema().String())

	// The shell blocks on stdin, so a signal has to be able to end the
	// process without waiting for the next line.
	done := make(chan error, 1)
	go func() {
		done <- sh.Run(s)
	}()

	select {
	case err := <-done:
		if err != nil {
			logger.Error("Shell stopped with error", applog.FieldError, err)
			os.Exit(1)
		}
	case <-ctx.Done():
		fmt.Fprintln(os.Stdout)
	}

	logger.Info("Session ended", applog.FieldOperation, applog.OpShutdown)
}
