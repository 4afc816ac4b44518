package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"spendtrack/internal/cli"
	"spendtrack/internal/credential"
	"spendtrack/internal/services"
	"spendtrack/internal/storage"
	"spendtrack/internal/tui"
)

func main() {
	cli.LoadEnvFile()

	logger := cli.SetupLogger(slog.LevelInfo)
	cfg := cli.LoadAndValidateConfig(logger)
	logger = cli.SetupLogger(cfg.SlogLevel())

	codec, err := credential.ForScheme(cfg.CredentialScheme)
	if err != nil {
		logger.Error("invalid credential scheme", "error", err)
		os.Exit(1)
	}

	store := cli.InitStore(logger, cfg.DBPath)
	defer store.Close()

	users := storage.NewUsers(store, codec)
	expenses := storage.NewExpenses(store)
	reports := services.NewReportService(expenses)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := tui.New(users, expenses, reports, os.Stdin, os.Stdout)
	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("application error", "error", err)
		os.Exit(1)
	}

	logger.Info("stopped")
}
