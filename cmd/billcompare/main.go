package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"BillCompare/internal/app"
	"BillCompare/internal/config"
	"BillCompare/internal/logging"
)

var version = "0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	application := app.New(cfg, logger)

	rootCmd := &cobra.Command{
		Use:   "billcompare",
		Short: "Compare competing drafts of the same bill",
		Long: `billcompare groups bills that amend the same law, picks the latest
draft per proposing party or branch of government, and shows what each
draft adds to the current law article by article.

It also serves the monthly bill data as an HTTP API.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().Bool("local", false, "read the configured store instead of the data-source API")

	rootCmd.AddCommand(serveCmd(application))
	rootCmd.AddCommand(compareCmd(application))
	rootCmd.AddCommand(versionsCmd(application))
	rootCmd.AddCommand(searchCmd(application))
	rootCmd.AddCommand(statsCmd(application))
	rootCmd.AddCommand(importCmd(application))

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
