// Command loader befüllt die Datenbank aus den Exporten des Crawlers.
//
//	loader init     Tabellen und Views neu anlegen, dann laden
//	loader update   Tabelleninhalt ersetzen (tägliche Aktualisierung)
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bid-finder/config"
	"bid-finder/services"
	"bid-finder/storage"
)

var rootCmd = &cobra.Command{
	Use:           "loader",
	Short:         "Load drug tender exports into Postgres",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Drop and recreate tables and views, then load all exports",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), true)
	},
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Replace table contents with the current exports",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), false)
	},
}

func init() {
	rootCmd.AddCommand(initCmd, updateCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, bootstrap bool) error {
	logging, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer logging.Sync()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	store, err := storage.Open(ctx, cfg, logging)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer store.Close()

	source, err := services.NewSource(ctx, cfg, logging)
	if err != nil {
		return err
	}

	if bootstrap {
		logging.Info("Recreating schema")
		if err := store.Bootstrap(ctx); err != nil {
			return fmt.Errorf("bootstrap schema: %w", err)
		}
	}

	result, err := services.NewLoadService(store, source, cfg.LoaderChunkSize, logging).Run(ctx)
	if err != nil {
		logging.Error("Load failed", zap.Error(err))
		return err
	}
	for table, n := range result.Counts {
		fmt.Printf("%s: %d rows\n", table, n)
	}
	return nil
}
