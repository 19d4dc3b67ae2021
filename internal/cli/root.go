// Package cli holds the invoices command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/deppfellow/invoice-dashboard/internal/config"
	"github.com/deppfellow/invoice-dashboard/internal/logger"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "invoices",
		Short:         "Invoice dashboard backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newMigrateCmd())
	return cmd
}

func Execute() error {
	err := newRootCmd().Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
	}
	return err
}

// bootstrap loads config and builds the logger every command starts with.
func bootstrap() (*config.Config, *logger.LoggerService, *zerolog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading config: %w", err)
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	log := logger.NewLogger(cfg.Observability, loggerService)

	return cfg, loggerService, &log, nil
}
