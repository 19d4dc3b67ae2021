package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/deppfellow/invoice-dashboard/internal/database"
)

const migrateTimeout = 2 * time.Minute

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, loggerService, log, err := bootstrap()
			if err != nil {
				return err
			}
			defer loggerService.Shutdown()

			ctx, cancel := context.WithTimeout(cmd.Context(), migrateTimeout)
			defer cancel()

			return database.Migrate(ctx, log, cfg)
		},
	}
}
