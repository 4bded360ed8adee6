package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mkaran/planetary-api/internal/storage/postgres"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.requireDatabaseURL(); err != nil {
				return err
			}

			logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
			if err := postgres.Migrate(cmd.Context(), cfg.DatabaseURL); err != nil {
				return err
			}
			logger.Info("migrations applied")
			return nil
		},
	}
}
