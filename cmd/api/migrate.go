package main

import (
	"github.com/spf13/cobra"

	"github.com/suar-net/suar-rest/internal/database"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}

			db, err := database.ConnectDB(cfg.DB)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := database.RunMigrations(db, cfg.DB.Driver); err != nil {
				return err
			}
			logger.Info("migrations applied", "driver", cfg.DB.Driver)
			return nil
		},
	}
}
