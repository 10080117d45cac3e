package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ahmetcoskunkizilkaya/shoutspot-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/shoutspot-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/shoutspot-backend/internal/logging"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			logging.Setup(cfg.LogLevel)

			if cfg.DBPassword == "" {
				return fmt.Errorf("DB_PASSWORD environment variable is required")
			}

			db, err := database.Connect(cfg)
			if err != nil {
				return err
			}
			defer database.Close(db)

			if err := database.Migrate(db); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			slog.Info("migration completed")
			return nil
		},
	}
}
