package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"brandscope/internal/config"
	"brandscope/internal/migrate"
)

func init() {
	rootCmd.AddCommand(migrateCmd)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Applies database migrations.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.Database.DSN == "" {
			return fmt.Errorf("database.dsn is not configured (set %s)", config.EnvDatabaseDSN)
		}
		if err := migrate.Run(cfg.Database.DSN); err != nil {
			return err
		}
		version, err := migrate.Version(cfg.Database.DSN)
		if err != nil {
			return err
		}
		logger.Info("migrations applied", "version", version)
		return nil
	},
}
