package cmd

import (
	"balance_game_backend/pkg/database"
	"balance_game_backend/pkg/logger"
	"fmt"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate the schema and seed the game configuration, then exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger.InitLogger(cfg)
		defer logger.Log.Sync()

		db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
		if err != nil {
			return fmt.Errorf("initialize database: %w", err)
		}
		if err := database.Migrate(db, cfg.Game.ConfigKey); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Migration complete")
		return nil
	},
}
