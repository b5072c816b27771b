package cmd

import (
	"balance_game_backend/internal/app"
	"balance_game_backend/pkg/logger"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func init() {
	serveCmd.Flags().Bool("migrate", false, "Migrate the schema on startup even in release mode")
}

func runServe(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// Debug and test servers always migrate; release servers only on request.
	force, _ := cmd.Flags().GetBool("migrate")
	migrate := force || cfg.Server.Mode != "release"

	application, err := app.NewApp(cfg, migrate)
	if err != nil {
		return err
	}
	defer logger.Log.Sync()

	return application.Run()
}
