package cli

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"

	"github.com/surveyguy/analytics/internal/config"
	"github.com/surveyguy/analytics/internal/db"
	"github.com/surveyguy/analytics/internal/logging"
)

var migrationsDir string

func init() {
	migrateCmd.Flags().StringVar(&migrationsDir, "dir", "", "migrations directory (defaults to embedded)")
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		logger := logging.New(cfg.LogLevel)

		conn, err := sql.Open("sqlite3", cfg.DBPath)
		if err != nil {
			return err
		}
		defer conn.Close()
		if err := db.RunMigrations(conn, migrationsDir); err != nil {
			return err
		}
		logger.Infof("migrations applied to %s", cfg.DBPath)
		return nil
	},
}
