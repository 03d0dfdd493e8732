package cli

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"

	"github.com/surveyguy/analytics/internal/config"
	"github.com/surveyguy/analytics/internal/db"
	"github.com/surveyguy/analytics/internal/logging"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert a demo survey with sample responses",
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
		if err := db.RunMigrations(conn, ""); err != nil {
			return err
		}
		store, err := db.NewSQLiteStore(conn, logger)
		if err != nil {
			return err
		}
		surveyID, err := store.Seed(time.Now().UTC())
		if err != nil {
			return err
		}
		logger.Infof("seeded demo survey %s", surveyID)
		return nil
	},
}
