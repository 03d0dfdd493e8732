package cli

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"

	"github.com/surveyguy/analytics/internal/api"
	"github.com/surveyguy/analytics/internal/config"
	"github.com/surveyguy/analytics/internal/db"
	"github.com/surveyguy/analytics/internal/logging"
	"github.com/surveyguy/analytics/internal/middleware"
	"github.com/surveyguy/analytics/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the analytics HTTP server",
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

		analytics := services.NewAnalyticsService(store, logger)
		reports := services.NewReportService()
		auth := middleware.NewAuth(cfg.JWTSecret)
		router := api.NewRouter(analytics, reports, auth, logger)

		srv := &http.Server{
			Addr:         cfg.Addr,
			Handler:      router.Handler(),
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		}
		logger.Infof("listening on %s", cfg.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}
