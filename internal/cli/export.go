package cli

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"

	"github.com/surveyguy/analytics/internal/config"
	"github.com/surveyguy/analytics/internal/db"
	"github.com/surveyguy/analytics/internal/logging"
	"github.com/surveyguy/analytics/internal/services"
)

var (
	exportFormat string
	exportRange  string
	exportOut    string
)

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "table", "report format: document or table")
	exportCmd.Flags().StringVarP(&exportRange, "range", "r", "all", "date range: 7d, 30d, 90d or all")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (defaults to the report filename)")
}

var exportCmd = &cobra.Command{
	Use:   "export <survey-id>",
	Short: "Render an analytics report to a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		surveyID := args[0]
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
		store, err := db.NewSQLiteStore(conn, logger)
		if err != nil {
			return err
		}

		analytics := services.NewAnalyticsService(store, logger)
		survey, err := analytics.Survey(surveyID)
		if err != nil {
			return err
		}
		snap, err := analytics.ComputeSnapshot(surveyID, services.ParseDateRange(exportRange))
		if err != nil {
			return err
		}
		res, err := services.NewReportService().Render(snap, survey, services.ReportFormat(exportFormat), services.DefaultReportOptions())
		if err != nil {
			return err
		}

		out := exportOut
		if out == "" {
			out = res.Filename
		}
		if err := os.WriteFile(out, res.Data, 0o644); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", out, len(res.Data))
		return nil
	},
}
