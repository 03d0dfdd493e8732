package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/surveyguy/analytics/internal/services"
)

// GET /api/surveys/{surveyID}/analytics?range=7d|30d|90d|all
func (rt *Router) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	surveyID := chi.URLParam(r, "surveyID")
	dr := services.ParseDateRange(r.URL.Query().Get("range"))

	if _, err := rt.analytics.Survey(surveyID); err != nil {
		rt.writeError(w, r, err)
		return
	}
	snap, err := rt.analytics.ComputeSnapshot(surveyID, dr)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	render.JSON(w, r, snap)
}

// GET /api/surveys/{surveyID}/report?format=document|table&charts=&metrics=&tables=&range=
func (rt *Router) handleReport(w http.ResponseWriter, r *http.Request) {
	surveyID := chi.URLParam(r, "surveyID")
	q := r.URL.Query()
	dr := services.ParseDateRange(q.Get("range"))

	survey, err := rt.analytics.Survey(surveyID)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	snap, err := rt.analytics.ComputeSnapshot(surveyID, dr)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}

	opts := services.DefaultReportOptions()
	if v := q.Get("charts"); v != "" {
		opts.IncludeCharts = parseBool(v)
	}
	if v := q.Get("metrics"); v != "" {
		opts.IncludeMetrics = parseBool(v)
	}
	if v := q.Get("tables"); v != "" {
		opts.IncludeTables = parseBool(v)
	}

	res, err := rt.reports.Render(snap, survey, services.ReportFormat(q.Get("format")), opts)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", res.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Data)
}

func parseBool(v string) bool {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false
	}
	return b
}
