package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/sirupsen/logrus"

	"github.com/surveyguy/analytics/internal/middleware"
	"github.com/surveyguy/analytics/internal/services"
)

// Router wires the analytics endpoints. Handlers stay thin: parse the
// request, call the service, map the error.
type Router struct {
	analytics *services.AnalyticsService
	reports   *services.ReportService
	auth      *middleware.Auth
	logger    *logrus.Logger
}

func NewRouter(analytics *services.AnalyticsService, reports *services.ReportService, auth *middleware.Auth, logger *logrus.Logger) *Router {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Router{analytics: analytics, reports: reports, auth: auth, logger: logger}
}

func (rt *Router) Handler() http.Handler {
	root := chi.NewRouter()
	root.Use(chimw.Logger, chimw.Recoverer)

	root.Get("/health", rt.handleHealth)

	root.Route("/api", func(r chi.Router) {
		r.Use(rt.auth.WithAuth, middleware.RequireAuth)
		r.Get("/surveys/{surveyID}/analytics", rt.handleAnalytics)
		r.Get("/surveys/{surveyID}/report", rt.handleReport)
	})

	return root
}

func (rt *Router) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok"})
}

// writeError maps service errors onto HTTP statuses: invalid input is a
// 400, a missing survey a 404, a degraded backend a 502.
func (rt *Router) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "internal error"
	if se, ok := services.AsServiceError(err); ok {
		message = se.Message
		switch se.Code {
		case services.ErrorInvalid:
			status = http.StatusBadRequest
		case services.ErrorNotFound:
			status = http.StatusNotFound
		case services.ErrorUnavailable:
			status = http.StatusBadGateway
		}
	} else {
		rt.logger.WithField("path", r.URL.Path).Errorf("request failed: %v", err)
	}
	render.Status(r, status)
	render.JSON(w, r, map[string]string{"error": message})
}
