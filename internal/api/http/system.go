package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/avaliafor/avaliafor/internal/observability"
	"github.com/avaliafor/avaliafor/internal/report"
)

// DashboardHandler serves GET /v1/dashboard.
type DashboardHandler struct {
	reports *report.Service
}

// NewDashboardHandler creates a dashboard handler.
func NewDashboardHandler(reports *report.Service) *DashboardHandler {
	return &DashboardHandler{reports: reports}
}

// ServeHTTP builds the dashboard. period, unit and supplier may be repeated.
func (h *DashboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	origin, err := parseOrigin(r.URL.Query().Get("origin"))
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	d, err := h.reports.Dashboard(r.Context(), report.Filter{
		Origin:    origin,
		Periods:   queryList(r, "period"),
		Units:     queryList(r, "unit"),
		Suppliers: queryList(r, "supplier"),
	})
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

const defaultStatsLimit = 10

// StatsHandler serves GET /v1/stats: the busiest routes of the current
// window.
func StatsHandler(stats *observability.RouteStats) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := defaultStatsLimit
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				writeError(w, http.StatusBadRequest, "limit must be a positive integer", GetRequestID(r.Context()))
				return
			}
			limit = n
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"routes": stats.Top(limit)})
	}
}

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

const healthTimeout = 2 * time.Second

// HealthHandler answers GET /health. The service stays "healthy" while the
// database is unreachable but reports itself degraded, since the
// questionnaire can still be served from the built-in reference data.
func HealthHandler(service string, db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]string{"status": "healthy", "service": service, "database": "up"}
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				resp["status"] = "degraded"
				resp["database"] = err.Error()
			}
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
