package http

import (
	"net/http"

	"github.com/avaliafor/avaliafor/internal/evaluation"
	"github.com/avaliafor/avaliafor/internal/logger"
	"github.com/avaliafor/avaliafor/internal/maintenance"
	"github.com/avaliafor/avaliafor/internal/observability"
	"github.com/avaliafor/avaliafor/internal/reference"
	"github.com/avaliafor/avaliafor/internal/report"
)

// Services are the dependencies of the API.
type Services struct {
	Catalog     *reference.Catalog
	Evaluations *evaluation.Store
	Maintenance *maintenance.Service
	Reports     *report.Service
	Stats       *observability.RouteStats
	// DB backs the health check; nil skips the ping.
	DB  Pinger
	Log *logger.Logger
	// Middleware runs outermost, before recovery and request IDs.
	Middleware []func(http.Handler) http.Handler
}

// NewRouter registers every route. Each route is wrapped with the common
// middleware chain and instrumented under its pattern.
func NewRouter(s Services) http.Handler {
	log := s.Log
	if log == nil {
		log = logger.Nop()
	}
	stats := s.Stats
	if stats == nil {
		stats = observability.NewRouteStats(0)
	}

	chain := append([]func(http.Handler) http.Handler{}, s.Middleware...)
	chain = append(chain,
		RecoveryMiddleware(log),
		RequestIDMiddleware,
		CorrelationIDMiddleware,
	)
	base := ChainMiddleware(chain...)

	mux := http.NewServeMux()
	handle := func(pattern string, h http.Handler) {
		mux.Handle(pattern, base(InstrumentMiddleware(pattern, stats, log)(h)))
	}

	ref := NewReferenceHandler(s.Catalog, log)
	handle("GET /v1/catalog", http.HandlerFunc(ref.Catalog))
	handle("GET /v1/units", http.HandlerFunc(ref.ListUnits))
	handle("POST /v1/units", http.HandlerFunc(ref.AddUnit))
	handle("DELETE /v1/units/{name}", http.HandlerFunc(ref.RemoveUnit))
	handle("GET /v1/suppliers", http.HandlerFunc(ref.ListSuppliers))
	handle("POST /v1/suppliers", http.HandlerFunc(ref.RegisterSupplier))
	handle("DELETE /v1/suppliers/{name}", http.HandlerFunc(ref.RemoveSupplier))
	handle("GET /v1/questions", http.HandlerFunc(ref.ListQuestions))
	handle("POST /v1/questions", http.HandlerFunc(ref.AddQuestion))
	handle("PUT /v1/questions/{id}", http.HandlerFunc(ref.UpdateQuestion))
	handle("DELETE /v1/questions/{id}", http.HandlerFunc(ref.RemoveQuestion))

	evals := NewEvaluationHandler(s.Evaluations, s.Maintenance, log)
	handle("POST /v1/evaluations", http.HandlerFunc(evals.Submit))
	handle("GET /v1/evaluations", http.HandlerFunc(evals.List))
	handle("GET /v1/submissions", http.HandlerFunc(evals.Submissions))
	handle("DELETE /v1/submissions", http.HandlerFunc(evals.Delete))

	maint := NewMaintenanceHandler(s.Maintenance, log)
	handle("POST /v1/maintenance/purge", http.HandlerFunc(maint.Purge))
	handle("POST /v1/maintenance/regenerate", http.HandlerFunc(maint.Regenerate))
	handle("GET /v1/maintenance/backup", http.HandlerFunc(maint.Backup))
	handle("POST /v1/maintenance/restore", http.HandlerFunc(maint.Restore))
	handle("POST /v1/maintenance/import-defaults", http.HandlerFunc(maint.ImportDefaults))
	handle("GET /v1/maintenance/download", http.HandlerFunc(maint.Download))
	handle("GET /v1/maintenance/bundle", http.HandlerFunc(maint.Bundle))
	handle("DELETE /v1/maintenance/cache", http.HandlerFunc(maint.ClearCache))

	handle("GET /v1/dashboard", NewDashboardHandler(s.Reports))
	handle("GET /v1/stats", StatsHandler(stats))

	mux.Handle("GET /health", HealthHandler("avaliafor", s.DB))
	mux.Handle("GET /metrics", observability.Handler())
	return mux
}
