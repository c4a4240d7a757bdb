package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/telecom-triage/internal/api/http/handlers"
	"github.com/spec-kit/telecom-triage/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Triage         *handlers.TriageHandler
	Reports        *handlers.ReportsHandler
	Metrics        *handlers.MetricsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	protected := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	protected.Post("/classify", cfg.Triage.Classify)
	protected.Post("/conversations", cfg.Triage.RecordInteraction)
	protected.Get("/conversations", cfg.Triage.ListConversations)
	protected.Get("/conversations/:id", cfg.Triage.GetConversation)

	reports := protected.Group("", auth.RequireOperator())
	reports.Post("/operators", cfg.Auth.CreateOperator)
	reports.Get("/metrics", cfg.Metrics.Snapshot)
	reports.Get("/queries", cfg.Reports.ListQueries)
	reports.Get("/queries/stats", cfg.Reports.QueryStats)
	reports.Patch("/queries/:id/status", cfg.Reports.UpdateQueryStatus)
	reports.Get("/grievances", cfg.Reports.ListGrievances)
	reports.Get("/grievances/stats", cfg.Reports.GrievanceStats)
	reports.Get("/grievances/departments", cfg.Reports.DepartmentCounts)
	reports.Get("/grievances/:id", cfg.Reports.GetGrievance)
	reports.Patch("/grievances/:id/status", cfg.Reports.UpdateGrievanceStatus)
}
