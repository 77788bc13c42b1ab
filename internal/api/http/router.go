package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rashmods/helpdesk/internal/api/http/handlers"
	"github.com/rashmods/helpdesk/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Tickets        *handlers.TicketsHandler
	Dashboard      *handlers.DashboardHandler
	Points         *handlers.PointsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/", cfg.Health.Banner)
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Health.Metrics)

	tickets := app.Group("/tickets")
	tickets.Post("", cfg.Tickets.CreateTicket)
	tickets.Get("/:id", cfg.Tickets.GetTicket)
	tickets.Post("/:id/close", cfg.Tickets.CloseTicket)
	tickets.Post("/:id/feedback", cfg.Tickets.SubmitFeedback)

	app.Get("/points/:user", cfg.Points.Balance)

	dashboard := app.Group("/dashboard", cfg.AuthMiddleware.Handle, auth.RequireModerator())
	dashboard.Get("", cfg.Dashboard.Snapshot)
	dashboard.Get("/transcripts", cfg.Dashboard.Transcripts)
}
