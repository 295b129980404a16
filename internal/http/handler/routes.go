package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"conectaleads/internal/service"
)

// Services bundles what the routes depend on.
type Services struct {
	Leads         service.LeadService
	Imports       service.ImportService
	Brokers       service.BrokerService
	Dashboard     service.DashboardService
	Reports       service.ReportService
	Notifications service.NotificationService
	// Probes are checked by /health in addition to the database.
	Probes []Pinger
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, db *sql.DB, s Services) {
	app.Get("/health", HealthCheck(db, s.Probes...))
	app.Get("/healthz", LivenessProbe())

	leads := app.Group("/leads")
	leads.Get("/import/template", ImportTemplate(s.Imports))
	leads.Post("/import", ImportLeads(s.Imports))
	leads.Get("/", ListLeads(s.Leads))
	leads.Post("/", CreateLead(s.Leads))
	leads.Get("/:id", GetLead(s.Leads))
	leads.Put("/:id", UpdateLead(s.Leads))
	leads.Delete("/:id", DeleteLead(s.Leads))

	imports := app.Group("/imports")
	imports.Get("/", ListImports(s.Imports))
	imports.Get("/:id", GetImport(s.Imports))
	imports.Get("/:id/download", DownloadImport(s.Imports))
	imports.Get("/:id/leads", PreviewImport(s.Imports))

	brokers := app.Group("/brokers")
	brokers.Get("/", ListBrokers(s.Brokers))
	brokers.Post("/", CreateBroker(s.Brokers))
	brokers.Get("/:id", GetBroker(s.Brokers))
	brokers.Put("/:id", UpdateBroker(s.Brokers))
	brokers.Patch("/:id/active", ToggleBrokerActive(s.Brokers))
	brokers.Put("/:id/avatar", UploadBrokerAvatar(s.Brokers))
	brokers.Get("/:id/avatar", BrokerAvatar(s.Brokers))

	app.Get("/dashboard", Dashboard(s.Dashboard))
	app.Get("/reports", Reports(s.Reports))

	notifications := app.Group("/notifications")
	notifications.Get("/", ListNotifications(s.Notifications))
	notifications.Post("/read-all", MarkAllNotificationsRead(s.Notifications))
	notifications.Patch("/:id/read", MarkNotificationRead(s.Notifications))
}
