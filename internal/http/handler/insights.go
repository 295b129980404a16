package handler

import (
	"github.com/gofiber/fiber/v2"

	"conectaleads/internal/service"
)

// Dashboard returns the metrics for a period (este-mes by default).
//
// @Summary Dashboard metrics
// @Tags    insights
// @Param   period query string false "este-mes, mes-passado or ultimos-3-meses"
// @Success 200 {object} model.DashboardMetrics
// @Failure 400 {object} errorPayload
// @Router  /dashboard [get]
func Dashboard(svc service.DashboardService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		m, err := svc.Metrics(c.UserContext(), c.Query("period"))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(m)
	}
}

// Reports returns the all-time breakdowns.
//
// @Summary Reports
// @Tags    insights
// @Success 200 {object} model.Report
// @Router  /reports [get]
func Reports(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		r, err := svc.Report(c.UserContext())
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(r)
	}
}
